package services

import (
	"context"
	"errors"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	apperrors "endpage/internal/errors"
	"endpage/internal/models"
	"endpage/internal/pagination"
	"endpage/internal/repository"
	"endpage/internal/validator"
)

// userService handles registration, login and the attempt counter.
type userService struct {
	store      *repository.Store
	audit      AuditServicer
	notifier   NotificationServicer
	minEntropy float64
}

// NewUserService creates a new UserServicer. A minEntropy of 0 disables the
// password strength check.
func NewUserService(store *repository.Store, audit AuditServicer, notifier NotificationServicer, minEntropy float64) UserServicer {
	return &userService{store: store, audit: audit, notifier: notifier, minEntropy: minEntropy}
}

// Register creates an active user with the default role and a full attempt
// budget, then sends a welcome email.
func (s *userService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Firstname = strings.TrimSpace(in.Firstname)
	in.Lastname = strings.TrimSpace(in.Lastname)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if in.Firstname == "" || in.Lastname == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "firstname, lastname, username, email and password are required")
	}
	if !validator.IsEmail(in.Email) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "email is not a valid address")
	}
	if s.minEntropy > 0 {
		if err := passwordvalidator.Validate(in.Password, s.minEntropy); err != nil {
			return nil, apperrors.WithMessage(apperrors.ErrWeakPassword, err.Error())
		}
	}

	exists, err := s.store.Users().EmailExists(in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	user := &models.User{
		Firstname:    in.Firstname,
		Lastname:     in.Lastname,
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hashedPassword),
		IsActive:     true,
		CountAttempt: models.MaxAttempts,
		Roles:        datatypes.JSONSlice[string]{models.RoleUser},
	}
	if err := s.store.Users().Create(user); err != nil {
		return nil, err
	}

	s.notifier.SendWelcome(ctx, user)
	return user, nil
}

// Login authenticates a user. Checks run in a fixed order: unknown email,
// deactivated account, exhausted attempts, then the password. A wrong
// password spends one attempt; a correct one restores the full budget.
func (s *userService) Login(email, password, ipAddress string) (*models.User, error) {
	var (
		user          *models.User
		loginErr      error
		wrongPassword bool
	)

	err := s.store.Transaction(func(tx *repository.Store) error {
		found, err := tx.Users().FindByEmail(email)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				loginErr = apperrors.ErrInvalidCredentials
				return nil
			}
			return err
		}
		user = found

		if !user.IsActive {
			loginErr = apperrors.WithDetails(apperrors.ErrAccountDeactivated, map[string]any{"is_active": false})
			return nil
		}
		if !user.HasAttemptsLeft() {
			loginErr = apperrors.WithDetails(apperrors.ErrAttemptsExhausted, map[string]any{"attempts_left": 0})
			return nil
		}

		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			wrongPassword = true
			user.DecrementAttempt()
			if err := tx.Users().Save(user); err != nil {
				return err
			}
			loginErr = apperrors.WithDetails(apperrors.ErrInvalidCredentials, map[string]any{
				"attempts_left": user.CountAttempt,
				"is_active":     user.IsActive,
			})
			return nil
		}

		if user.CountAttempt != models.MaxAttempts {
			user.ResetAttempts()
			return tx.Users().Save(user)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if loginErr != nil {
		if wrongPassword {
			s.audit.Log(user.ID, models.AuditLoginFailed, "user", user.ID, ipAddress, map[string]any{"attempts_left": user.CountAttempt})
			if !user.IsActive {
				s.audit.Log(user.ID, models.AuditAccountDeactivated, "user", user.ID, ipAddress, nil)
			}
		}
		return nil, loginErr
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.store.Users().FindByID(id)
}

// DecrementAttempt spends one of the user's attempts, deactivating the
// account when none remain.
func (s *userService) DecrementAttempt(userID uint) (*AttemptStatus, error) {
	var user *models.User
	err := s.store.Transaction(func(tx *repository.Store) error {
		found, err := tx.Users().FindByID(userID)
		if err != nil {
			return err
		}
		found.DecrementAttempt()
		user = found
		return tx.Users().Save(found)
	})
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		s.audit.Log(user.ID, models.AuditAccountDeactivated, "user", user.ID, "", nil)
	}
	return &AttemptStatus{
		AttemptsLeft: user.CountAttempt,
		HasAttempts:  user.HasAttemptsLeft(),
	}, nil
}

// ListUsers returns all users, newest first.
func (s *userService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	page.Defaults()

	users, total, err := s.store.Users().List(page)
	if err != nil {
		return nil, err
	}
	resp := pagination.NewPageResponse(users, page, total)
	return &resp, nil
}

// UpdateRoles replaces a user's roles. ROLE_USER is always kept.
func (s *userService) UpdateRoles(userID uint, roles []string) (*models.User, error) {
	normalized := []string{models.RoleUser}
	for _, r := range roles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if !strings.HasPrefix(r, "ROLE_") || len(r) == len("ROLE_") {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "roles must look like ROLE_NAME")
		}
		if !containsString(normalized, r) {
			normalized = append(normalized, r)
		}
	}

	user, err := s.store.Users().FindByID(userID)
	if err != nil {
		return nil, err
	}
	previous := []string(user.Roles)
	user.Roles = datatypes.JSONSlice[string](normalized)
	if err := s.store.Users().Save(user); err != nil {
		return nil, err
	}

	s.audit.Log(user.ID, models.AuditRolesUpdated, "user", user.ID, "", map[string]any{
		"from": previous,
		"to":   normalized,
	})
	return user, nil
}

// Reactivate restores a deactivated account with a full attempt budget.
func (s *userService) Reactivate(userID uint) (*models.User, error) {
	user, err := s.store.Users().FindByID(userID)
	if err != nil {
		return nil, err
	}
	user.IsActive = true
	user.ResetAttempts()
	if err := s.store.Users().Save(user); err != nil {
		return nil, err
	}

	s.audit.Log(user.ID, models.AuditAccountReactivated, "user", user.ID, "", nil)
	return user, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

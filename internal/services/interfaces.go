package services

import (
	"context"
	"mime/multipart"

	"endpage/internal/models"
	"endpage/internal/moderation"
	"endpage/internal/pagination"
)

// Viewer identifies the caller of an operation. The zero value is an
// anonymous visitor.
type Viewer struct {
	UserID uint
	Roles  []string
}

// Anonymous is the viewer of unauthenticated requests.
var Anonymous = Viewer{}

func (v Viewer) IsAnonymous() bool { return v.UserID == 0 }

func (v Viewer) IsAdmin() bool {
	for _, r := range v.Roles {
		if r == models.RoleAdmin {
			return true
		}
	}
	return false
}

// CanManage reports whether the viewer may act as userID: themselves or an admin.
func (v Viewer) CanManage(userID uint) bool {
	return !v.IsAnonymous() && (v.UserID == userID || v.IsAdmin())
}

// RegisterInput carries the fields of a sign-up form.
type RegisterInput struct {
	Firstname string
	Lastname  string
	Username  string
	Email     string
	Password  string
}

// AttemptStatus is the result of spending one attempt.
type AttemptStatus struct {
	AttemptsLeft int  `json:"attempts_left"`
	HasAttempts  bool `json:"has_attempts"`
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	Register(ctx context.Context, in RegisterInput) (*models.User, error)
	Login(email, password, ipAddress string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	DecrementAttempt(userID uint) (*AttemptStatus, error)
	ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	UpdateRoles(userID uint, roles []string) (*models.User, error)
	Reactivate(userID uint) (*models.User, error)
}

// CreateEndPageInput carries the fields of a new page.
type CreateEndPageInput struct {
	Title           string
	Content         string
	Tone            models.Tone
	IsPrivate       bool
	BackgroundType  *models.BackgroundType
	BackgroundValue *string
	Emails          []string
	IPAddress       string
}

// CreateEndPageResult is a created page plus what the scanner reported.
// AttemptsLeft is set only when the owner was penalised.
type CreateEndPageResult struct {
	EndPage         *models.EndPage
	ContentWarnings []moderation.Warning
	AttemptsLeft    *int
}

// EndPageServicer defines the contract for end page business logic.
type EndPageServicer interface {
	Create(ctx context.Context, ownerID uint, in CreateEndPageInput) (*CreateEndPageResult, error)
	Get(ref string, viewer Viewer) (*models.EndPage, error)
	GetShared(uuid string) (*models.EndPage, error)
	ListPublic(page pagination.PageRequest) (*pagination.PageResponse[models.EndPage], error)
	ListByOwner(userID uint, viewer Viewer) ([]models.EndPage, error)
	AddRating(uuid string, rating int) (*models.EndPage, error)
	Delete(ctx context.Context, uuid string, viewer Viewer, ipAddress string) error
}

// CommentServicer defines the contract for comment business logic.
type CommentServicer interface {
	AddComment(pageRef, author, text string, viewer Viewer) (*models.Comment, error)
	ListComments(pageRef string, viewer Viewer) ([]models.Comment, error)
}

// UploadResult reports a batch upload. Errors holds one message per
// rejected file.
type UploadResult struct {
	Files  []models.Media `json:"files"`
	Errors []string       `json:"errors"`
}

// Succeeded reports whether at least one file was stored.
func (r *UploadResult) Succeeded() bool { return len(r.Files) > 0 }

// MediaServicer defines the contract for media uploads.
type MediaServicer interface {
	Upload(ctx context.Context, pageRef string, viewer Viewer, files []*multipart.FileHeader, ipAddress string) (*UploadResult, error)
}

// NotificationServicer sends transactional email. Failures are logged, never
// returned.
type NotificationServicer interface {
	SendWelcome(ctx context.Context, user *models.User)
	NotifyEndPageCreated(ctx context.Context, page *models.EndPage)
}

// AuditServicer records audit events and reads them back per user.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]any)
	History(userID uint) ([]models.AuditLog, error)
}

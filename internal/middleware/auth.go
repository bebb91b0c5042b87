package middleware

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"endpage/internal/config"
	apperrors "endpage/internal/errors"
	"endpage/internal/logger"
	"endpage/internal/models"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRoles  = "roles"
)

const tokenIssuer = "endpage-api"

// getJWTKey returns the JWT key from configuration
func getJWTKey() []byte {
	return []byte(config.Get().JWTSecret)
}

// JWTClaims represents the claims in the JWT
type JWTClaims struct {
	UserID uint     `json:"user_id"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session token for user, valid for
// JWT_EXPIRES_IN.
func GenerateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  []string(user.Roles),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(config.Get().JWTExpirationDur)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(getJWTKey())
}

// ParseToken validates a token string and returns its claims.
func ParseToken(tokenString string) (*JWTClaims, error) {
	claims := &JWTClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return getJWTKey(), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
// ok is false when the header is absent; err is set when it is malformed.
func bearerToken(c *gin.Context) (token string, ok bool, err error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", true, errors.New("invalid authorization header format")
	}
	return parts[1], true, nil
}

// AccountLoader reads the current state of a token's account.
type AccountLoader interface {
	GetUserByID(id uint) (*models.User, error)
}

// loadAccount resolves the account behind claims. Tokens outlive lockouts and
// role changes, so activity and roles always come from the stored user.
func loadAccount(accounts AccountLoader, claims *JWTClaims) (*models.User, *apperrors.AppError) {
	user, err := accounts.GetUserByID(claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrUnauthorized, "Account no longer exists")
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !user.IsActive {
		return nil, apperrors.WithDetails(apperrors.ErrAccountDeactivated, map[string]any{"is_active": false})
	}
	return user, nil
}

func setIdentity(c *gin.Context, user *models.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextEmail, user.Email)
	c.Set(ContextRoles, []string(user.Roles))
}

// AuthMiddleware verifies the JWT token, loads its account and sets the user
// in the context. Deactivated accounts are refused.
func AuthMiddleware(accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present, err := bearerToken(c)
		if !present {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Authorization header is required"))
			return
		}
		if err != nil {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid authorization header format"))
			return
		}

		claims, err := ParseToken(tokenString)
		if err != nil {
			abortWith(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid or expired token"))
			return
		}

		user, appErr := loadAccount(accounts, claims)
		if appErr != nil {
			if appErr.Internal != nil {
				logger.Get().Errorw("failed to load token account", "error", appErr.Internal, "user_id", claims.UserID)
			}
			abortWith(c, appErr)
			return
		}

		setIdentity(c, user)
		c.Next()
	}
}

// OptionalAuth identifies the caller when a valid token of an active account
// is supplied and otherwise lets the request through anonymously.
func OptionalAuth(accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, present, err := bearerToken(c)
		if present && err == nil {
			if claims, err := ParseToken(tokenString); err == nil {
				if user, appErr := loadAccount(accounts, claims); appErr == nil {
					setIdentity(c, user)
				}
			}
		}
		c.Next()
	}
}

// RequireRole rejects callers that do not hold role. Must run after
// AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles, _ := c.Get(ContextRoles)
		list, _ := roles.([]string)
		for _, r := range list {
			if r == role {
				c.Next()
				return
			}
		}
		abortWith(c, apperrors.ErrForbidden)
	}
}

func abortWith(c *gin.Context, appErr *apperrors.AppError) {
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.Body())
}

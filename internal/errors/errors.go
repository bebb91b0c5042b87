// Package errors provides the structured error type shared by services and
// handlers. Services return AppErrors; handlers turn them into JSON bodies of
// the form {"error": {"code", "message"}} plus optional top-level details.
// Internal causes are logged and never sent to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"-"`
	Internal   error          `json:"-"`
	Details    map[string]any `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches AppErrors by code, so values derived from a sentinel with
// Wrap, WithMessage or WithDetails still satisfy errors.Is(err, sentinel).
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Body renders the JSON response body: {"error": {"code", "message"}} with
// any details merged in at the top level.
func (e *AppError) Body() map[string]any {
	body := map[string]any{
		"error": map[string]any{
			"code":    e.Code,
			"message": e.Message,
		},
	}
	for k, v := range e.Details {
		if k == "error" {
			continue
		}
		body[k] = v
	}
	return body
}

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
		Details:    sentinel.Details,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
		Details:    sentinel.Details,
	}
}

// WithDetails creates a new AppError carrying extra response fields such as
// attempts_left. Details are rendered next to the "error" object.
func WithDetails(sentinel *AppError, details map[string]any) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
		Details:    details,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid credentials.", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountDeactivated = &AppError{Code: "ACCOUNT_DEACTIVATED", Message: "Account is deactivated due to too many failed attempts. Please contact support.", StatusCode: http.StatusUnauthorized}
	ErrAttemptsExhausted  = &AppError{Code: "ATTEMPTS_EXHAUSTED", Message: "No login attempts remaining.", StatusCode: http.StatusUnauthorized}
	ErrRateLimited        = &AppError{Code: "RATE_LIMITED", Message: "Too many requests, slow down", StatusCode: http.StatusTooManyRequests}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
	ErrWeakPassword   = &AppError{Code: "WEAK_PASSWORD", Message: "Password is not strong enough", StatusCode: http.StatusBadRequest}
)

// End page errors.
var (
	ErrEndPageNotFound = &AppError{Code: "END_PAGE_NOT_FOUND", Message: "End page not found", StatusCode: http.StatusNotFound}
	ErrInvalidUUID     = &AppError{Code: "INVALID_UUID", Message: "Invalid UUID format", StatusCode: http.StatusBadRequest}
	ErrInvalidRating   = &AppError{Code: "INVALID_RATING", Message: "Rating must be between 1 and 5", StatusCode: http.StatusBadRequest}
	ErrInvalidTone     = &AppError{Code: "INVALID_TONE", Message: "Unsupported tone", StatusCode: http.StatusBadRequest}
)

// Media errors.
var (
	ErrNoFiles        = &AppError{Code: "NO_FILES", Message: "No files field in request", StatusCode: http.StatusBadRequest}
	ErrUploadRejected = &AppError{Code: "UPLOAD_REJECTED", Message: "No files were uploaded", StatusCode: http.StatusBadRequest}
)

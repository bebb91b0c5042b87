package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "endpage/internal/errors"
	"endpage/internal/logger"
)

// ErrorHandler renders the last error a handler attached to the context with
// c.Error. Binding errors become INVALID_INPUT. Anything that is not an
// AppError is logged and answered with INTERNAL_ERROR.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		last := c.Errors.Last()
		log := logger.Get().With(
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if last.IsType(gin.ErrorTypeBind) {
			appErr := apperrors.WithMessage(apperrors.ErrInvalidInput, last.Err.Error())
			c.JSON(appErr.StatusCode, appErr.Body())
			return
		}

		var appErr *apperrors.AppError
		if errors.As(last.Err, &appErr) {
			if appErr.Internal != nil {
				log.Errorw("request failed", "code", appErr.Code, "internal", appErr.Internal.Error())
			}
			c.JSON(appErr.StatusCode, appErr.Body())
			return
		}

		log.Errorw("unexpected error", "error", last.Err.Error())
		c.JSON(apperrors.ErrInternalServer.StatusCode, apperrors.ErrInternalServer.Body())
	}
}

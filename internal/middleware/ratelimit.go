package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/httprate"

	apperrors "endpage/internal/errors"
)

// RateLimit allows at most requests per window for each client IP and
// endpoint pair. Over-limit requests get a 429 RATE_LIMITED body; the
// X-RateLimit-* and Retry-After headers come from httprate.
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := httprate.NewRateLimiter(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {}),
	)

	return func(c *gin.Context) {
		allowed := false
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed = true
		})
		limiter.Handler(next).ServeHTTP(c.Writer, c.Request)

		if !allowed {
			c.AbortWithStatusJSON(apperrors.ErrRateLimited.StatusCode, apperrors.ErrRateLimited.Body())
			return
		}
		c.Next()
	}
}

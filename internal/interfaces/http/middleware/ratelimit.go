package middleware

import (
	"github.com/gin-gonic/gin"
	domainerrors "keygate.backend/internal/domain/errors"
	"keygate.backend/internal/interfaces/http/response"
	"keygate.backend/pkg/ratelimit"
)

// RateLimitMiddleware enforces the per-minute ceiling of the authenticated
// access key. Keys without a ceiling pass through without touching Redis.
// Must run after AccessKeyAuth.
func RateLimitMiddleware(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, exists := GetAccessKey(c)
		if !exists {
			response.AbortError(c, domainerrors.Unauthorized())
			return
		}

		allowed, err := limiter.Attempt(c.Request.Context(), key.ID.String(), key.RateLimit)
		if err != nil {
			response.AbortError(c, domainerrors.Internal(err))
			return
		}
		if !allowed {
			response.AbortError(c, domainerrors.RateLimited())
			return
		}

		c.Next()
	}
}

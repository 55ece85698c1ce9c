package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/alessok/devops-proyecto-final/internal/core/serviceerrors"
	"github.com/gin-gonic/gin"
)

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

func RateLimit(limiter RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:%s:%s", c.Request.Method, c.FullPath(), c.ClientIP())

		// fail open when the limiter is unavailable
		allowed, err := limiter.Allow(c.Request.Context(), key, limit, window)
		if err != nil {
			c.Next()
			return
		}
		if !allowed {
			abort(c, serviceerrors.NewRateLimitedError("Rate limit exceeded"))
			return
		}
		c.Next()
	}
}

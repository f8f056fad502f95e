package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mshelar/shop-service/internal/service"
)

// RateLimitMiddleware throttles requests per client IP using the Redis
// sliding-window limiter. Requests over the limit get a 429.
func RateLimitMiddleware(limiter *service.RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := limiter.Allow(c.Request.Context(), c.ClientIP(), limit, window); err != nil {
			respondError(c, err)
			c.Abort()
			return
		}
		c.Next()
	}
}

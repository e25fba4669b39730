package ratelimit

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hazra-dev/vidtube/internal/pkg/response"
)

// Middleware limits requests per caller. Authenticated callers are keyed
// by user id, anonymous ones by client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetString("userID")
		if key == "" {
			key = c.ClientIP()
		}

		if !limiter.Allow(key) {
			resetTime := limiter.ResetTime(key)
			retryAfter := time.Until(resetTime).Round(time.Second)
			if retryAfter < 0 {
				retryAfter = 0
			}

			c.Header("Retry-After", resetTime.Format(time.RFC3339))
			c.JSON(http.StatusTooManyRequests, response.APIResponse{
				Success:    false,
				StatusCode: http.StatusTooManyRequests,
				Message:    "Rate limit exceeded. Try again later.",
				Code:       "RATE_LIMITED",
				Data: gin.H{
					"retry_after": retryAfter.String(),
					"reset_time":  resetTime.Format(time.RFC3339),
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

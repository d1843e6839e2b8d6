// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
	"github.com/talentedge/console-api/validation"
)

// RateLimiter throttles by client IP using the same sliding-window store the
// per-user limiter uses. Store failures fail open.
func RateLimiter(store validation.AttemptStore, limit int64, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		count, err := store.RecordAndCount(c.Request.Context(), key, per)
		if err != nil {
			logger.Warn("Rate limiting unavailable, allowing request",
				zap.Error(err), zap.String("ip", c.ClientIP()))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(limit, 10))
		c.Header("X-RateLimit-Duration", per.String())

		if count > limit {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.Int64("limit", limit),
				zap.Duration("per", per))
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
			c.Abort()
			return
		}

		c.Next()
	}
}

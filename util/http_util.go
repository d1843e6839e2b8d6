// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/talentedge/console-api/logging"
)

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, gin.H{"error": message})
}

// RequesterID returns the requester identity attached by the middleware.
func RequesterID(c *gin.Context) string {
	if id, exists := c.Get("requesterID"); exists {
		return id.(string)
	}
	return ""
}

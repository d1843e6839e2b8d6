// middleware/requester.go

package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Requester extracts the authenticated requester identity set by the edge
// proxy. The console sits behind the company gateway, so the header is
// trusted here; role resolution happens in the validation layer.
func Requester() gin.HandlerFunc {
	return func(c *gin.Context) {
		requesterID := c.GetHeader("X-User-ID")
		if requesterID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing X-User-ID header"})
			c.Abort()
			return
		}
		c.Set("requesterID", requesterID)
		c.Next()
	}
}

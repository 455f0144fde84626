package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// RecoveryWithLog turns panics into a generic 500 envelope. The panic value
// and stack are logged server-side and never reach the client.
func RecoveryWithLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				requestID, _ := c.Get("request_id")
				log.Printf("panic recovered (request_id=%v method=%s path=%s): %v\n%s",
					requestID, c.Request.Method, c.Request.URL.Path, r, debug.Stack())

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"error":   "An unexpected error occurred",
				})
			}
		}()
		c.Next()
	}
}

package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Recovery turns a panic into the JSON 500 body every other failure uses.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		var panicError error
		switch e := recovered.(type) {
		case error:
			panicError = e
		default:
			panicError = fmt.Errorf("%v", e)
		}
		log.Printf("panic: %s %s: %v", c.Request.Method, c.Request.URL.Path, panicError)

		c.Header("Connection", "close")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_server_error",
			"message": "internal server error",
		})
	})
}

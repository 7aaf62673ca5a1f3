package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	RequestIDHeader = "X-Request-ID"
	RequestIDKey    = "request_id"
)

// RequestID reuses the caller's X-Request-ID or generates one, and echoes
// it back on the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLogFormatter is gin's default log line with the request id added.
func AccessLogFormatter(p gin.LogFormatterParams) string {
	id, _ := p.Keys[RequestIDKey].(string)

	return fmt.Sprintf("[GIN] %v | %3d | %13v | %15s | %-7s %#v | %s\n%s",
		p.TimeStamp.Format(time.RFC3339),
		p.StatusCode,
		p.Latency,
		p.ClientIP,
		p.Method,
		p.Path,
		id,
		p.ErrorMessage,
	)
}

package middleware

import (
	"github.com/ErlanBelekov/easydev/internal/requestid"
	"github.com/gin-gonic/gin"
)

// RequestID puts the request ID on the request context (picked up by the slog
// context handler) and echoes it back. Unsafe incoming IDs are replaced.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := requestid.FromHeader(c.GetHeader(requestid.Header))

		c.Request = c.Request.WithContext(requestid.WithRequestID(c.Request.Context(), id))
		c.Header(requestid.Header, id)
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/shared/server/respond"
	"skillbridge-backend/internal/shared/telemetry"
)

// Recovery converts panics into a 500 error envelope. Streaming handlers
// that already sent headers still get the panic logged.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			telemetry.Error("panic recovered", map[string]any{
				"request_id": RequestIDFromContext(c),
				"method":     c.Request.Method,
				"path":       c.Request.URL.Path,
				"error":      rec,
				"stack":      string(debug.Stack()),
			})
			if !c.Writer.Written() {
				respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
			}
			c.Abort()
		}()
		c.Next()
	}
}

package middleware

import (
	"net/http"
	"net/url"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-web/internal/shared/metrics"
	"resume-web/internal/shared/server/respond"
	"resume-web/internal/shared/telemetry"
)

// Recovery turns a panic into an error response. A panic inside a page event
// sends the browser back to the page, which still holds its last saved state.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			sid := SessionIDFromContext(c)
			event := c.GetString(pageEventKey)
			telemetry.Error("panic", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      rec,
				"stack":      string(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"page_sid":   sid,
				"event":      event,
			})
			if event == "" || sid == "" || c.Writer.Written() {
				respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
				return
			}
			metrics.IncPageEvent(c.FullPath(), event, "panic")
			c.Abort()
			c.Redirect(http.StatusSeeOther, c.Request.URL.Path+"?"+url.Values{"sid": {sid}}.Encode())
		}()
		c.Next()
	}
}

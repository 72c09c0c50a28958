package respond

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-web/internal/shared/telemetry"
)

// ErrorBody defines the standardized error object.
type ErrorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// ErrorResponse wraps the error body.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

var errorPage = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="utf-8"><title>{{.Status}} {{.StatusText}}</title>
<script src="https://cdn.tailwindcss.com"></script></head>
<body class="min-h-screen flex items-center justify-center bg-gray-50 text-gray-800">
<main class="text-center space-y-3">
<h1 class="text-3xl font-bold">{{.Status}}</h1>
<p>{{.Message}}</p>
<a class="text-blue-600 underline" href="/">Back to start</a>
</main></body></html>`))

// Error sends a standardized error response. Browsers get an HTML page and
// everything else gets JSON.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if sid := c.GetString("pageSid"); sid != "" {
		fields["page_sid"] = sid
	}
	telemetry.Error("http.error", fields)

	if c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML {
		var buf bytes.Buffer
		_ = errorPage.Execute(&buf, map[string]any{
			"Status":     status,
			"StatusText": http.StatusText(status),
			"Message":    message,
		})
		c.Abort()
		c.Data(status, "text/html; charset=utf-8", buf.Bytes())
		return
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

package respond

import (
	"github.com/gin-gonic/gin"

	"docsummary-backend/internal/shared/telemetry"
)

// ErrorResponse is the wire shape for every error: a single message string.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends an error response and logs it with request context.
func Error(c *gin.Context, status int, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

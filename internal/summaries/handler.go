package summaries

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docsummary-backend/internal/extract"
	"docsummary-backend/internal/llm"
	"docsummary-backend/internal/shared/server/respond"
	"docsummary-backend/internal/shared/storage/object"
)

// Handler wires the summarize endpoint to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the summarize route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/summarize", h.summarize)
}

type summarizeRequest struct {
	FilePath string `json:"filePath"`
	Language string `json:"language"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Cached  bool   `json:"cached,omitempty"`
}

func (h *Handler) summarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		respond.Error(c, http.StatusBadRequest, "filePath is required")
		return
	}

	c.Set("documentPath", req.FilePath)

	result, err := h.Svc.Summarize(c.Request.Context(), req.FilePath, NormalizeLanguage(req.Language))
	if err != nil {
		h.writeError(c, req.FilePath, err)
		return
	}

	respond.OK(c, summarizeResponse{Summary: result.Summary, Cached: result.Cached})
}

func (h *Handler) writeError(c *gin.Context, docPath string, err error) {
	switch {
	case errors.Is(err, object.ErrNotExist):
		respond.Error(c, http.StatusNotFound, "File not found")
	case errors.Is(err, ErrEmptyText):
		respond.Error(c, http.StatusBadRequest, "No text content could be extracted from this file.")
	case errors.Is(err, extract.ErrUnsupportedType):
		respond.Error(c, http.StatusBadRequest, fmt.Sprintf("Unsupported file type for summary: %s", extract.Ext(docPath)))
	case errors.Is(err, llm.ErrNotConfigured):
		respond.Error(c, http.StatusInternalServerError, "No LLM provider configured. Set LLM_PROVIDER with GEMINI_API_KEY or OPENAI_API_KEY.")
	default:
		respond.Error(c, http.StatusInternalServerError, err.Error()+troubleshootingHint(err))
	}
}

// troubleshootingHint appends an ad hoc remediation note for two recognized
// provider failure shapes. Textual only; there is no structured retry.
func troubleshootingHint(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "invalid_request") {
		return " Check: 1) provider account balance 2) API key valid 3) account activated."
	}
	if strings.Contains(msg, "timed out") || strings.Contains(msg, "timeout") {
		return " Try the DeepSeek endpoint: set LLM_PROVIDER=deepseek."
	}
	return ""
}

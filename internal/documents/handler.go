package documents

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"docsummary-backend/internal/extract"
	"docsummary-backend/internal/shared/server/respond"
	"docsummary-backend/internal/shared/storage/object"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents", h.list)
	rg.POST("/documents", h.upload)
	rg.DELETE("/documents/:path", h.delete)
	rg.GET("/documents/content", h.content)
	rg.GET("/documents/download-summary", h.downloadSummary)
	rg.POST("/documents/save-summary", h.saveSummary)
	rg.GET("/summary-history", h.summaryHistory)
}

func (h *Handler) list(c *gin.Context) {
	files, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, ListResponse{Files: files})
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "Unable to read file")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.Svc.Upload(c.Request.Context(), fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateName):
			respond.Error(c, http.StatusConflict, "A file with this name has already been uploaded.")
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, err.Error())
		default:
			respond.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	c.Set("documentPath", result.Path)
	respond.OK(c, result)
}

func (h *Handler) delete(c *gin.Context) {
	raw := c.Param("path")
	docPath := raw
	if decoded, err := url.QueryUnescape(raw); err == nil {
		docPath = decoded
	}
	if strings.TrimSpace(docPath) == "" {
		respond.Error(c, http.StatusBadRequest, "Path is required")
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), docPath); err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Set("documentPath", docPath)
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) content(c *gin.Context) {
	docPath := strings.TrimSpace(c.Query("path"))
	if docPath == "" {
		respond.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	content, err := h.Svc.Content(c.Request.Context(), docPath)
	if err != nil {
		switch {
		case errors.Is(err, object.ErrNotExist):
			respond.Error(c, http.StatusNotFound, "File not found")
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusBadRequest, fmt.Sprintf("Preview not available for this file type (%s).", extract.Ext(docPath)))
		default:
			respond.Error(c, http.StatusBadRequest, err.Error())
		}
		return
	}
	respond.OK(c, gin.H{"content": content})
}

func (h *Handler) downloadSummary(c *gin.Context) {
	docPath := strings.TrimSpace(c.Query("path"))
	if docPath == "" {
		respond.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	data, fileName, err := h.Svc.Download(c.Request.Context(), docPath)
	if err != nil {
		if errors.Is(err, object.ErrNotExist) {
			respond.Error(c, http.StatusNotFound, "File not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", data)
}

type saveSummaryRequest struct {
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
	Summary  string `json:"summary"`
}

func (h *Handler) saveSummary(c *gin.Context) {
	var req saveSummaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.FilePath) == "" {
		respond.Error(c, http.StatusBadRequest, "filePath is required")
		return
	}

	result, err := h.Svc.SaveSummary(c.Request.Context(), req.FilePath, req.FileName, req.Summary)
	if err != nil {
		if errors.Is(err, ErrNoSummary) {
			respond.Error(c, http.StatusBadRequest, "No summary to save. Generate a summary first.")
			return
		}
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, result)
}

func (h *Handler) summaryHistory(c *gin.Context) {
	docPath := strings.TrimSpace(c.Query("path"))
	if docPath == "" {
		respond.Error(c, http.StatusBadRequest, "path is required")
		return
	}

	history, err := h.Svc.History(c.Request.Context(), docPath)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, gin.H{"history": history})
}

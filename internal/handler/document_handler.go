package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscoex/internal/domain"
	"fiscoex/internal/service"
)

// DocumentHandler handles fiscal document upload and display endpoints.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// Upload handles POST /api/v1/documents. It accepts one multipart file field
// named "file" and runs the extraction pipeline synchronously.
func (h *DocumentHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "multipart field 'file' is required")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not read uploaded file")
		return
	}

	sessionID, err := sessionFromContext(c)
	if err != nil {
		return
	}

	doc, err := h.documentService.Extract(sessionID, service.ExtractInput{
		Filename: fileHeader.Filename,
		Data:     data,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	// The upload response is a masked view: raw values only leave through
	// an explicit view=raw or a raw export.
	view, err := h.documentService.Render(sessionID, doc.ID, domain.ModeMasked)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, view)
}

// List handles GET /api/v1/documents.
func (h *DocumentHandler) List(c *gin.Context) {
	sessionID, err := sessionFromContext(c)
	if err != nil {
		return
	}

	docs, err := h.documentService.List(sessionID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, docs)
}

// GetByID handles GET /api/v1/documents/:id. The view query parameter picks
// the rendering of sensitive values; the default is masked so that raw data
// never leaves the server without being asked for.
func (h *DocumentHandler) GetByID(c *gin.Context) {
	sessionID, err := sessionFromContext(c)
	if err != nil {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document id")
		return
	}

	mode, ok := parseMode(c.DefaultQuery("view", string(domain.ModeMasked)))
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "view must be raw, masked or encrypted")
		return
	}

	view, err := h.documentService.Render(sessionID, docID, mode)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, view)
}

func parseMode(s string) (domain.ExportMode, bool) {
	switch domain.ExportMode(s) {
	case domain.ModeRaw, domain.ModeMasked, domain.ModeEncrypted:
		return domain.ExportMode(s), true
	default:
		return "", false
	}
}

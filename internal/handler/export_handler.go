package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscoex/internal/domain"
	"fiscoex/internal/service"
)

// ExportHandler handles document export downloads.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /api/v1/documents/:id/export. Query parameters pick the
// artifact: format (csv or xlsx, default csv) and mode (raw, masked or
// encrypted, default masked).
func (h *ExportHandler) Export(c *gin.Context) {
	sessionID, err := sessionFromContext(c)
	if err != nil {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document id")
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.FormatCSV)))
	if format != domain.FormatCSV && format != domain.FormatXLSX {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "format must be csv or xlsx")
		return
	}

	mode, ok := parseMode(c.DefaultQuery("mode", string(domain.ModeMasked)))
	if !ok {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "mode must be raw, masked or encrypted")
		return
	}

	artifact, err := h.exportService.Export(sessionID, docID, format, mode)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
}

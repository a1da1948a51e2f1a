package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscoex/internal/service"
)

// AnalysisHandler handles compliance analysis requests.
type AnalysisHandler struct {
	analysisService service.AnalysisService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisService: analysisService}
}

// Analyze handles POST /api/v1/documents/:id/analysis. The three analysis
// stages run synchronously against the session's LLM provider, so this call
// blocks for their combined latency.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	sessionID, err := sessionFromContext(c)
	if err != nil {
		return
	}

	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid document id")
		return
	}

	result, err := h.analysisService.Analyze(c.Request.Context(), sessionID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

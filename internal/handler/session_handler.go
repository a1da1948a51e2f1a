package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fiscoex/internal/service"
)

// SessionHandler handles BYOK login.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// Login handles POST /api/v1/auth/login. The request carries the user's own
// LLM API key; the response carries a session token bound to it.
func (h *SessionHandler) Login(c *gin.Context) {
	var req service.LoginInput
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "provider (openai or gemini) and api_key are required")
		return
	}

	out, err := h.sessionService.Login(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}

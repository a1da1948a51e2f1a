package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"fiscoex/internal/domain"
	"fiscoex/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "document not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "SESSION_EXPIRED", "session expired; log in again"
	case errors.Is(err, domain.ErrInvalidAPIKey):
		return http.StatusUnauthorized, "INVALID_API_KEY", "the provided LLM API key was rejected by the provider"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: txt, xml"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrMalformedDocument):
		return http.StatusUnprocessableEntity, "MALFORMED_DOCUMENT", "file could not be parsed as a fiscal document"
	case errors.Is(err, domain.ErrCipherFailure):
		return http.StatusInternalServerError, "CIPHER_FAILURE", "encryption is unavailable for this session"
	case errors.Is(err, domain.ErrUpstreamService):
		return http.StatusBadGateway, "UPSTREAM_SERVICE", "the LLM provider returned an error"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// sessionFromContext extracts the session ID set by the auth middleware.
// Returns an error after writing the 401 response, so callers just return.
func sessionFromContext(c *gin.Context) (uuid.UUID, error) {
	sessionID, err := middleware.GetSessionID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing session context")
		return uuid.Nil, err
	}
	return sessionID, nil
}

// HandleError maps a domain error and sends the appropriate error response.
// Provider failures carry the provider's own message: it is reported
// verbatim, so the full error text becomes the response message.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if errors.Is(err, domain.ErrUpstreamService) {
		msg = err.Error()
	}
	if status >= 500 {
		middleware.LogError(c, err)
	}
	RespondError(c, status, code, msg)
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"fiscoex/internal/domain"
	"fiscoex/internal/middleware"
	"fiscoex/internal/service"
	"fiscoex/internal/store"
	"fiscoex/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func authedEngine(svc service.SessionService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.AuthMiddleware(svc))
	r.GET("/protected", func(c *gin.Context) {
		id, err := middleware.GetSessionID(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"session_id": id})
	})
	return r
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	sessionID := uuid.New()
	svc := new(mocks.MockSessionService)
	svc.On("ValidateToken", "good-token").Return(&service.Claims{SessionID: sessionID, Provider: domain.ProviderOpenAI}, nil)
	svc.On("GetSession", sessionID).Return(&store.Session{ID: sessionID, ExpiresAt: time.Now().Add(time.Hour)}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	authedEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	svc := new(mocks.MockSessionService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	authedEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	svc := new(mocks.MockSessionService)
	svc.On("ValidateToken", "bad-token").Return(nil, domain.ErrUnauthorized)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	authedEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_TokenOutlivesSession(t *testing.T) {
	sessionID := uuid.New()
	svc := new(mocks.MockSessionService)
	svc.On("ValidateToken", "stale-token").Return(&service.Claims{SessionID: sessionID}, nil)
	svc.On("GetSession", sessionID).Return(nil, domain.ErrSessionExpired)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer stale-token")
	authedEngine(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "SESSION_EXPIRED")
}

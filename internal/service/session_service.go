package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fiscoex/internal/cipher"
	"fiscoex/internal/config"
	"fiscoex/internal/domain"
	"fiscoex/internal/llm"
	"fiscoex/internal/port"
	"fiscoex/internal/store"
)

// Claims represents the JWT claims carrying the session reference.
type Claims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID          `json:"session_id"`
	Provider  domain.LLMProvider `json:"provider"`
}

// LoginInput is the DTO for BYOK login requests.
type LoginInput struct {
	Provider string `json:"provider" binding:"required,oneof=openai gemini"`
	APIKey   string `json:"api_key" binding:"required"`
}

// LoginOutput carries the issued session token.
type LoginOutput struct {
	Token     string             `json:"token"`
	Provider  domain.LLMProvider `json:"provider"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// ClientFactory creates a compliance client; swapped in tests.
type ClientFactory func(provider domain.LLMProvider, cfg *llm.ClientConfig) (port.ComplianceClient, error)

// SessionService defines the BYOK session contract.
type SessionService interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	ValidateToken(tokenString string) (*Claims, error)
	GetSession(id uuid.UUID) (*store.Session, error)
}

type sessionService struct {
	store      *store.Memory
	sessionCfg config.SessionConfig
	cipherCfg  config.CipherConfig
	llmCfg     config.LLMConfig
	newClient  ClientFactory
}

// NewSessionService creates a SessionService. A nil factory uses the
// registered provider clients.
func NewSessionService(
	st *store.Memory,
	sessionCfg config.SessionConfig,
	cipherCfg config.CipherConfig,
	llmCfg config.LLMConfig,
	factory ClientFactory,
) SessionService {
	if factory == nil {
		factory = llm.NewClient
	}
	return &sessionService{
		store:      st,
		sessionCfg: sessionCfg,
		cipherCfg:  cipherCfg,
		llmCfg:     llmCfg,
		newClient:  factory,
	}
}

// Login validates the supplied LLM API key, derives a session cipher key and
// issues a JWT referencing the new session. The API key and cipher key stay
// inside the in-memory session for its whole lifetime.
func (s *sessionService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	provider := domain.LLMProvider(input.Provider)

	if s.llmCfg.ValidateKey {
		client, err := s.newClient(provider, &llm.ClientConfig{
			APIKey:      input.APIKey,
			Model:       s.modelFor(provider),
			TimeoutSecs: s.llmCfg.TimeoutSecs,
		})
		if err != nil {
			return nil, fmt.Errorf("session.Login: %w", err)
		}
		if err := client.ValidateKey(ctx); err != nil {
			return nil, err
		}
	}

	secret, err := randomSecret()
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	salt, err := cipher.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	key := cipher.DeriveKey(secret, salt, s.cipherCfg.Iterations, s.cipherCfg.KeyLength)
	proc, err := cipher.NewProcessor(key)
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}

	now := time.Now()
	sess := &store.Session{
		ID:        uuid.New(),
		Provider:  provider,
		APIKey:    input.APIKey,
		Cipher:    proc,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionCfg.Expiry),
	}
	s.store.PutSession(sess)

	token, err := s.signToken(sess)
	if err != nil {
		return nil, fmt.Errorf("session.Login: %w", err)
	}
	return &LoginOutput{Token: token, Provider: provider, ExpiresAt: sess.ExpiresAt}, nil
}

func (s *sessionService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.sessionCfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

func (s *sessionService) GetSession(id uuid.UUID) (*store.Session, error) {
	return s.store.GetSession(id)
}

func (s *sessionService) modelFor(provider domain.LLMProvider) string {
	if provider == domain.ProviderGemini {
		return s.llmCfg.GeminiModel
	}
	return s.llmCfg.OpenAIModel
}

func (s *sessionService) signToken(sess *store.Session) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.ID.String(),
			Issuer:    s.sessionCfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
			ID:        uuid.New().String(),
		},
		SessionID: sess.ID,
		Provider:  sess.Provider,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.sessionCfg.Secret))
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

func randomSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

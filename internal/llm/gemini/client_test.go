package gemini_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fiscoex/internal/domain"
	"fiscoex/internal/llm"
	"fiscoex/internal/llm/gemini"
	"fiscoex/internal/port"
)

func TestComplete_Success(t *testing.T) {
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"análise tributária"}]}}]}`))
	}))
	defer srv.Close()

	c := gemini.NewClientWithEndpoints(&llm.ClientConfig{APIKey: "g-key"}, srv.URL, srv.URL)
	out, err := c.Complete(context.Background(), port.CompletionInput{System: "sys", Prompt: "analise"})
	require.NoError(t, err)
	assert.Equal(t, "análise tributária", out)
	assert.Equal(t, "g-key", gotKey)
}

func TestComplete_EmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := gemini.NewClientWithEndpoints(&llm.ClientConfig{APIKey: "g-key"}, srv.URL, srv.URL)
	_, err := c.Complete(context.Background(), port.CompletionInput{Prompt: "x"})
	assert.ErrorIs(t, err, domain.ErrUpstreamService)
}

func TestComplete_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid argument"}}`))
	}))
	defer srv.Close()

	c := gemini.NewClientWithEndpoints(&llm.ClientConfig{APIKey: "g-key"}, srv.URL, srv.URL)
	_, err := c.Complete(context.Background(), port.CompletionInput{Prompt: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamService)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestValidateKey_PermissionDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := gemini.NewClientWithEndpoints(&llm.ClientConfig{APIKey: "bad"}, srv.URL, srv.URL)
	assert.ErrorIs(t, c.ValidateKey(context.Background()), domain.ErrInvalidAPIKey)
}

func TestDefaultModel(t *testing.T) {
	c := gemini.NewClient(&llm.ClientConfig{APIKey: "g-key"})
	assert.Equal(t, "gemini-2.0-flash", c.Model())
}

// Package openai implements the compliance client for the OpenAI Chat
// Completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fiscoex/internal/domain"
	"fiscoex/internal/llm"
	"fiscoex/internal/port"
)

const (
	apiURL    = "https://api.openai.com/v1/chat/completions"
	modelsURL = "https://api.openai.com/v1/models"
)

func init() {
	llm.RegisterProvider(domain.ProviderOpenAI, func(cfg *llm.ClientConfig) port.ComplianceClient {
		return NewClient(cfg)
	})
}

// Client implements port.ComplianceClient against the OpenAI API.
type Client struct {
	apiKey         string
	model          string
	endpoint       string
	modelsEndpoint string
	client         *http.Client
}

// NewClient creates an OpenAI compliance client from a per-session config.
func NewClient(cfg *llm.ClientConfig) *Client {
	return newClient(cfg, apiURL, modelsURL)
}

// NewClientWithEndpoints creates a client pointing at custom API endpoints
// (for testing).
func NewClientWithEndpoints(cfg *llm.ClientConfig, endpoint, modelsEndpoint string) *Client {
	return newClient(cfg, endpoint, modelsEndpoint)
}

func newClient(cfg *llm.ClientConfig, endpoint, modelsEndpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey:         cfg.APIKey,
		model:          model,
		endpoint:       endpoint,
		modelsEndpoint: modelsEndpoint,
		client:         &http.Client{Timeout: timeout},
	}
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

func (c *Client) Complete(ctx context.Context, input port.CompletionInput) (string, error) {
	reqBody := map[string]interface{}{
		"model": c.model,
		"messages": []map[string]interface{}{
			{"role": "system", "content": input.System},
			{"role": "user", "content": input.Prompt},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling openai API: %v", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrUpstreamService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: openai API error (status %d): %s",
			domain.ErrUpstreamService, resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrUpstreamService, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response from API: no choices", domain.ErrUpstreamService)
	}
	return parsed.Choices[0].Message.Content, nil
}

// ValidateKey checks the API key with a model-list call, the cheapest
// authenticated request the API offers.
func (c *Client) ValidateKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsEndpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: calling openai API: %v", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrInvalidAPIKey
	default:
		return fmt.Errorf("%w: openai API error (status %d)", domain.ErrUpstreamService, resp.StatusCode)
	}
}

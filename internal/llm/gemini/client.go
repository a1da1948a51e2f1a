// Package gemini implements the compliance client for Google's Gemini API.
package gemini

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

const apiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

func init() {
	llm.RegisterProvider(domain.ProviderGemini, func(cfg *llm.ClientConfig) port.ComplianceClient {
		return NewClient(cfg)
	})
}

// Client implements port.ComplianceClient against the Gemini API.
type Client struct {
	apiKey         string
	model          string
	endpoint       string
	modelsEndpoint string
	client         *http.Client
}

// NewClient creates a Gemini compliance client from a per-session config.
func NewClient(cfg *llm.ClientConfig) *Client {
	return newClient(cfg, "", "")
}

// NewClientWithEndpoints creates a client pointing at custom API endpoints
// (for testing).
func NewClientWithEndpoints(cfg *llm.ClientConfig, endpoint, modelsEndpoint string) *Client {
	return newClient(cfg, endpoint, modelsEndpoint)
}

func newClient(cfg *llm.ClientConfig, endpoint, modelsEndpoint string) *Client {
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if endpoint == "" {
		endpoint = fmt.Sprintf("%s/%s:generateContent", apiBaseURL, model)
	}
	if modelsEndpoint == "" {
		modelsEndpoint = apiBaseURL
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
		"systemInstruction": map[string]interface{}{
			"parts": []map[string]interface{}{{"text": input.System}},
		},
		"contents": []map[string]interface{}{
			{
				"role":  "user",
				"parts": []map[string]interface{}{{"text": input.Prompt}},
			},
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
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: calling gemini API: %v", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrUpstreamService, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: gemini API error (status %d): %s",
			domain.ErrUpstreamService, resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: unmarshaling response: %v", domain.ErrUpstreamService, err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty response from API", domain.ErrUpstreamService)
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// ValidateKey checks the API key by listing models, mirroring the login
// validation the review UI performs.
func (c *Client) ValidateKey(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.modelsEndpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: calling gemini API: %v", domain.ErrUpstreamService, err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return domain.ErrInvalidAPIKey
	default:
		return fmt.Errorf("%w: gemini API error (status %d)", domain.ErrUpstreamService, resp.StatusCode)
	}
}

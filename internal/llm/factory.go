// Package llm holds the compliance-analysis prompt set, the provider
// registry and the document serialization sent to providers.
package llm

import (
	"fmt"

	"fiscoex/internal/domain"
	"fiscoex/internal/port"
)

// ClientConfig holds the per-session settings for one provider client.
type ClientConfig struct {
	APIKey      string
	Model       string
	TimeoutSecs int
}

// ClientFactory creates a ComplianceClient from a per-session config.
type ClientFactory func(cfg *ClientConfig) port.ComplianceClient

// registry of provider factories, populated by init() in each provider
// package or explicitly via RegisterProvider.
var providers = map[domain.LLMProvider]ClientFactory{}

// RegisterProvider registers a client factory by provider name.
func RegisterProvider(name domain.LLMProvider, factory ClientFactory) {
	providers[name] = factory
}

// NewClient creates a ComplianceClient for the given provider.
func NewClient(provider domain.LLMProvider, cfg *ClientConfig) (port.ComplianceClient, error) {
	factory, ok := providers[provider]
	if !ok {
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
	return factory(cfg), nil
}

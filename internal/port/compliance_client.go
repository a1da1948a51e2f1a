package port

import "context"

// CompletionInput carries one compliance-analysis request to an LLM.
type CompletionInput struct {
	System string
	Prompt string
}

// ComplianceClient abstracts a hosted LLM used for tax-compliance analysis.
// Implementations are created per session from the user-supplied key (BYOK)
// and make synchronous calls with no retry policy.
type ComplianceClient interface {
	Complete(ctx context.Context, input CompletionInput) (string, error)
	ValidateKey(ctx context.Context) error
	Model() string
}

package providers

import "context"

// Provider generates reply text from a pair of prompts.
//
// Implementations must honour ctx cancellation and return an *UpstreamError
// for every failure.
type Provider interface {
	// Name returns the provider identifier used in reasons and metrics,
	// e.g. "openai".
	Name() string

	// Model returns the model the provider sends requests to.
	Model() string

	// Complete sends one non-streaming completion request.
	Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error)
}

// CompletionRequest is a provider-agnostic completion request.
type CompletionRequest struct {
	// APIKey authenticates the call. Providers that need no key ignore it.
	APIKey string

	SystemPrompt string
	UserPrompt   string
}

// CompletionResponse is a provider-agnostic completion result.
type CompletionResponse struct {
	// Text is the trimmed reply. It is never empty.
	Text string

	Provider string
	Model    string
}

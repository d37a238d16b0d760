package providers

import (
	"testing"

	"the-savior/edge/pkg/providers"
)

// TestKey is a well-formed OpenAI key for tests.
const TestKey = "sk-test-0123456789abcdefghij"

// TestCompletionRequest creates a test completion request.
func TestCompletionRequest() *providers.CompletionRequest {
	return &providers.CompletionRequest{
		APIKey:       TestKey,
		SystemPrompt: "너는 코치다.",
		UserPrompt:   "오늘 너무 지쳤어요.",
	}
}

// AssertUpstreamKind fails the test unless err is an *UpstreamError of kind
// and returns it.
func AssertUpstreamKind(t *testing.T, err error, kind providers.ErrorKind) *providers.UpstreamError {
	t.Helper()
	ue, ok := providers.AsUpstreamError(err)
	if !ok {
		t.Fatalf("error = %v, want *UpstreamError", err)
	}
	if ue.Kind != kind {
		t.Errorf("Kind = %v, want %v", ue.Kind, kind)
	}
	return ue
}

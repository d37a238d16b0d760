package providers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"
)

// MockServer is a mock HTTP server for testing provider adapters.
// It serves canned responses per path and records every request it sees.
type MockServer struct {
	server    *httptest.Server
	responses map[string]MockResponse
	requests  []RecordedRequest
	mu        sync.Mutex
}

// MockResponse defines a mock response configuration.
type MockResponse struct {
	StatusCode int

	// Body is written verbatim when it is a string or []byte and
	// JSON-encoded otherwise.
	Body any

	// Delay holds the response back. The wait ends early when the client
	// gives up, so timeout tests do not stall Close.
	Delay time.Duration

	Headers map[string]string
}

// RecordedRequest is a request received by the mock server.
type RecordedRequest struct {
	Method  string
	Path    string
	Headers http.Header
	Body    []byte
}

// NewMockServer creates a new mock server.
func NewMockServer() *MockServer {
	ms := &MockServer{
		responses: make(map[string]MockResponse),
	}
	ms.server = httptest.NewServer(http.HandlerFunc(ms.handler))
	return ms
}

// URL returns the mock server's base URL.
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// Close closes the mock server.
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetResponse sets a mock response for a specific endpoint.
func (ms *MockServer) SetResponse(path string, response MockResponse) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.responses[path] = response
}

// GetRequestCount returns the number of requests received.
func (ms *MockServer) GetRequestCount() int {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return len(ms.requests)
}

// LastRequest returns the most recent request, or false if none arrived.
func (ms *MockServer) LastRequest() (RecordedRequest, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if len(ms.requests) == 0 {
		return RecordedRequest{}, false
	}
	return ms.requests[len(ms.requests)-1], true
}

func (ms *MockServer) handler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	ms.mu.Lock()
	ms.requests = append(ms.requests, RecordedRequest{
		Method:  r.Method,
		Path:    r.URL.Path,
		Headers: r.Header.Clone(),
		Body:    body,
	})
	response, ok := ms.responses[r.URL.Path]
	ms.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	if response.Delay > 0 {
		select {
		case <-time.After(response.Delay):
		case <-r.Context().Done():
			return
		}
	}

	for key, value := range response.Headers {
		w.Header().Set(key, value)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}

	status := response.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	switch v := response.Body.(type) {
	case nil:
	case string:
		_, _ = w.Write([]byte(v))
	case []byte:
		_, _ = w.Write(v)
	default:
		_ = json.NewEncoder(w).Encode(v)
	}
}

// MockOpenAIResponse creates a Responses API body with a top-level
// output_text.
func MockOpenAIResponse(text, model string) map[string]any {
	return map[string]any{
		"id":          "resp_123",
		"object":      "response",
		"model":       model,
		"output_text": text,
	}
}

// MockOpenAIOutputResponse creates a Responses API body whose text is only
// available through output[].content[].
func MockOpenAIOutputResponse(model string, parts ...string) map[string]any {
	content := make([]map[string]any, 0, len(parts)+1)
	for _, part := range parts {
		content = append(content, map[string]any{"type": "output_text", "text": part})
	}
	content = append(content, map[string]any{"type": "refusal", "refusal": "ignored"})

	return map[string]any{
		"id":     "resp_456",
		"object": "response",
		"model":  model,
		"output": []map[string]any{
			{"type": "message", "role": "assistant", "content": content},
		},
	}
}

// MockOllamaResponse creates a non-streaming /api/chat body.
func MockOllamaResponse(content, model string) map[string]any {
	return map[string]any{
		"model": model,
		"message": map[string]any{
			"role":    "assistant",
			"content": content,
		},
		"done": true,
	}
}

// MockErrorResponse creates an OpenAI-style error body.
func MockErrorResponse(message string) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"message": message,
			"type":    "invalid_request_error",
		},
	}
}

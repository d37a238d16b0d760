package ollama

import (
	"context"
	"net/http"
	"strings"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/providers"
)

// ProviderName identifies Ollama in reasons, spans and metrics.
const ProviderName = "ollama"

// Client calls a local Ollama server.
type Client struct {
	cfg       config.OllamaConfig
	transport *providers.HTTPProvider
}

var _ providers.Provider = (*Client)(nil)

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
}

type chatResponse struct {
	Model   string      `json:"model"`
	Message chatMessage `json:"message"`
}

// New creates a client for cfg over a shared transport.
func New(cfg config.OllamaConfig, transport *providers.HTTPProvider) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultOllamaBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultOllamaModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = config.DefaultOllamaTimeout
	}
	if transport == nil {
		transport = providers.NewHTTPProvider(ProviderName)
	}
	return &Client{cfg: cfg, transport: transport}
}

// Name returns "ollama".
func (c *Client) Name() string { return ProviderName }

// Model returns the configured model.
func (c *Client) Model() string { return c.cfg.Model }

// Complete sends one non-streaming chat request. The API key is ignored.
func (c *Client) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	body := &chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserPrompt},
		},
		Stream:  false,
		Options: chatOptions{Temperature: c.cfg.Temperature},
	}

	var resp chatResponse
	status, err := c.transport.Do(ctx, providers.Call{
		Operation: "chat",
		Method:    http.MethodPost,
		URL:       c.cfg.BaseURL + "/api/chat",
		Body:      body,
		Timeout:   c.cfg.Timeout,
	}, &resp)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Message.Content)
	if text == "" {
		return nil, &providers.UpstreamError{
			Provider: ProviderName,
			Kind:     providers.KindEmptyResponse,
			Status:   status,
			Message:  "model response was empty",
		}
	}

	model := resp.Model
	if model == "" {
		model = c.cfg.Model
	}
	return &providers.CompletionResponse{Text: text, Provider: ProviderName, Model: model}, nil
}

package openai

import (
	"context"
	"net/http"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/providers"
)

// ProviderName identifies OpenAI in reasons, spans and metrics.
const ProviderName = "openai"

// Client calls the OpenAI Responses API.
type Client struct {
	cfg       config.OpenAIConfig
	transport *providers.HTTPProvider
}

var _ providers.Provider = (*Client)(nil)

// New creates a client for cfg over a shared transport.
func New(cfg config.OpenAIConfig, transport *providers.HTTPProvider) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = config.DefaultOpenAIBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = config.DefaultOpenAIModel
	}
	if cfg.ChatTimeout <= 0 {
		cfg.ChatTimeout = config.DefaultOpenAIChatTimeout
	}
	if cfg.VerifyTimeout <= 0 {
		cfg.VerifyTimeout = config.DefaultOpenAIVerifyTimeout
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = config.DefaultOpenAIMaxOutputTokens
	}
	if transport == nil {
		transport = providers.NewHTTPProvider(ProviderName)
	}
	return &Client{cfg: cfg, transport: transport}
}

// Name returns "openai".
func (c *Client) Name() string { return ProviderName }

// Model returns the configured model.
func (c *Client) Model() string { return c.cfg.Model }

// Complete sends one Responses API request. A reply without text is a
// KindEmptyResponse error.
func (c *Client) Complete(ctx context.Context, req *providers.CompletionRequest) (*providers.CompletionResponse, error) {
	body := buildRequest(c.cfg.Model, c.cfg.Temperature, c.cfg.MaxOutputTokens, req.SystemPrompt, req.UserPrompt)

	var resp responsesResponse
	status, err := c.transport.Do(ctx, providers.Call{
		Operation: "responses",
		Method:    http.MethodPost,
		URL:       c.cfg.BaseURL + "/responses",
		Headers:   map[string]string{"Authorization": "Bearer " + req.APIKey},
		Body:      body,
		Timeout:   c.cfg.ChatTimeout,
	}, &resp)
	if err != nil {
		return nil, err
	}

	text := extractText(&resp)
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

// VerifyKey checks key against GET /models. It returns nil when OpenAI
// accepts the key and an *UpstreamError otherwise.
func (c *Client) VerifyKey(ctx context.Context, key string) error {
	_, err := c.transport.Do(ctx, providers.Call{
		Operation: "models",
		Method:    http.MethodGet,
		URL:       c.cfg.BaseURL + "/models",
		Headers:   map[string]string{"Authorization": "Bearer " + NormalizeKey(key)},
		Timeout:   c.cfg.VerifyTimeout,
	}, nil)
	return err
}

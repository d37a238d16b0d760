package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"the-savior/edge/pkg/coach"
	"the-savior/edge/pkg/coach/fallback"
	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/providers/ollama"
	"the-savior/edge/pkg/providers/openai"
	"the-savior/edge/pkg/proxy"
	"the-savior/edge/pkg/proxy/middleware"
)

// Chat-specific client messages.
const (
	MsgServiceUnavailable = "AI 서비스가 구성되지 않았습니다."
	MsgUnauthorizedKey    = "API 키 인증에 실패했습니다. 키를 다시 확인해 주세요."
)

// fallbackProvider is reported as the provider of templated replies.
const fallbackProvider = "fallback"

// ChatRoute is the guard configuration of POST /api/chat.
var ChatRoute = Route{
	Path:    "/api/chat",
	Methods: []string{http.MethodPost},
	CORS: middleware.RouteCORS{
		Methods:      "POST, OPTIONS",
		AllowHeaders: "Content-Type, " + openai.UserKeyHeader + ", " + middleware.RequestIDHeader,
	},
	Policy: ratelimit.ChatPolicy,
	Rule:   func(c *config.RateLimitsConfig) config.RateLimitRule { return c.Chat },
	Deny:   errorDenial,
}

// chatResponse is the success body of POST /api/chat.
type chatResponse struct {
	Reply          string     `json:"reply"`
	Escalated      bool       `json:"escalated"`
	Mode           coach.Mode `json:"mode"`
	Fallback       bool       `json:"fallback,omitempty"`
	FallbackReason string     `json:"fallbackReason,omitempty"`
	Provider       string     `json:"provider,omitempty"`
	Model          string     `json:"model,omitempty"`
}

// ChatHandler answers coaching requests.
type ChatHandler struct {
	deps *Dependencies
}

// NewChatHandler returns the guarded POST /api/chat handler.
func NewChatHandler(deps *Dependencies) http.Handler {
	h := &ChatHandler{deps: deps}
	return Guard(ChatRoute, deps, h.handle)
}

func (h *ChatHandler) handle(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	ctx := r.Context()

	payload, err := proxy.ReadJSONBody(r, proxy.DefaultMaxBodyBytes)
	if err != nil {
		h.writeError(ctx, w, cfg, err)
		return
	}

	req, err := coach.Normalize(payload)
	if errors.Is(err, coach.ErrMessageRequired) {
		writeJSON(ctx, w, http.StatusBadRequest, errorResponse{Error: proxy.MsgMessageMissing})
		return
	}
	if err != nil {
		h.writeError(ctx, w, cfg, err)
		return
	}

	if coach.HasCrisisSignal(req.CrisisText()) {
		slog.WarnContext(ctx, "crisis signal detected, escalating", "mode", req.Mode)
		h.deps.Metrics.RecordCrisisEscalation(string(req.Mode))
		writeJSON(ctx, w, http.StatusOK, chatResponse{
			Reply:     coach.CrisisReply,
			Escalated: true,
			Mode:      req.Mode,
		})
		return
	}

	provider, apiKey, reason := h.selectProvider(r, cfg)
	if provider == nil {
		if !cfg.Upstream.FallbackEnabled {
			slog.WarnContext(ctx, "no provider available and fallback disabled", "reason", reason)
			body := errorResponse{Error: MsgServiceUnavailable}
			if cfg.Security.DebugErrors {
				body.Detail = reason
			}
			writeJSON(ctx, w, http.StatusServiceUnavailable, body)
			return
		}
		h.writeFallback(ctx, w, req, reason)
		return
	}

	started := time.Now()
	resp, err := provider.Complete(ctx, &providers.CompletionRequest{
		APIKey:       apiKey,
		SystemPrompt: coach.SystemPrompt(req.Mode),
		UserPrompt:   coach.UserPrompt(req.Input),
	})
	if err != nil {
		upErr, ok := providers.AsUpstreamError(err)
		if ok && cfg.Upstream.FallbackEnabled && upErr.FallbackEligible() {
			slog.WarnContext(ctx, "upstream failed, serving fallback",
				"provider", upErr.Provider,
				"kind", upErr.Kind,
				"status", upErr.Status,
				"latency_ms", time.Since(started).Milliseconds(),
			)
			h.writeFallback(ctx, w, req, upErr.Reason())
			return
		}
		h.writeError(ctx, w, cfg, err)
		return
	}

	slog.InfoContext(ctx, "chat completion successful",
		"mode", req.Mode,
		"provider", resp.Provider,
		"model", resp.Model,
		"latency_ms", time.Since(started).Milliseconds(),
	)
	writeJSON(ctx, w, http.StatusOK, chatResponse{
		Reply:    resp.Text,
		Mode:     req.Mode,
		Provider: resp.Provider,
		Model:    resp.Model,
	})
}

// selectProvider picks the provider for cfg's preference. When none can
// answer it returns a nil provider and the fallback reason.
func (h *ChatHandler) selectProvider(r *http.Request, cfg *config.Config) (providers.Provider, string, string) {
	apiKey := openai.ResolveAPIKey(r.Header.Get(openai.UserKeyHeader), cfg.Upstream.OpenAI.APIKey)

	switch cfg.Upstream.Provider {
	case config.ProviderOpenAI:
		if apiKey == "" {
			return nil, "", fallback.ReasonAPIKeyMissing
		}
		return openai.New(cfg.Upstream.OpenAI, h.deps.OpenAI), apiKey, ""
	case config.ProviderOllama:
		if !cfg.Upstream.Ollama.Enabled {
			return nil, "", fallback.ReasonOllamaUnavailable
		}
		return ollama.New(cfg.Upstream.Ollama, h.deps.Ollama), "", ""
	default:
		if apiKey != "" {
			return openai.New(cfg.Upstream.OpenAI, h.deps.OpenAI), apiKey, ""
		}
		if cfg.Upstream.Ollama.Enabled {
			return ollama.New(cfg.Upstream.Ollama, h.deps.Ollama), "", ""
		}
		return nil, "", fallback.ReasonAPIKeyMissing
	}
}

func (h *ChatHandler) writeFallback(ctx context.Context, w http.ResponseWriter, req *coach.Request, reason string) {
	h.deps.Metrics.RecordFallback(string(req.Mode), reason)
	writeJSON(ctx, w, http.StatusOK, chatResponse{
		Reply:          fallback.Generate(req.Mode, req.Input, reason),
		Mode:           req.Mode,
		Fallback:       true,
		FallbackReason: reason,
		Provider:       fallbackProvider,
	})
}

// writeError maps err to a failure response. Upstream details are only
// exposed in debug mode.
func (h *ChatHandler) writeError(ctx context.Context, w http.ResponseWriter, cfg *config.Config, err error) {
	if e, ok := proxy.AsError(err); ok && e.Kind == proxy.KindValidation {
		writeJSON(ctx, w, e.Status, errorResponse{Error: e.Message})
		return
	}

	status := http.StatusInternalServerError
	body := errorResponse{Error: proxy.MsgInternalError}
	detail := err.Error()

	if upErr, ok := providers.AsUpstreamError(err); ok {
		status = upErr.HTTPStatus()
		detail = upErr.Message
		if upErr.Kind == providers.KindUnauthorized {
			body.Error = MsgUnauthorizedKey
		}
		slog.ErrorContext(ctx, "upstream request failed",
			"provider", upErr.Provider,
			"kind", upErr.Kind,
			"status", upErr.Status,
			"error", err,
		)
	} else {
		slog.ErrorContext(ctx, "chat request failed", "error", err)
	}

	if cfg.Security.DebugErrors {
		body.Detail = detail
	}
	writeJSON(ctx, w, status, body)
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/proxy"
	"the-savior/edge/pkg/proxy/middleware"
	"the-savior/edge/pkg/telemetry/metrics"
)

// Dependencies are shared by every handler.
type Dependencies struct {
	Config  *config.Holder
	Limiter *ratelimit.Limiter

	// Metrics may be nil.
	Metrics *metrics.Collector

	// OpenAI and Ollama are the transports provider clients are built on.
	// Clients themselves are built per request from the current config.
	OpenAI *providers.HTTPProvider
	Ollama *providers.HTTPProvider

	// Now replaces time.Now in responses that report the time.
	Now func() time.Time
}

func (d *Dependencies) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// Route describes the guard settings of one endpoint.
type Route struct {
	// Path is the mux pattern path and the metrics label.
	Path string

	// Methods are the accepted methods besides OPTIONS.
	Methods []string

	CORS   middleware.RouteCORS
	Policy ratelimit.Policy

	// Rule selects the scope's operator overrides.
	Rule func(*config.RateLimitsConfig) config.RateLimitRule

	// Deny renders the body of a guard rejection.
	Deny func(*proxy.Error) any
}

// GuardedFunc handles a request that passed the guard. cfg is the
// configuration snapshot the guard used.
type GuardedFunc func(w http.ResponseWriter, r *http.Request, cfg *config.Config)

// Guard wraps next with the CORS, method and rate-limit checks of route.
func Guard(route Route, deps *Dependencies, next GuardedFunc) http.Handler {
	allow := strings.Join(append(slices.Clone(route.Methods), http.MethodOptions), ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		cfg := deps.Config.Get()

		cors := middleware.Resolve(r, cfg.Security.AllowedOrigins, route.CORS)
		cors.Apply(w)

		if r.Method == http.MethodOptions {
			w.Header().Set("Allow", allow)
			if !cors.Allowed {
				deps.Metrics.RecordCORSDenied(route.Path)
				w.WriteHeader(http.StatusForbidden)
				return
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		if !slices.Contains(route.Methods, r.Method) {
			w.Header().Set("Allow", allow)
			deny(ctx, w, route, proxy.NewValidationError(http.StatusMethodNotAllowed, proxy.MsgMethodNotAllowed))
			return
		}

		if !cors.Allowed {
			slog.WarnContext(ctx, "origin denied",
				"route", route.Path,
				"origin", r.Header.Get("Origin"),
			)
			deps.Metrics.RecordCORSDenied(route.Path)
			deny(ctx, w, route, proxy.NewOriginDeniedError())
			return
		}

		decision := deps.Limiter.Check(r, route.Policy,
			ratelimit.OverridesFrom(route.Rule(&cfg.RateLimits), cfg.Security.TrustedProxyHeader))
		decision.Apply(w)
		if !decision.Allowed {
			slog.WarnContext(ctx, "rate limit exceeded",
				"route", route.Path,
				"scope", route.Policy.Scope,
				"limit", decision.Limit,
				"retry_after_s", decision.RetryAfterSeconds,
			)
			deny(ctx, w, route, proxy.NewRateLimitedError())
			return
		}

		next(w, r, cfg)
	})
}

func deny(ctx context.Context, w http.ResponseWriter, route Route, e *proxy.Error) {
	writeJSON(ctx, w, e.Status, route.Deny(e))
}

// writeJSON writes a JSON response and logs encoding failures.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	if err := proxy.WriteJSONResponse(w, status, body); err != nil {
		slog.ErrorContext(ctx, "failed to write response", "status", status, "error", err)
	}
}

// errorResponse is the failure body of chat and config.
type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func errorDenial(e *proxy.Error) any {
	return errorResponse{Error: e.Message}
}

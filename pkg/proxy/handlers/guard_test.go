package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/proxy"
)

func TestGuardPreflight(t *testing.T) {
	tests := []struct {
		name       string
		origin     string
		wantStatus int
		wantACAO   string
	}{
		{"allowed origin", testOrigin, http.StatusNoContent, testOrigin},
		{"denied origin", "https://evil.example", http.StatusForbidden, ""},
		{"no origin", "", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil)
			req := newJSONRequest(http.MethodOptions, ChatRoute.Path, "")
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			rec := serve(NewChatHandler(env.deps), req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Allow"); got != "POST, OPTIONS" {
				t.Errorf("Allow = %q, want %q", got, "POST, OPTIONS")
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantACAO {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantACAO)
			}
			if got := rec.Header().Get("Access-Control-Allow-Headers"); !strings.Contains(got, "X-User-OpenAI-Key") {
				t.Errorf("Access-Control-Allow-Headers = %q, want user key header listed", got)
			}
			if rec.Body.Len() != 0 {
				t.Errorf("preflight body = %q, want empty", rec.Body.String())
			}
			if got := rec.Header().Get("X-RateLimit-Limit"); got != "" {
				t.Errorf("preflight counted against the rate limit: X-RateLimit-Limit = %q", got)
			}
		})
	}
}

func TestGuardMethodNotAllowed(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := serve(NewHealthHandler(env.deps), newJSONRequest(http.MethodPost, HealthRoute.Path, "{}"))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
	if got := rec.Header().Get("Allow"); got != "GET, OPTIONS" {
		t.Errorf("Allow = %q, want %q", got, "GET, OPTIONS")
	}
	if got := decodeBody(t, rec)["status"]; got != "method_not_allowed" {
		t.Errorf("status field = %v, want method_not_allowed", got)
	}
}

func TestGuardOriginDenied(t *testing.T) {
	env := newTestEnv(t, nil)
	req := newJSONRequest(http.MethodPost, ChatRoute.Path, `{"message":"hello"}`)
	req.Header.Set("Origin", "https://evil.example")

	rec := serve(NewChatHandler(env.deps), req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusForbidden)
	}
	if got := decodeBody(t, rec)["error"]; got != proxy.MsgOriginDenied {
		t.Errorf("error = %v, want %q", got, proxy.MsgOriginDenied)
	}
	if got := rec.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary = %q, want Origin", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want unset for a denied origin", got)
	}
	if got := env.upstream.GetRequestCount(); got != 0 {
		t.Errorf("upstream requests = %d, want 0", got)
	}

	expected := `
# HELP test_edge_cors_denied_total Total number of requests rejected by the origin check
# TYPE test_edge_cors_denied_total counter
test_edge_cors_denied_total{route="/api/chat"} 1
`
	if err := testutil.GatherAndCompare(env.registry, strings.NewReader(expected), "test_edge_cors_denied_total"); err != nil {
		t.Error(err)
	}
}

func TestGuardRateLimit(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.RateLimits.Config = config.RateLimitRule{Max: "2"}
	})
	h := NewConfigHandler(env.deps)

	for i := 1; i <= 2; i++ {
		rec := serve(h, newJSONRequest(http.MethodGet, ConfigRoute.Path, ""))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d, want %d", i, rec.Code, http.StatusOK)
		}
	}

	rec := serve(h, newJSONRequest(http.MethodGet, ConfigRoute.Path, ""))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("request 3: status = %d, want %d", rec.Code, http.StatusTooManyRequests)
	}
	if got := rec.Header().Get("Retry-After"); got == "" || got == "0" {
		t.Errorf("Retry-After = %q, want at least 1", got)
	}
	if got := rec.Header().Get("X-RateLimit-Remaining"); got != "0" {
		t.Errorf("X-RateLimit-Remaining = %q, want 0", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("Cache-Control = %q, want no-store on a rejection", got)
	}
	if got := decodeBody(t, rec)["error"]; got != proxy.MsgRateLimited {
		t.Errorf("error = %v, want %q", got, proxy.MsgRateLimited)
	}

	expected := `
# HELP test_edge_ratelimit_rejections_total Total number of requests rejected by the rate limiter
# TYPE test_edge_ratelimit_rejections_total counter
test_edge_ratelimit_rejections_total{scope="config"} 1
`
	if err := testutil.GatherAndCompare(env.registry, strings.NewReader(expected), "test_edge_ratelimit_rejections_total"); err != nil {
		t.Error(err)
	}
}

func TestGuardScopesAreIndependent(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.RateLimits.Config = config.RateLimitRule{Max: "1"}
	})

	serve(NewConfigHandler(env.deps), newJSONRequest(http.MethodGet, ConfigRoute.Path, ""))
	rec := serve(NewHealthHandler(env.deps), newJSONRequest(http.MethodGet, HealthRoute.Path, ""))

	if rec.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d after the config scope is exhausted", rec.Code, http.StatusOK)
	}
}

func TestGuardAppliesReloadedAllowList(t *testing.T) {
	env := newTestEnv(t, nil)
	h := NewHealthHandler(env.deps)

	newOrigin := func() *http.Request {
		req := newJSONRequest(http.MethodGet, HealthRoute.Path, "")
		req.Header.Set("Origin", "https://new.example")
		return req
	}

	if rec := serve(h, newOrigin()); rec.Code != http.StatusForbidden {
		t.Fatalf("status before reload = %d, want %d", rec.Code, http.StatusForbidden)
	}

	next := *env.deps.Config.Get()
	next.Security.AllowedOrigins = testOrigin + ", https://new.example/"
	env.deps.Config.Set(&next)

	rec := serve(h, newOrigin())
	if rec.Code != http.StatusOK {
		t.Fatalf("status after reload = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://new.example" {
		t.Errorf("Access-Control-Allow-Origin = %q, want https://new.example", got)
	}
}

func TestGuardAllowAll(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) {
		cfg.Security.AllowedOrigins = "*"
	})
	req := newJSONRequest(http.MethodGet, HealthRoute.Path, "")
	req.Header.Set("Origin", "https://anything.example")

	rec := serve(NewHealthHandler(env.deps), req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

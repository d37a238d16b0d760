package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	mock "the-savior/edge/internal/providers"
	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/limits/storage"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/providers/ollama"
	"the-savior/edge/pkg/providers/openai"
	"the-savior/edge/pkg/telemetry/metrics"
)

const testOrigin = "https://savior.example"

var testNow = time.Date(2026, 3, 1, 9, 30, 0, 123_000_000, time.UTC)

type testEnv struct {
	deps     *Dependencies
	registry *prometheus.Registry
	upstream *mock.MockServer
}

// newTestEnv wires handlers to a mock upstream serving both OpenAI and
// Ollama paths. The opportunistic sweep never fires.
func newTestEnv(t *testing.T, mutate func(*config.Config)) *testEnv {
	t.Helper()

	upstream := mock.NewMockServer()
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.Security.AllowedOrigins = testOrigin
	cfg.Upstream.OpenAI.BaseURL = upstream.URL()
	cfg.Upstream.Ollama.BaseURL = upstream.URL()
	if mutate != nil {
		mutate(cfg)
	}

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(&config.MetricsConfig{Namespace: "test", Subsystem: "edge"}, registry)
	limiter := ratelimit.NewLimiter(storage.NewMemoryStore(),
		ratelimit.WithRandom(func() float64 { return 1 }),
		ratelimit.WithMetrics(collector),
	)

	return &testEnv{
		deps: &Dependencies{
			Config:  config.NewHolder(cfg),
			Limiter: limiter,
			Metrics: collector,
			OpenAI:  providers.NewHTTPProvider(openai.ProviderName, providers.WithMetrics(collector)),
			Ollama:  providers.NewHTTPProvider(ollama.ProviderName, providers.WithMetrics(collector)),
			Now:     func() time.Time { return testNow },
		},
		registry: registry,
		upstream: upstream,
	}
}

func newJSONRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, rec.Body.String())
	}
	return body
}

package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/telemetry/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"success logs info", http.StatusOK, "INFO"},
		{"client error logs warn", http.StatusTooManyRequests, "WARN"},
		{"server error logs error", http.StatusBadGateway, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureDefaultLogger(t)

			handler := RequestIDMiddleware(LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if GetStartTime(r.Context()).IsZero() {
					t.Error("start time missing from context")
				}
				w.WriteHeader(tt.status)
			})))

			req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
			req.Header.Set(RequestIDHeader, "log-test-1")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var completed map[string]any
			for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
				var entry map[string]any
				if err := json.Unmarshal([]byte(line), &entry); err != nil {
					t.Fatalf("invalid log line %q: %v", line, err)
				}
				if entry["msg"] == "request completed" {
					completed = entry
				}
			}
			if completed == nil {
				t.Fatal("no request completed log line")
			}
			if completed["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %v", completed["level"], tt.wantLevel)
			}
			if completed["status"] != float64(tt.status) {
				t.Errorf("status = %v, want %v", completed["status"], tt.status)
			}
			if completed["request_id"] != "log-test-1" {
				t.Errorf("request_id = %v, want log-test-1", completed["request_id"])
			}
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	cfg := &config.MetricsConfig{Namespace: "test", Subsystem: "edge", RequestDurationBuckets: config.DefaultRequestDurationBuckets}
	collector := metrics.NewCollector(cfg, prometheus.NewRegistry())

	handler := MetricsMiddleware(collector, []string{"/api/chat"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/chat", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/wp-admin", nil))

	if err := testutil.GatherAndCompare(collector.Registry(), strings.NewReader(`
# HELP test_edge_http_requests_total Total number of HTTP requests handled
# TYPE test_edge_http_requests_total counter
test_edge_http_requests_total{method="GET",route="other",status="202"} 1
test_edge_http_requests_total{method="POST",route="/api/chat",status="202"} 1
`), "test_edge_http_requests_total"); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
}

func TestLoggingMiddleware_CountsBytes(t *testing.T) {
	buf := captureDefaultLogger(t)

	handler := LoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/health", nil))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", buf.String(), err)
	}
	if entry["bytes"] != float64(len(`{"status":"ok"}`)) {
		t.Errorf("bytes = %v, want %v", entry["bytes"], len(`{"status":"ok"}`))
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("status = %v, want %v", entry["status"], http.StatusOK)
	}
}

func TestLevelForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   slog.Level
	}{
		{http.StatusOK, slog.LevelInfo},
		{http.StatusNoContent, slog.LevelInfo},
		{http.StatusForbidden, slog.LevelWarn},
		{http.StatusGatewayTimeout, slog.LevelError},
	}
	for _, tt := range tests {
		if got := levelForStatus(tt.status); got != tt.want {
			t.Errorf("levelForStatus(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

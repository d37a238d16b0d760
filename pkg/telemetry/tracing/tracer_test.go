package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"the-savior/edge/pkg/config"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// useRecorder installs an in-memory tracer provider for the duration of a test.
func useRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	prevProvider := otel.GetTracerProvider()
	prevPropagator := otel.GetTextMapPropagator()
	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
		otel.SetTracerProvider(prevProvider)
		otel.SetTextMapPropagator(prevPropagator)
	})
	return recorder
}

func TestNew_Disabled(t *testing.T) {
	tr, err := New(context.Background(), &config.TracingConfig{Enabled: false}, "test")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if tr.Enabled() {
		t.Error("expected disabled tracer")
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(context.Background(), nil, "test"); err == nil {
		t.Error("expected error for nil config")
	}
}

func TestStartUpstream(t *testing.T) {
	recorder := useRecorder(t)

	_, span := StartUpstream(context.Background(), "openai", "responses")
	EndUpstream(span, 504, "timeout", errors.New("deadline exceeded"))

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	got := spans[0]
	if got.Name() != "upstream.openai.responses" {
		t.Errorf("span name = %q, want upstream.openai.responses", got.Name())
	}
	if got.Status().Code != codes.Error {
		t.Errorf("span status = %v, want Error", got.Status().Code)
	}

	attrs := map[string]string{}
	for _, kv := range got.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrStatus] != "504" {
		t.Errorf("%s = %q, want 504", AttrStatus, attrs[AttrStatus])
	}
	if attrs[AttrOutcome] != "timeout" {
		t.Errorf("%s = %q, want timeout", AttrOutcome, attrs[AttrOutcome])
	}
}

func TestInjectExtract(t *testing.T) {
	useRecorder(t)

	ctx, span := StartUpstream(context.Background(), "ollama", "chat")
	defer span.End()

	headers := http.Header{}
	Inject(ctx, headers)
	if headers.Get("traceparent") == "" {
		t.Fatal("expected traceparent header")
	}

	extracted := Extract(context.Background(), headers)
	// The remote span context must carry the same trace ID.
	_, child := StartUpstream(extracted, "ollama", "chat")
	defer child.End()
	if child.SpanContext().TraceID() != span.SpanContext().TraceID() {
		t.Error("extracted context does not continue the trace")
	}
}

func TestHTTPMiddleware(t *testing.T) {
	recorder := useRecorder(t)

	handler := HTTPMiddleware(func(context.Context) string { return "req-1" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}),
	)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}
	if spans[0].Name() != "GET /api/health" {
		t.Errorf("span name = %q, want GET /api/health", spans[0].Name())
	}
}

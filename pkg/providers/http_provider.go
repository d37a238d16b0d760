package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"the-savior/edge/pkg/telemetry/metrics"
	"the-savior/edge/pkg/telemetry/tracing"
)

// DefaultMaxResponseBytes caps how much of an upstream body is read.
const DefaultMaxResponseBytes = 1 << 20

// HTTPProvider is the transport shared by HTTP-based provider adapters. It
// applies the per-call deadline, classifies failures into *UpstreamError,
// and records spans and metrics. It never retries.
type HTTPProvider struct {
	name             string
	client           *http.Client
	metrics          *metrics.Collector
	maxResponseBytes int64
}

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithHTTPClient replaces the default client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(p *HTTPProvider) { p.client = client }
}

// WithMetrics records every call on collector.
func WithMetrics(collector *metrics.Collector) HTTPOption {
	return func(p *HTTPProvider) { p.metrics = collector }
}

// WithMaxResponseBytes caps the bytes read from each response body.
func WithMaxResponseBytes(n int64) HTTPOption {
	return func(p *HTTPProvider) { p.maxResponseBytes = n }
}

// NewHTTPProvider creates the transport for the named provider.
func NewHTTPProvider(name string, opts ...HTTPOption) *HTTPProvider {
	p := &HTTPProvider{
		name: name,
		client: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
		maxResponseBytes: DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *HTTPProvider) Name() string {
	return p.name
}

// Call describes one upstream request.
type Call struct {
	// Operation names the call in spans and metrics, e.g. "responses".
	Operation string

	Method  string
	URL     string
	Headers map[string]string

	// Body is JSON-encoded when non-nil.
	Body any

	// Timeout bounds the whole call, including reading the body.
	Timeout time.Duration
}

// Do performs call and decodes a 2xx JSON body into out (when non-nil).
// It returns the upstream status and an *UpstreamError on failure.
func (p *HTTPProvider) Do(ctx context.Context, call Call, out any) (int, error) {
	if call.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}

	ctx, span := tracing.StartUpstream(ctx, p.name, call.Operation)
	start := time.Now()

	status, err := p.do(ctx, call, out)

	outcome := "success"
	if ue, ok := AsUpstreamError(err); ok {
		outcome = string(ue.Kind)
		status = ue.Status
	}
	tracing.EndUpstream(span, status, outcome, err)
	p.metrics.RecordUpstreamCall(p.name, call.Operation, outcome, time.Since(start))

	return status, err
}

func (p *HTTPProvider) do(ctx context.Context, call Call, out any) (int, error) {
	var body io.Reader
	if call.Body != nil {
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, call.URL, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	for key, value := range call.Headers {
		req.Header.Set(key, value)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	tracing.Inject(ctx, req.Header)

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, p.transportError(ctx, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, p.maxResponseBytes))
	if err != nil {
		return resp.StatusCode, p.transportError(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &UpstreamError{
			Provider: p.name,
			Kind:     KindForStatus(resp.StatusCode),
			Status:   resp.StatusCode,
			Message:  ExtractErrorMessage(raw),
		}
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, &UpstreamError{
				Provider: p.name,
				Kind:     KindEmptyResponse,
				Status:   resp.StatusCode,
				Message:  "upstream response was not valid JSON",
				Cause:    err,
			}
		}
	}

	return resp.StatusCode, nil
}

// transportError classifies a failure that produced no usable response. Only
// an expired deadline is a timeout; a caller cancel is a failed request.
func (p *HTTPProvider) transportError(ctx context.Context, err error) *UpstreamError {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return &UpstreamError{
			Provider: p.name,
			Kind:     KindTimeout,
			Status:   http.StatusGatewayTimeout,
			Message:  TimeoutMessage,
			Cause:    err,
		}
	}
	return &UpstreamError{
		Provider: p.name,
		Kind:     KindRequestFailed,
		Status:   http.StatusBadGateway,
		Message:  "upstream request failed",
		Cause:    err,
	}
}

// ExtractErrorMessage returns the message of an upstream error body shaped
// as {message}, {error:{message}} or {error:"..."}, or "" if none matches.
func ExtractErrorMessage(raw []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}

	if msg, ok := payload["message"].(string); ok {
		return msg
	}
	switch e := payload["error"].(type) {
	case map[string]any:
		if msg, ok := e["message"].(string); ok {
			return msg
		}
	case string:
		return e
	}
	return ""
}

package tracing

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys used on upstream spans.
const (
	AttrProvider  = "upstream.provider"
	AttrOperation = "upstream.operation"
	AttrModel     = "upstream.model"
	AttrStatus    = "upstream.status_code"
	AttrOutcome   = "upstream.outcome"
	AttrRequestID = "request.id"
)

// StartUpstream opens a client span named upstream.<provider>.<operation>.
func StartUpstream(ctx context.Context, provider, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	base := []attribute.KeyValue{
		attribute.String(AttrProvider, provider),
		attribute.String(AttrOperation, operation),
	}
	return tracer().Start(ctx, "upstream."+provider+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(append(base, attrs...)...),
	)
}

// EndUpstream records the outcome on span and ends it. A non-nil err marks
// the span as failed.
func EndUpstream(span trace.Span, status int, outcome string, err error) {
	if status > 0 {
		span.SetAttributes(attribute.Int(AttrStatus, status))
	}
	span.SetAttributes(attribute.String(AttrOutcome, outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

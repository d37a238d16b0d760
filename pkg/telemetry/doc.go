// Package telemetry groups the observability packages of the edge service.
//
// # Components
//
//   - logging: slog setup with request IDs and secret redaction
//   - metrics: Prometheus collectors for requests, upstream calls, guards,
//     and coaching outcomes
//   - tracing: OpenTelemetry server and upstream spans exported over OTLP
//
// # Usage
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Redact: true})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
//	collector.RecordFallback("coach", "api_key_missing")
//
//	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
// # Redaction
//
// With redaction on, log messages and string attributes are scrubbed of
// OpenAI keys (sk-abc123 becomes sk-***) and bearer tokens. Attributes whose
// key names a secret, such as api_key or authorization, are replaced whole.
package telemetry

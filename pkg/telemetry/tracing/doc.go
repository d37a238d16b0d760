// Package tracing wires OpenTelemetry into the edge service.
//
// New installs a global tracer provider exporting over OTLP gRPC when
// tracing is enabled, and leaves the default no-op provider in place when it
// is not. Upstream clients open spans through StartUpstream and inject W3C
// trace context into outbound requests, so a collector sees each chat
// request joined to the model call it caused.
package tracing

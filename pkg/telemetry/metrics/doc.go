// Package metrics exposes Prometheus metrics for the edge service.
//
// A Collector owns a private registry and groups metrics by concern:
//   - HTTP: requests and latency per route and status
//   - Upstream: provider calls by outcome and latency
//   - Guard: CORS denials, rate-limit rejections, bucket store size and sweeps
//   - Coach: fallback replies by reason and crisis escalations
//
// All recording methods are safe on a nil *Collector, which lets tests and
// metrics-disabled deployments pass nil instead of a stub.
//
// Metrics are named <namespace>_<subsystem>_<name>, e.g.
// savior_edge_http_requests_total.
package metrics

package middleware

import (
	"net/http"
	"time"

	"the-savior/edge/pkg/telemetry/metrics"
)

// MetricsMiddleware records request counts and latency per route. Paths not
// in routes are labelled "other" to bound label cardinality.
func MetricsMiddleware(collector *metrics.Collector, routes []string) func(http.Handler) http.Handler {
	known := make(map[string]struct{}, len(routes))
	for _, route := range routes {
		known[route] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			route := "other"
			if _, ok := known[r.URL.Path]; ok {
				route = r.URL.Path
			}
			collector.RecordHTTPRequest(route, r.Method, rec.status, time.Since(start))
		})
	}
}

package middleware

import (
	"net/http"
	"strings"
)

// DevAllowedOrigins are accepted when no allow-list is configured.
var DevAllowedOrigins = []string{
	"http://localhost",
	"http://127.0.0.1",
	"http://localhost:8788",
	"http://127.0.0.1:8788",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
	"capacitor://localhost",
	"ionic://localhost",
}

// ExposedHeaders lists the response headers readable by browser scripts.
var ExposedHeaders = []string{
	RequestIDHeader,
	"X-RateLimit-Limit",
	"X-RateLimit-Remaining",
	"X-RateLimit-Reset",
	"Retry-After",
}

// RouteCORS is the per-route CORS policy.
type RouteCORS struct {
	// Methods is the Access-Control-Allow-Methods value, e.g. "POST, OPTIONS".
	Methods string

	// AllowHeaders is the Access-Control-Allow-Headers value.
	AllowHeaders string
}

// CORSDecision is the outcome of resolving a request's origin.
type CORSDecision struct {
	// Allowed gates the handler. A request without an Origin header is
	// always allowed.
	Allowed bool

	// Headers are copied onto every response for the request, allowed or not.
	Headers http.Header
}

// Apply copies the decision headers onto w.
func (d CORSDecision) Apply(w http.ResponseWriter) {
	for key, values := range d.Headers {
		for _, v := range values {
			w.Header().Set(key, v)
		}
	}
}

// allowList is a parsed ALLOWED_ORIGINS value.
type allowList struct {
	allowAll bool
	origins  map[string]struct{}
}

// Resolve decides whether the request origin is permitted by rawAllowList
// (the comma-separated operator string) and builds the CORS headers for
// route. Access-Control-Allow-Origin is set only for matching origins, so a
// request without an Origin header passes the handler but gets no
// Allow-Origin header.
func Resolve(r *http.Request, rawAllowList string, route RouteCORS) CORSDecision {
	requestOrigin := normalizeOrigin(r.Header.Get("Origin"))
	list := parseAllowList(rawAllowList, selfOrigin(r))

	_, listed := list.origins[requestOrigin]

	headers := http.Header{}
	headers.Set("Access-Control-Allow-Methods", route.Methods)
	headers.Set("Access-Control-Allow-Headers", route.AllowHeaders)
	headers.Set("Access-Control-Expose-Headers", strings.Join(ExposedHeaders, ", "))
	headers.Set("Vary", "Origin")

	if list.allowAll {
		headers.Set("Access-Control-Allow-Origin", "*")
	} else if requestOrigin != "" && listed {
		headers.Set("Access-Control-Allow-Origin", requestOrigin)
	}

	return CORSDecision{
		Allowed: requestOrigin == "" || list.allowAll || listed,
		Headers: headers,
	}
}

// parseAllowList splits the operator string. An explicit list is
// authoritative plus the service's own origin; an empty list falls back to
// the dev origins.
func parseAllowList(raw, self string) allowList {
	var explicit []string
	for _, part := range strings.Split(raw, ",") {
		if origin := normalizeOrigin(part); origin != "" {
			explicit = append(explicit, origin)
		}
	}

	for _, origin := range explicit {
		if origin == "*" {
			return allowList{allowAll: true, origins: map[string]struct{}{}}
		}
	}

	origins := map[string]struct{}{self: {}}
	if len(explicit) > 0 {
		for _, origin := range explicit {
			origins[origin] = struct{}{}
		}
		return allowList{origins: origins}
	}

	for _, origin := range DevAllowedOrigins {
		origins[normalizeOrigin(origin)] = struct{}{}
	}
	return allowList{origins: origins}
}

// selfOrigin returns scheme://host for the request as served.
func selfOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https") {
		scheme = "https"
	}
	return normalizeOrigin(scheme + "://" + r.Host)
}

func normalizeOrigin(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}

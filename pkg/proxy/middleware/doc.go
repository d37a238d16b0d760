// Package middleware provides HTTP middleware for cross-cutting concerns.
//
// # Middleware Chain
//
// The server chains middleware outermost first:
//
//	handler = Recovery(RequestID(Logging(Tracing(Metrics(mux)))))
//
// RequestID runs before any handler logic so that every response, including
// CORS and rate-limit denials, carries X-Request-Id.
//
// # Request ID
//
// A client-supplied X-Request-Id is reused when it is at most 80 characters
// of [A-Za-z0-9._:-]. Anything else is replaced with a UUID v4:
//
//	X-Request-Id: 550e8400-e29b-41d4-a716-446655440000
//
// The ID is stored in the context through the logging package, so every log
// record written with a request context carries request_id.
//
// # CORS
//
// CORS is resolved per route rather than applied globally, because each
// endpoint advertises its own methods and headers. Resolve returns a
// CORSDecision whose Allowed flag gates the handler and whose Headers are
// copied onto every response:
//
//	decision := middleware.Resolve(r, cfg.Security.AllowedOrigins, middleware.RouteCORS{
//	    Methods:      "POST, OPTIONS",
//	    AllowHeaders: "Content-Type, X-User-OpenAI-Key, X-Request-Id",
//	})
//	decision.Apply(w)
//	if !decision.Allowed {
//	    // 403
//	}
//
// The allow-list comes from ALLOWED_ORIGINS. "*" allows everything, an
// explicit list is authoritative, and an empty list falls back to
// DevAllowedOrigins. The service's own origin is always accepted.
//
// # Recovery
//
// RecoveryMiddleware catches panics in handlers and writes a JSON 500:
//
//	{"error": "요청 처리 중 문제가 발생했습니다."}
//
// The panic stack trace is logged but not exposed to clients.
package middleware

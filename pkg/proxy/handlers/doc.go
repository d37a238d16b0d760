// Package handlers implements the edge HTTP endpoints.
//
// # Endpoints
//
//   - POST /api/chat: coaching replies from OpenAI or Ollama, with crisis
//     escalation and templated fallbacks
//   - POST /api/key-check: verifies a browser-supplied OpenAI key
//   - GET /api/config: public front-end configuration
//   - GET /api/health: liveness and build metadata
//
// # Request Flow
//
// Every endpoint is wrapped by Guard, which runs the shared checks in order:
//
//  1. Resolve CORS headers for the route and copy them onto the response
//  2. Answer OPTIONS preflights (204, or 403 for a denied origin)
//  3. Reject other unsupported methods with 405
//  4. Reject denied origins with 403
//  5. Count the request against the route's rate-limit scope; reject with 429
//
// Each route chooses its own denial body, so the front-end can read errors
// in the shape it expects for that endpoint. The request ID header is set
// earlier by middleware.RequestIDMiddleware.
//
// Configuration is read from the shared config.Holder on every request, so
// a reloaded allow-list, rate limit or provider setting applies to the next
// request without a restart.
package handlers

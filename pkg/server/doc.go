// Package server ties the edge handlers and middleware into one HTTP server
// and manages its lifecycle.
//
// # Routes
//
//	/api/chat       POST  coaching replies
//	/api/key-check  POST  OpenAI key verification
//	/api/config     GET   public front-end configuration
//	/api/health     GET   liveness and build metadata
//	/metrics        GET   Prometheus metrics, when enabled
//
// Unknown paths answer 404 with a JSON error body.
//
// # Middleware
//
// Requests pass through, outermost first:
//
//  1. RecoveryMiddleware: turns panics into a JSON 500
//  2. RequestIDMiddleware: accepts or generates X-Request-Id
//  3. LoggingMiddleware: one structured line per request
//  4. tracing.HTTPMiddleware: a server span per request
//  5. MetricsMiddleware: request counts and latency per route
//
// CORS and rate limiting are applied per route by the handlers, since each
// route has its own policy and denial body.
//
// # Basic Usage
//
//	holder := config.NewHolder(cfg)
//	deps := &handlers.Dependencies{
//	    Config:  holder,
//	    Limiter: ratelimit.NewLimiter(storage.NewMemoryStore()),
//	    OpenAI:  providers.NewHTTPProvider(openai.ProviderName),
//	    Ollama:  providers.NewHTTPProvider(ollama.ProviderName),
//	}
//
//	srv := server.NewServer(deps)
//	if err := srv.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// Start blocks until ctx is cancelled or Stop is called, then shuts down
// gracefully within server.shutdown_timeout. Listener settings and the
// metrics path are read once at start; every other setting is read from the
// holder per request.
package server

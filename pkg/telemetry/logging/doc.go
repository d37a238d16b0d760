// Package logging configures the process-wide slog logger.
//
// The handler returned by New wraps a JSON or text slog handler and adds two
// behaviors:
//   - the request ID stored in the context is attached to every record
//   - API keys and bearer tokens are masked before they reach the output
//
// Usage:
//
//	logger, err := logging.New(logging.Config{Level: "info", Format: "json", Redact: true})
//	if err != nil {
//	    return err
//	}
//	slog.SetDefault(logger)
//
//	ctx = logging.WithRequestID(ctx, "req-123")
//	slog.InfoContext(ctx, "chat handled", "api_key", key) // api_key is masked
package logging

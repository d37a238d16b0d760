package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"the-savior/edge/pkg/proxy"
)

// RecoveryMiddleware turns a handler panic into a 500 with the generic
// error body and logs the panic value with its stack.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
//
// Example usage:
//
//	handler = RecoveryMiddleware(handler)
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			recovered := recover()
			if recovered == nil {
				return
			}
			if recovered == http.ErrAbortHandler {
				panic(recovered)
			}

			slog.ErrorContext(r.Context(), "handler panicked",
				"panic", fmt.Sprint(recovered),
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)

			body := map[string]string{"error": proxy.MsgInternalError}
			if err := proxy.WriteJSONResponse(w, http.StatusInternalServerError, body); err != nil {
				slog.ErrorContext(r.Context(), "failed to write panic response", "error", err)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"the-savior/edge/pkg/telemetry/logging"
)

const (
	// RequestIDHeader is the HTTP header for request ID.
	RequestIDHeader = "X-Request-Id"

	// maxRequestIDLength bounds client-supplied request IDs.
	maxRequestIDLength = 80
)

var requestIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

// RequestIDMiddleware assigns a request ID to each request, stores it in the
// context and echoes it in the X-Request-Id response header. A client value
// is reused only when it is short and limited to [A-Za-z0-9._:-].
//
// Example usage:
//
//	handler = RequestIDMiddleware(handler)
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ResolveRequestID(r.Header.Get(RequestIDHeader))

		ctx := logging.WithRequestID(r.Context(), requestID)
		w.Header().Set(RequestIDHeader, requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ResolveRequestID returns incoming when it is a safe request ID, or a fresh
// one otherwise.
func ResolveRequestID(incoming string) string {
	if candidate := normalizeRequestID(incoming); candidate != "" {
		return candidate
	}
	return generateRequestID()
}

func normalizeRequestID(value string) string {
	candidate := strings.TrimSpace(value)
	if candidate == "" || len(candidate) > maxRequestIDLength {
		return ""
	}
	if !requestIDPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}

// generateRequestID returns a UUID v4, falling back to req-<unixms>-<hex8>
// when the random source fails.
func generateRequestID() string {
	id, err := uuid.NewRandom()
	if err == nil {
		return id.String()
	}

	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("req-%d-%08x", time.Now().UnixMilli(), time.Now().UnixNano()&0xffffffff)
	}
	return fmt.Sprintf("req-%d-%s", time.Now().UnixMilli(), hex.EncodeToString(b))
}

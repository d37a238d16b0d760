package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
)

var uuidPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	wrapped := RequestIDMiddleware(handler)

	t.Run("generates request ID when not provided", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		requestID := w.Header().Get(RequestIDHeader)
		if !uuidPattern.MatchString(requestID) {
			t.Errorf("Request ID = %q, want UUID v4", requestID)
		}
		if seen != requestID {
			t.Errorf("context request ID = %v, want %v", seen, requestID)
		}
	})

	t.Run("uses safe provided request ID", func(t *testing.T) {
		customID := "trace.abc:123-XYZ_9"
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "  "+customID+"  ")
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		if got := w.Header().Get(RequestIDHeader); got != customID {
			t.Errorf("Request ID = %v, want %v", got, customID)
		}
	})

	t.Run("replaces unsafe request ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(RequestIDHeader, "bad id<script>")
		w := httptest.NewRecorder()

		wrapped.ServeHTTP(w, req)

		got := w.Header().Get(RequestIDHeader)
		if got == "bad id<script>" || !uuidPattern.MatchString(got) {
			t.Errorf("Request ID = %q, want fresh UUID", got)
		}
	})

	t.Run("generates unique IDs for different requests", func(t *testing.T) {
		w1 := httptest.NewRecorder()
		wrapped.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/test", nil))
		w2 := httptest.NewRecorder()
		wrapped.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/test", nil))

		if w1.Header().Get(RequestIDHeader) == w2.Header().Get(RequestIDHeader) {
			t.Error("Request IDs should be unique")
		}
	})
}

func TestResolveRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"simple", "abc-123", true},
		{"all allowed punctuation", "a.b_c:d-e", true},
		{"exactly 80 chars", strings.Repeat("a", 80), true},
		{"81 chars", strings.Repeat("a", 81), false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"inner space", "abc 123", false},
		{"slash", "abc/123", false},
		{"unicode", "요청-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRequestID(tt.incoming)
			if tt.keep && got != strings.TrimSpace(tt.incoming) {
				t.Errorf("ResolveRequestID(%q) = %q, want input kept", tt.incoming, got)
			}
			if !tt.keep && got == tt.incoming {
				t.Errorf("ResolveRequestID(%q) kept unsafe input", tt.incoming)
			}
			if got == "" {
				t.Error("ResolveRequestID returned empty ID")
			}
		})
	}
}

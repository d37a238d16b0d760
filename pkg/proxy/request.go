package proxy

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultMaxBodyBytes is the body limit for chat requests.
	DefaultMaxBodyBytes = 12_000

	// KeyCheckMaxBodyBytes is the body limit for key verification.
	KeyCheckMaxBodyBytes = 2_000
)

// ReadJSONBody reads r's body as a JSON object no larger than maxBytes.
// Every failure is a KindValidation *Error carrying its status.
func ReadJSONBody(r *http.Request, maxBytes int64) (map[string]any, error) {
	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "application/json") {
		return nil, NewValidationError(http.StatusUnsupportedMediaType, MsgContentType)
	}

	if r.ContentLength > maxBytes {
		return nil, NewValidationError(http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
	}

	if r.Body == nil {
		return nil, NewValidationError(http.StatusBadRequest, MsgBodyEmpty)
	}

	// One byte past the limit is enough to detect oversize bodies.
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBytes+1))
	if err != nil {
		e := NewValidationError(http.StatusBadRequest, MsgInvalidFormat)
		e.Cause = err
		return nil, e
	}

	if strings.TrimSpace(string(raw)) == "" {
		return nil, NewValidationError(http.StatusBadRequest, MsgBodyEmpty)
	}

	if int64(len(raw)) > maxBytes {
		return nil, NewValidationError(http.StatusRequestEntityTooLarge, MsgBodyTooLarge)
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		e := NewValidationError(http.StatusBadRequest, MsgInvalidFormat)
		e.Cause = err
		return nil, e
	}

	payload, ok := decoded.(map[string]any)
	if !ok {
		return nil, NewValidationError(http.StatusBadRequest, MsgInvalidFormat)
	}

	return payload, nil
}

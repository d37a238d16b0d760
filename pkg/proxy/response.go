package proxy

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// JSONContentType is the Content-Type of every JSON response.
const JSONContentType = "application/json; charset=utf-8"

// WriteJSONResponse writes data as JSON with the given status. The response is
// marked no-store unless the caller already set Cache-Control.
func WriteJSONResponse(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", JSONContentType)
	if w.Header().Get("Cache-Control") == "" {
		w.Header().Set("Cache-Control", "no-store")
	}
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON response: %w", err)
	}

	return nil
}

package providers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// ErrorKind classifies an upstream failure.
type ErrorKind string

const (
	KindUnauthorized   ErrorKind = "unauthorized"
	KindThrottled      ErrorKind = "throttled"
	KindTimeout        ErrorKind = "timeout"
	KindServerError    ErrorKind = "server_error"
	KindRequestFailed  ErrorKind = "request_failed"
	KindEmptyResponse  ErrorKind = "empty_response"
	KindUpstreamStatus ErrorKind = "upstream_status"
)

// TimeoutMessage is the message of every KindTimeout error.
const TimeoutMessage = "upstream request timed out"

// UpstreamError is a failed call to a model provider.
type UpstreamError struct {
	// Provider is the name of the provider that failed, e.g. "openai".
	Provider string

	Kind ErrorKind

	// Status is the upstream HTTP status. Timeouts and transport failures
	// carry the gateway statuses 504 and 502.
	Status int

	// Message is the upstream error message, or a local description.
	Message string

	// Cause is the underlying error (if any).
	Cause error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider %q %s (status %d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("provider %q %s: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain support.
func (e *UpstreamError) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns the status the edge responds with for this failure.
func (e *UpstreamError) HTTPStatus() int {
	switch e.Kind {
	case KindUnauthorized:
		return http.StatusBadRequest
	case KindThrottled:
		return http.StatusTooManyRequests
	case KindTimeout:
		return http.StatusGatewayTimeout
	case KindServerError, KindRequestFailed:
		return http.StatusBadGateway
	case KindUpstreamStatus:
		if e.Status >= 400 && e.Status < 500 {
			return e.Status
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FallbackEligible reports whether a templated reply may be served instead.
// Only transient upstream conditions qualify.
func (e *UpstreamError) FallbackEligible() bool {
	switch e.Kind {
	case KindThrottled, KindServerError, KindTimeout, KindRequestFailed:
		return true
	default:
		return false
	}
}

// Reason returns the fallback reason, e.g. "openai_504".
func (e *UpstreamError) Reason() string {
	return e.Provider + "_" + strconv.Itoa(e.Status)
}

// KindForStatus classifies a non-2xx upstream status.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusTooManyRequests:
		return KindThrottled
	case status >= 500:
		return KindServerError
	default:
		return KindUpstreamStatus
	}
}

// AsUpstreamError extracts an *UpstreamError from err's chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var e *UpstreamError
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

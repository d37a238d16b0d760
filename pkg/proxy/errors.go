package proxy

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an edge failure.
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"
	KindOriginDenied ErrorKind = "origin_denied"
	KindRateLimited  ErrorKind = "rate_limited"
	KindInternal     ErrorKind = "internal"
)

// Client-facing messages.
const (
	MsgContentType    = "요청 Content-Type은 application/json 이어야 합니다."
	MsgBodyTooLarge   = "요청 본문 크기가 제한을 초과했습니다."
	MsgBodyEmpty      = "요청 본문이 비어 있습니다."
	MsgInvalidFormat  = "요청 형식이 올바르지 않습니다."
	MsgOriginDenied   = "허용되지 않은 요청 출처입니다."
	MsgRateLimited    = "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요."
	MsgInternalError  = "요청 처리 중 문제가 발생했습니다."
	MsgMessageMissing = "메시지를 입력해 주세요."

	MsgMethodNotAllowed = "허용되지 않은 요청 방식입니다."
)

// Error is an edge failure with the HTTP status it maps to.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Kind, e.Status, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewValidationError returns a validation error with the given status.
func NewValidationError(status int, message string) *Error {
	return &Error{Kind: KindValidation, Status: status, Message: message}
}

// NewOriginDeniedError returns the 403 for a disallowed origin.
func NewOriginDeniedError() *Error {
	return &Error{Kind: KindOriginDenied, Status: http.StatusForbidden, Message: MsgOriginDenied}
}

// NewRateLimitedError returns the 429 for a blocked client.
func NewRateLimitedError() *Error {
	return &Error{Kind: KindRateLimited, Status: http.StatusTooManyRequests, Message: MsgRateLimited}
}

// NewInternalError wraps an unexpected failure as a 500.
func NewInternalError(cause error) *Error {
	return &Error{Kind: KindInternal, Status: http.StatusInternalServerError, Message: MsgInternalError, Cause: cause}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Package proxy holds the request-side building blocks shared by the edge
// handlers: body validation, the closed set of edge errors, and JSON
// response writing.
//
// # Body Validation
//
// ReadJSONBody enforces, in order, a JSON content type (415), the declared
// and actual body size (413), a non-blank body (400), and a JSON object
// payload (400):
//
//	payload, err := proxy.ReadJSONBody(r, proxy.DefaultMaxBodyBytes)
//	if perr, ok := proxy.AsError(err); ok {
//	    // perr.Status, perr.Message
//	}
//
// # Errors
//
// Edge failures are *Error values with a Kind. Handlers switch on Kind and
// never inspect messages.
//
//   - KindValidation: 400, 413 or 415
//   - KindOriginDenied: 403
//   - KindRateLimited: 429
//   - KindInternal: 500
package proxy

package ratelimit

import (
	"net/http"
	"strings"
)

// DefaultTrustedHeader is the proxy header consulted when X-Forwarded-For is
// absent. Cloudflare appends to a client-supplied X-Forwarded-For rather than
// replacing it, so behind Cloudflare a client can pick its own bucket; strip
// the header at the edge when that matters.
const DefaultTrustedHeader = "CF-Connecting-IP"

// UnknownClient is the identifier used when no client header is present.
const UnknownClient = "unknown"

// ClientIdentifier returns the first X-Forwarded-For entry, then the value of
// trustedHeader, then UnknownClient.
func ClientIdentifier(r *http.Request, trustedHeader string) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	if trustedHeader == "" {
		trustedHeader = DefaultTrustedHeader
	}
	if ip := strings.TrimSpace(r.Header.Get(trustedHeader)); ip != "" {
		return ip
	}

	return UnknownClient
}

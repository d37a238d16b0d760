package openai

import (
	"strings"
	"unicode"
	"unicode/utf16"
)

// UserKeyHeader carries a browser-supplied key.
const UserKeyHeader = "X-User-OpenAI-Key"

const (
	minKeyLength = 20
	maxKeyLength = 260
)

// NormalizeKey trims surrounding whitespace.
func NormalizeKey(key string) string {
	return strings.TrimSpace(key)
}

// IsLikelyKey reports whether key has the shape of an OpenAI API key.
func IsLikelyKey(key string) bool {
	key = NormalizeKey(key)
	if !strings.HasPrefix(key, "sk-") {
		return false
	}
	if n := utf16Len(key); n < minKeyLength || n > maxKeyLength {
		return false
	}
	return strings.IndexFunc(key, unicode.IsSpace) < 0
}

// utf16Len counts key in UTF-16 code units, so a rune outside the BMP
// counts as two.
func utf16Len(key string) int {
	n := 0
	for _, r := range key {
		n += utf16.RuneLen(r)
	}
	return n
}

// ResolveAPIKey returns the key to call OpenAI with. A well-formed user key
// wins over the server key; malformed keys of either kind are ignored.
// It returns "" when neither is usable.
func ResolveAPIKey(userKey, serverKey string) string {
	if IsLikelyKey(userKey) {
		return NormalizeKey(userKey)
	}
	if IsLikelyKey(serverKey) {
		return NormalizeKey(serverKey)
	}
	return ""
}

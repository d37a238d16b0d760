package logging

import (
	"regexp"
	"strings"
)

// Redactor masks credentials in log values.
type Redactor struct {
	patterns []redactPattern
}

type redactPattern struct {
	regex       *regexp.Regexp
	replacement string
}

// sensitiveKeys are attribute names whose values are always masked.
var sensitiveKeys = []string{
	"api_key", "apikey",
	"authorization",
	"x-user-openai-key", "user_key",
	"secret", "token", "password",
}

// NewRedactor creates a Redactor with the built-in credential patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []redactPattern{
			{regex: regexp.MustCompile(`sk-[A-Za-z0-9_\-]{4,}`), replacement: "sk-***"},
			{regex: regexp.MustCompile(`Bearer\s+[A-Za-z0-9\-._~+/]+=*`), replacement: "Bearer ***"},
		},
	}
}

// RedactString masks every credential-shaped substring of value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	for _, p := range r.patterns {
		value = p.regex.ReplaceAllString(value, p.replacement)
	}
	return value
}

// IsSensitiveKey reports whether an attribute key names a credential.
func (r *Redactor) IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lower, sensitive) {
			return true
		}
	}
	return false
}

// RedactAPIKey keeps only the first four characters of an API key.
func RedactAPIKey(apiKey string) string {
	if len(apiKey) <= 4 {
		return "***"
	}
	return apiKey[:4] + "***"
}

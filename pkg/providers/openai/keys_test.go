package openai

import (
	"strings"
	"testing"
)

func TestIsLikelyKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want bool
	}{
		{"valid", "sk-proj-abcdefghijklmnop", true},
		{"surrounding whitespace", "  sk-abcdefghijklmnopqrstu \n", true},
		{"exactly 20", "sk-" + strings.Repeat("a", 17), true},
		{"19 chars", "sk-" + strings.Repeat("a", 16), false},
		{"exactly 260", "sk-" + strings.Repeat("a", 257), true},
		{"261 chars", "sk-" + strings.Repeat("a", 258), false},
		{"astral runes count twice", "sk-" + strings.Repeat("\U0001F600", 9), true},
		{"astral runes over the limit", "sk-" + strings.Repeat("\U0001F600", 129), false},
		{"wrong prefix", "pk-abcdefghijklmnopqrstu", false},
		{"inner space", "sk-abcdefghij klmnopqrstu", false},
		{"inner tab", "sk-abcdefghij\tklmnopqrstu", false},
		{"not a key", "not-a-key", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLikelyKey(tt.key); got != tt.want {
				t.Errorf("IsLikelyKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	user := "sk-user-aaaaaaaaaaaaaaaaaa"
	server := "sk-server-bbbbbbbbbbbbbbbb"

	tests := []struct {
		name   string
		user   string
		server string
		want   string
	}{
		{"user key wins", user, server, user},
		{"malformed user key ignored", "sk-short", server, server},
		{"server key only", "", server, server},
		{"malformed server key treated as absent", "", "changeme", ""},
		{"none", "", "", ""},
		{"user key trimmed", "  " + user + "  ", "", user},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveAPIKey(tt.user, tt.server); got != tt.want {
				t.Errorf("ResolveAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

package coach

import (
	"strings"
	"testing"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		limit int
		want  string
	}{
		{"trims", "  안녕  ", 20, "안녕"},
		{"collapses whitespace", "a \t\n  b", 20, "a b"},
		{"replaces control characters", "a\x00b\x7fc", 20, "a b c"},
		{"ideographic space", "가　　나", 20, "가 나"},
		{"truncates by character", "가나다라마", 3, "가나다"},
		{"exact limit", "abc", 3, "abc"},
		{"non-string", 42.0, 20, ""},
		{"nil", nil, 20, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.value, tt.limit); got != tt.want {
				t.Errorf("Sanitize(%q, %d) = %q, want %q", tt.value, tt.limit, got, tt.want)
			}
		})
	}
}

func TestSanitizeHistory(t *testing.T) {
	raw := []any{
		map[string]any{"role": "user", "content": "first"},
		map[string]any{"role": "assistant", "content": "second"},
		map[string]any{"role": "user", "content": "third"},
		map[string]any{"role": "system", "content": "fourth"},
		map[string]any{"role": "assistant", "content": "   "},
		"not an object",
		map[string]any{"role": "assistant", "content": strings.Repeat("x", 500)},
		map[string]any{"content": "eighth"},
	}

	got := SanitizeHistory(raw)

	want := []HistoryItem{
		{Role: "user", Content: "third"},
		{Role: "user", Content: "fourth"},
		{Role: "assistant", Content: strings.Repeat("x", 400)},
		{Role: "user", Content: "eighth"},
	}
	if len(got) != len(want) {
		t.Fatalf("len(SanitizeHistory()) = %d, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("history[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSanitizeHistoryNotAList(t *testing.T) {
	if got := SanitizeHistory("nope"); got != nil {
		t.Errorf("SanitizeHistory(string) = %v, want nil", got)
	}
}

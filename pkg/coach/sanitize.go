package coach

import (
	"regexp"
	"strings"
)

// DefaultTextLimit is the character limit for the source text.
const DefaultTextLimit = 2000

const (
	historyMaxItems    = 6
	historyContentSize = 400
)

var (
	controlChars = regexp.MustCompile(`[\x00-\x1F\x7F]`)
	whitespace   = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}\x{2028}\x{2029}]+`)
)

// Sanitize returns value as cleaned text of at most limit characters.
// Values that are not strings yield "".
func Sanitize(value any, limit int) string {
	text, ok := value.(string)
	if !ok {
		return ""
	}
	text = controlChars.ReplaceAllString(text, " ")
	text = whitespace.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)
	return truncate(text, limit)
}

func truncate(text string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	count := 0
	for i := range text {
		if count == limit {
			return text[:i]
		}
		count++
	}
	return text
}

// HistoryItem is one prior turn of a coach conversation.
type HistoryItem struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SanitizeHistory keeps the last six turns of value, normalizing roles to
// "assistant" or "user" and dropping turns whose content is empty.
func SanitizeHistory(value any) []HistoryItem {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	if len(items) > historyMaxItems {
		items = items[len(items)-historyMaxItems:]
	}

	history := make([]HistoryItem, 0, len(items))
	for _, raw := range items {
		item, _ := raw.(map[string]any)
		role := "user"
		if r, _ := item["role"].(string); r == "assistant" {
			role = "assistant"
		}
		content := Sanitize(item["content"], historyContentSize)
		if content == "" {
			continue
		}
		history = append(history, HistoryItem{Role: role, Content: content})
	}
	return history
}

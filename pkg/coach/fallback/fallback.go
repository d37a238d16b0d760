package fallback

import (
	"strings"

	"the-savior/edge/pkg/coach"
)

// Reasons that do not come from an upstream status.
const (
	ReasonAPIKeyMissing     = "api_key_missing"
	ReasonOllamaUnavailable = "ollama_unavailable"
)

// Generate returns a templated reply for mode. A nil input, or one that
// belongs to a different mode, is treated as empty.
func Generate(mode coach.Mode, input coach.Input, reason string) string {
	var body string
	switch mode {
	case coach.ModeCheckin:
		in, _ := input.(*coach.CheckinInput)
		if in == nil {
			in = &coach.CheckinInput{}
		}
		body = checkinReply(in)
	case coach.ModeJournal:
		in, _ := input.(*coach.JournalInput)
		if in == nil {
			in = &coach.JournalInput{}
		}
		body = journalReply(in)
	default:
		in, _ := input.(*coach.CoachInput)
		if in == nil {
			in = &coach.CoachInput{}
		}
		body = coachReply(in)
	}
	return opener(reason) + "\n\n" + body
}

func opener(reason string) string {
	switch {
	case reason == ReasonAPIKeyMissing:
		return "지금은 AI 답변 없이 기본 코칭으로 함께할게요."
	case reason == ReasonOllamaUnavailable, strings.HasPrefix(reason, "ollama_"):
		return "로컬 AI에 연결하지 못해 기본 코칭으로 함께할게요."
	default:
		return "AI 연결이 잠시 불안정해서 기본 코칭으로 함께할게요."
	}
}

// excerpt shortens user text for quoting inside a reply.
func excerpt(text string, limit int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= limit {
		return string(runes)
	}
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// matchAny reports whether text contains any of the keywords,
// ignoring case.
func matchAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

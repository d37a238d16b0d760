package coach

import (
	"fmt"
	"strings"
)

var baseSystemPrompt = strings.Join([]string{
	"You are The Savior, a Korean-language Buddhist-inspired wellness coach.",
	"Goals: emotional grounding, breath practice, compassionate reflection, practical next action.",
	"Rules:",
	"- Do not provide medical diagnosis, legal advice, or guaranteed outcomes.",
	"- Do not claim supernatural certainty.",
	"- Keep tone warm, direct, and concise.",
	"- Output in Korean unless user explicitly asks otherwise.",
	"- Include actionable steps with clear time boxes.",
	"- If severe risk is implied, advise contacting emergency/hotline resources.",
}, "\n")

var returnFormats = map[Mode]string{
	ModeCheckin: "1) 현재 상태 요약(2문장)\n2) 3분 안정 루틴(번호 3개)\n3) 오늘의 자비 문장(1문장)\n4) 다음 행동(1문장)",
	ModeJournal: "1) 감정 패턴\n2) 생각 습관 점검\n3) 불교 기반 재해석\n4) 내일의 실천 1가지",
	ModeCoach:   "- 짧은 공감 1문장\n- 지금 가능한 행동 2~3개\n- 마지막에 한 줄 격려",
}

// SystemPrompt returns the system instructions for mode.
func SystemPrompt(mode Mode) string {
	format, ok := returnFormats[mode]
	if !ok {
		format = returnFormats[ModeCoach]
	}
	return baseSystemPrompt + "\n\nReturn format:\n" + format
}

// UserPrompt renders the mode-specific input as the user message.
func UserPrompt(input Input) string {
	switch in := input.(type) {
	case *CheckinInput:
		return strings.Join([]string{
			"[체크인 입력]",
			"감정: " + orDefault(in.Mood, "미입력"),
			"스트레스(1~10): " + orDefault(in.Stress, "미입력"),
			"메모: " + orDefault(in.Note, "없음"),
		}, "\n")
	case *JournalInput:
		return "[저널 원문]\n" + orDefault(in.Entry, "(내용 없음)")
	case *CoachInput:
		return strings.Join([]string{
			"[최근 대화 맥락]",
			orDefault(historyBlock(in.History), "없음"),
			"[새 메시지]",
			orDefault(in.Message, "(입력 없음)"),
		}, "\n")
	default:
		return ""
	}
}

func historyBlock(history []HistoryItem) string {
	lines := make([]string, 0, len(history))
	for i, turn := range history {
		speaker := "사용자"
		if turn.Role == "assistant" {
			speaker = "코치"
		}
		lines = append(lines, fmt.Sprintf("%d. %s: %s", i+1, speaker, turn.Content))
	}
	return strings.Join(lines, "\n")
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

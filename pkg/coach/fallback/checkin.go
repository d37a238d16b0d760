package fallback

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"the-savior/edge/pkg/coach"
)

// StressBand groups a 1 to 10 stress score.
type StressBand int

const (
	StressUnknown StressBand = iota
	StressLow
	StressModerate
	StressHigh
)

// ParseStressBand reads the leading integer of a stress score.
// Scores outside 1 to 10 are unknown.
func ParseStressBand(stress string) StressBand {
	stress = strings.TrimSpace(stress)
	end := strings.IndexFunc(stress, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == 0 {
		return StressUnknown
	}
	if end > 0 {
		stress = stress[:end]
	}
	n, err := strconv.Atoi(stress)
	if err != nil {
		return StressUnknown
	}
	switch {
	case n >= 1 && n <= 3:
		return StressLow
	case n >= 4 && n <= 6:
		return StressModerate
	case n >= 7 && n <= 10:
		return StressHigh
	default:
		return StressUnknown
	}
}

type stressGuide struct {
	summary    string
	routine    string
	compassion string
	next       string
}

var stressGuides = map[StressBand]stressGuide{
	StressLow: {
		summary:    "스트레스는 비교적 낮은 편이라 지금의 여유를 알아차리기 좋은 때예요.",
		routine:    "오늘 편안했던 순간 하나를 떠올리고 그때의 몸 감각을 기억합니다.",
		compassion: "나는 지금의 평온을 충분히 누려도 괜찮다.",
		next:       "10분 동안 미뤄 둔 작은 일 하나를 가볍게 끝내 보세요.",
	},
	StressModerate: {
		summary:    "스트레스가 중간 정도로 쌓여 있어 잠깐 속도를 늦추면 도움이 돼요.",
		routine:    "지금 마음을 무겁게 하는 일 하나를 떠올리고 '지금은 여기까지'라고 속으로 말합니다.",
		compassion: "나는 완벽하지 않아도 충분히 애쓰고 있다.",
		next:       "30분 안에 할 일 하나만 골라 작은 단위로 시작해 보세요.",
	},
	StressHigh: {
		summary:    "스트레스가 높은 상태라 몸과 마음이 많이 긴장해 있을 수 있어요.",
		routine:    "어깨와 턱에 힘을 빼고 내쉬는 숨을 들이쉬는 숨보다 길게 이어 갑니다.",
		compassion: "지금 힘든 것은 내가 약해서가 아니라 많은 것을 견디고 있기 때문이다.",
		next:       "오늘은 꼭 필요한 일 하나만 남기고 나머지는 내일로 미뤄도 괜찮아요.",
	},
	StressUnknown: {
		summary:    "스트레스 정도는 아직 기록되지 않았지만 지금 상태를 살피는 것만으로도 의미가 있어요.",
		routine:    "지금 몸에서 가장 긴장된 곳 하나를 찾아 그곳으로 숨을 보내듯 호흡합니다.",
		compassion: "나는 내 마음을 돌볼 자격이 있다.",
		next:       "5분 동안 물 한 잔을 천천히 마시며 쉬어 보세요.",
	},
}

func checkinReply(in *coach.CheckinInput) string {
	guide := stressGuides[ParseStressBand(in.Stress)]

	mood := "아직 이름 붙이지 않은 감정"
	if in.Mood != "" {
		mood = "'" + excerpt(in.Mood, 20) + "'"
	}
	noteLine := "오늘의 상태를 기록한 것 자체가 좋은 시작이에요."
	if in.Note != "" {
		noteLine = fmt.Sprintf("메모에 남긴 \"%s\"도 지금 마음을 보여 주는 소중한 단서예요.", excerpt(in.Note, 40))
	}

	var b strings.Builder
	b.WriteString("1) 현재 상태 요약\n")
	fmt.Fprintf(&b, "기록한 감정: %s\n%s %s\n\n", mood, guide.summary, noteLine)
	b.WriteString("2) 3분 안정 루틴\n")
	b.WriteString("1. 1분: 4초 들이쉬고 6초 내쉬는 호흡을 여섯 번 반복합니다.\n")
	b.WriteString("2. 1분: 발바닥이 바닥에 닿는 감각을 천천히 느껴 봅니다.\n")
	fmt.Fprintf(&b, "3. 1분: %s\n\n", guide.routine)
	b.WriteString("3) 오늘의 자비 문장\n")
	fmt.Fprintf(&b, "\"%s\"\n\n", guide.compassion)
	b.WriteString("4) 다음 행동\n")
	b.WriteString(guide.next)
	return b.String()
}

package fallback

import (
	"fmt"
	"strings"

	"the-savior/edge/pkg/coach"
)

// Emotion is an emotion category detected in journal text.
type Emotion string

const (
	EmotionAnxiety   Emotion = "anxiety"
	EmotionSadness   Emotion = "sadness"
	EmotionAnger     Emotion = "anger"
	EmotionFatigue   Emotion = "fatigue"
	EmotionGratitude Emotion = "gratitude"
)

type emotionRule struct {
	emotion  Emotion
	label    string
	keywords []string
	thought  string
	reframe  string
	practice string
}

// emotionRules are checked in order; the first match shapes the
// reinterpretation and the practice.
var emotionRules = []emotionRule{
	{
		emotion:  EmotionAnxiety,
		label:    "불안",
		keywords: []string{"불안", "걱정", "초조", "긴장", "두려", "anxious", "worr", "nervous"},
		thought:  "아직 일어나지 않은 일을 미리 겪고 있지는 않은지 살펴보세요.",
		reframe:  "불안은 미래를 지키려는 마음의 움직임이에요. 지금 이 호흡으로 돌아오면 마음은 다시 현재에 닿습니다.",
		practice: "내일 아침 5분 동안 걱정 하나를 적고, 그중 오늘 할 수 있는 일과 없는 일을 나눠 보세요.",
	},
	{
		emotion:  EmotionSadness,
		label:    "슬픔",
		keywords: []string{"슬프", "슬퍼", "우울", "눈물", "외로", "허전", "sad", "lonely", "depress"},
		thought:  "'나는 늘 이렇다'처럼 한 순간을 전체로 넓히고 있지는 않은지 살펴보세요.",
		reframe:  "슬픔도 머물다 지나가는 구름과 같아요. 밀어내지 않고 바라볼 때 그 무게가 조금씩 가벼워집니다.",
		practice: "내일 10분 동안 햇빛 아래를 천천히 걸으며 발걸음 하나하나에 주의를 두어 보세요.",
	},
	{
		emotion:  EmotionAnger,
		label:    "분노",
		keywords: []string{"화가", "화나", "화났", "짜증", "분노", "억울", "angry", "annoy", "frustrat"},
		thought:  "상대의 의도를 단정하고 있지는 않은지, '반드시 그래야 한다'는 기준이 있는지 살펴보세요.",
		reframe:  "분노는 소중한 것이 침해되었다는 신호예요. 불씨를 붙잡지 않고 내려놓으면 가장 먼저 내 마음이 편안해집니다.",
		practice: "내일 화가 올라오면 바로 반응하지 말고 세 번 숨을 쉰 뒤 말해 보세요.",
	},
	{
		emotion:  EmotionFatigue,
		label:    "피로",
		keywords: []string{"피곤", "지쳤", "지쳐", "지침", "무기력", "번아웃", "tired", "exhaust", "burnout"},
		thought:  "쉬는 것을 게으름으로 여기고 있지는 않은지 살펴보세요.",
		reframe:  "몸과 마음이 쉼을 청하는 것은 자연스러운 흐름이에요. 쉼도 수행의 한 부분입니다.",
		practice: "내일 잠들기 30분 전에는 화면을 끄고 몸을 천천히 풀어 주세요.",
	},
	{
		emotion:  EmotionGratitude,
		label:    "감사",
		keywords: []string{"감사", "고마", "다행", "기뻤", "행복", "grateful", "thank", "happy"},
		thought:  "좋은 순간을 당연하게 넘기지 않고 알아차린 점이 돋보여요.",
		reframe:  "감사는 이미 내 곁에 있는 것을 보는 눈이에요. 그 눈이 밝아질수록 마음의 여유도 커집니다.",
		practice: "내일 고마웠던 일 세 가지를 한 줄씩 적어 보세요.",
	},
}

// DetectEmotions returns the emotion categories found in text, in rule order.
func DetectEmotions(text string) []Emotion {
	var found []Emotion
	for _, rule := range emotionRules {
		if matchAny(text, rule.keywords) {
			found = append(found, rule.emotion)
		}
	}
	return found
}

func journalReply(in *coach.JournalInput) string {
	var matched []emotionRule
	for _, rule := range emotionRules {
		if matchAny(in.Entry, rule.keywords) {
			matched = append(matched, rule)
		}
	}

	var b strings.Builder
	b.WriteString("1) 감정 패턴\n")
	if len(matched) == 0 {
		b.WriteString("뚜렷한 감정 단어는 보이지 않지만, 하루를 글로 정리한 것만으로도 마음을 돌보는 시간이 되었어요.\n\n")
	} else {
		labels := make([]string, 0, len(matched))
		for _, rule := range matched {
			labels = append(labels, rule.label)
		}
		fmt.Fprintf(&b, "글에서 %s의 결이 느껴져요. 그 감정을 그대로 적어 낸 것이 중요한 첫걸음이에요.\n\n", strings.Join(labels, ", "))
	}

	primary := emotionRule{
		thought:  "오늘 떠오른 생각 가운데 사실과 해석을 나누어 보세요.",
		reframe:  "모든 마음은 조건에 따라 일어나고 사라져요. 오늘의 마음도 영원히 머무르지 않습니다.",
		practice: "내일 아침 3분 동안 호흡을 세며 하루의 의도를 한 문장으로 정해 보세요.",
	}
	if len(matched) > 0 {
		primary = matched[0]
	}

	b.WriteString("2) 생각 습관 점검\n")
	b.WriteString(primary.thought + "\n\n")
	b.WriteString("3) 불교 기반 재해석\n")
	b.WriteString(primary.reframe + "\n\n")
	b.WriteString("4) 내일의 실천 1가지\n")
	b.WriteString(primary.practice)
	return b.String()
}

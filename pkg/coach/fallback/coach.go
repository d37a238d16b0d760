package fallback

import (
	"strings"

	"the-savior/edge/pkg/coach"
)

// Topic is the subject a coach message is about.
type Topic string

const (
	TopicGeneral      Topic = "general"
	TopicSleep        Topic = "sleep"
	TopicWork         Topic = "work"
	TopicRelationship Topic = "relationship"
	TopicStudy        Topic = "study"
	TopicHealth       Topic = "health"
)

type topicRule struct {
	topic    Topic
	keywords []string
	empathy  string
	actions  []string
}

var topicRules = []topicRule{
	{
		topic:    TopicSleep,
		keywords: []string{"잠을", "잠이", "잠들", "수면", "불면", "새벽", "sleep", "insomnia"},
		empathy:  "잠을 제대로 이루지 못하면 하루 전체가 무겁게 느껴지죠.",
		actions: []string{
			"지금 5분 동안 조명을 낮추고 4초 들이쉬고 6초 내쉬는 호흡을 해 보세요.",
			"잠들기 30분 전에는 휴대폰을 멀리 두세요.",
			"떠오르는 생각은 종이에 한 줄로 적어 내려놓으세요.",
		},
	},
	{
		topic:    TopicWork,
		keywords: []string{"회사", "업무", "직장", "상사", "야근", "출근", "마감", "work", "job", "boss"},
		empathy:  "일에 쫓기는 마음이 많이 버거우셨을 것 같아요.",
		actions: []string{
			"지금 할 일 목록에서 가장 작은 일 하나만 골라 10분만 해 보세요.",
			"한 시간마다 1분씩 자리에서 일어나 어깨를 풀어 주세요.",
			"오늘 끝내지 못한 일은 내일의 첫 줄에 옮겨 적고 마음에서 내려놓으세요.",
		},
	},
	{
		topic:    TopicRelationship,
		keywords: []string{"친구", "가족", "연인", "남자친구", "여자친구", "부모", "엄마", "아빠", "관계", "friend", "family", "partner"},
		empathy:  "가까운 사람과의 일은 마음에 더 오래 남기 마련이에요.",
		actions: []string{
			"3분 동안 상대에게 하고 싶은 말을 보내지 않을 편지로 적어 보세요.",
			"내가 바랐던 것과 상대가 했던 행동을 나누어 적어 보세요.",
			"오늘은 나에게 먼저 따뜻한 말 한마디를 건네 주세요.",
		},
	},
	{
		topic:    TopicStudy,
		keywords: []string{"공부", "시험", "학교", "과제", "성적", "study", "exam", "school"},
		empathy:  "결과에 대한 부담이 크면 시작하는 것 자체가 어렵게 느껴지죠.",
		actions: []string{
			"25분 타이머를 맞추고 한 과목의 한 단원만 집중해 보세요.",
			"쉬는 5분에는 화면 대신 창밖을 바라보며 호흡하세요.",
			"오늘 해낸 분량을 작게라도 기록해 두세요.",
		},
	},
	{
		topic:    TopicHealth,
		keywords: []string{"건강", "아프", "아파", "통증", "병원", "health", "pain", "sick"},
		empathy:  "몸이 불편하면 마음까지 쉽게 지치게 돼요.",
		actions: []string{
			"지금 물 한 잔을 천천히 마시며 몸의 감각을 살펴보세요.",
			"통증이 계속되면 오늘 안에 전문가 상담 일정을 잡아 보세요.",
			"무리한 일정은 하나 줄이고 쉬는 시간을 먼저 확보하세요.",
		},
	},
}

var generalTopic = topicRule{
	topic:   TopicGeneral,
	empathy: "말해 주셔서 고마워요. 지금 마음을 들여다보려는 것만으로도 큰 걸음이에요.",
	actions: []string{
		"지금 1분 동안 눈을 감고 들숨과 날숨을 세어 보세요.",
		"마음에 걸리는 일을 한 문장으로 적어 보세요.",
		"오늘 안에 할 수 있는 가장 작은 행동 하나를 정해 보세요.",
	},
}

// DetectTopic returns the first topic whose keywords appear in message.
func DetectTopic(message string) Topic {
	return topicFor(message).topic
}

func topicFor(message string) topicRule {
	for _, rule := range topicRules {
		if matchAny(message, rule.keywords) {
			return rule
		}
	}
	return generalTopic
}

func coachReply(in *coach.CoachInput) string {
	rule := topicFor(in.Message)

	lines := make([]string, 0, len(rule.actions)+2)
	lines = append(lines, "- "+rule.empathy)
	for _, action := range rule.actions {
		lines = append(lines, "- "+action)
	}
	lines = append(lines, "- 천천히 가도 괜찮아요. 오늘의 작은 한 걸음이 충분합니다.")
	return strings.Join(lines, "\n")
}

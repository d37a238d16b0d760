package coach

import "regexp"

var crisisPattern = regexp.MustCompile(`(?i)(자해|극단적 선택|죽고 싶|목숨을 끊|해치고 싶|suicide|kill myself|harm myself|end my life)`)

// CrisisReply is returned instead of a model reply when HasCrisisSignal
// matches.
const CrisisReply = "지금 메시지에서 긴급한 위험 신호가 보여요. 저는 위기 대응 전문가가 아니라서 즉시 사람의 도움을 받는 것이 가장 중요합니다.\n\n" +
	"- 한국: 자살예방상담전화 1393, 정신건강상담전화 1577-0199\n" +
	"- 미국: 988 Suicide & Crisis Lifeline (전화/문자 988)\n" +
	"- 생명 위협이 있으면 즉시 119 또는 911에 연락하세요.\n\n" +
	"가능하면 지금 곁에 있는 신뢰할 수 있는 사람에게 바로 알려주세요."

// HasCrisisSignal reports whether text contains a self-harm phrase.
func HasCrisisSignal(text string) bool {
	return crisisPattern.MatchString(text)
}

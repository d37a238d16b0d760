package coach

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Mode is the interaction mode of a chat request.
type Mode string

const (
	ModeCoach   Mode = "coach"
	ModeCheckin Mode = "checkin"
	ModeJournal Mode = "journal"
)

// Field limits in characters.
const (
	modeLimit    = 20
	moodLimit    = 60
	stressLimit  = 4
	noteLimit    = 600
	entryLimit   = 1800
	messageLimit = 1200
)

// ErrMessageRequired is returned by Normalize when a coach or journal
// request carries no text.
var ErrMessageRequired = errors.New("coach: message is required")

// ParseMode maps a raw mode value to a Mode. Anything other than checkin
// or journal is coach.
func ParseMode(value any) Mode {
	switch Mode(strings.ToLower(Sanitize(value, modeLimit))) {
	case ModeCheckin:
		return ModeCheckin
	case ModeJournal:
		return ModeJournal
	default:
		return ModeCoach
	}
}

// Input is the mode-specific part of a request. It is one of *CoachInput,
// *CheckinInput, or *JournalInput.
type Input interface {
	Mode() Mode
}

// CoachInput is a free conversation turn.
type CoachInput struct {
	Message string
	History []HistoryItem
}

// Mode implements Input.
func (*CoachInput) Mode() Mode { return ModeCoach }

// CheckinInput is a mood check-in.
type CheckinInput struct {
	Mood string
	// Stress is the stress score as the client sent it, cut to four
	// characters. It is not parsed.
	Stress string
	Note   string
}

// Mode implements Input.
func (*CheckinInput) Mode() Mode { return ModeCheckin }

// JournalInput is a journal entry.
type JournalInput struct {
	Entry string
}

// Mode implements Input.
func (*JournalInput) Mode() Mode { return ModeJournal }

// Request is a validated chat request.
type Request struct {
	// Payload is the decoded body.
	Payload map[string]any

	Mode Mode

	// SourceText is the first non-empty text among message, entry, and note.
	SourceText string

	Input Input
}

// Normalize validates payload and builds the request for its mode.
// A request without text is only accepted in checkin mode.
func Normalize(payload map[string]any) (*Request, error) {
	mode := ParseMode(payload["mode"])
	source := Sanitize(firstText(payload, "message", "entry", "note"), DefaultTextLimit)
	if source == "" && mode != ModeCheckin {
		return nil, ErrMessageRequired
	}

	req := &Request{
		Payload:    payload,
		Mode:       mode,
		SourceText: source,
	}

	switch mode {
	case ModeCheckin:
		req.Input = &CheckinInput{
			Mood:   Sanitize(payload["mood"], moodLimit),
			Stress: truncate(stressText(payload["stress"]), stressLimit),
			Note:   Sanitize(firstText(payload, "note", "message"), noteLimit),
		}
	case ModeJournal:
		req.Input = &JournalInput{
			Entry: Sanitize(firstText(payload, "entry", "message"), entryLimit),
		}
	default:
		req.Input = &CoachInput{
			Message: Sanitize(payload["message"], messageLimit),
			History: SanitizeHistory(payload["history"]),
		}
	}
	return req, nil
}

// CrisisText is the text crisis detection runs against: the source text
// and, for check-ins, the mood.
func (r *Request) CrisisText() string {
	if in, ok := r.Input.(*CheckinInput); ok && in.Mood != "" {
		return strings.TrimSpace(r.SourceText + " " + in.Mood)
	}
	return r.SourceText
}

// firstText returns the first key whose value is a non-empty string.
func firstText(payload map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// stressText renders the stress value the way a browser would print it.
func stressText(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

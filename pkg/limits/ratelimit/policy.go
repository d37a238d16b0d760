package ratelimit

import (
	"math"
	"strings"
	"time"

	"the-savior/edge/pkg/config"
)

// Clamp bounds for operator overrides.
const (
	MinLimit  = 1
	MaxLimit  = 500
	MinWindow = time.Second
	MaxWindow = time.Hour
)

// Policy is the built-in limit for one scope.
type Policy struct {
	Scope         string
	LimitDefault  int
	WindowDefault time.Duration
}

// Built-in scope policies.
var (
	ChatPolicy     = Policy{Scope: "chat", LimitDefault: 30, WindowDefault: time.Minute}
	KeyCheckPolicy = Policy{Scope: "keycheck", LimitDefault: 25, WindowDefault: time.Minute}
	ConfigPolicy   = Policy{Scope: "config", LimitDefault: 120, WindowDefault: time.Minute}
	HealthPolicy   = Policy{Scope: "health", LimitDefault: 240, WindowDefault: time.Minute}
)

// Overrides carries the raw operator values for a scope. Empty fields fall
// back to the policy defaults.
type Overrides struct {
	Max      string
	WindowMS string

	// TrustedHeader names the proxy header consulted for the client IP when
	// X-Forwarded-For is absent. Empty means DefaultTrustedHeader.
	TrustedHeader string
}

// OverridesFrom builds Overrides from a configured rule.
func OverridesFrom(rule config.RateLimitRule, trustedHeader string) Overrides {
	return Overrides{Max: rule.Max, WindowMS: rule.WindowMS, TrustedHeader: trustedHeader}
}

// ParseLimit parses raw as a request limit clamped to [MinLimit, MaxLimit].
func ParseLimit(raw string, def int) int {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return def
	}
	return int(clamp(n, MinLimit, MaxLimit))
}

// ParseWindow parses raw milliseconds as a window clamped to
// [MinWindow, MaxWindow].
func ParseWindow(raw string, def time.Duration) time.Duration {
	n, ok := parseLeadingInt(raw)
	if !ok {
		return def
	}
	ms := clamp(n, MinWindow.Milliseconds(), MaxWindow.Milliseconds())
	return time.Duration(ms) * time.Millisecond
}

// parseLeadingInt reads an optionally signed decimal prefix after leading
// whitespace, so "30abc" yields 30 and "abc" fails. Values too large for
// int64 saturate.
func parseLeadingInt(raw string) (int64, bool) {
	s := strings.TrimLeft(raw, " \t\n\r\v\f")

	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}

	var n int64
	digits := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			break
		}
		digits++
		if n > (math.MaxInt64-9)/10 {
			n = math.MaxInt64
			continue
		}
		n = n*10 + int64(c-'0')
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		n = -n
	}
	return n, true
}

func clamp(n, lo, hi int64) int64 {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

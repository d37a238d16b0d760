// Package ratelimit implements per-client fixed-window rate limiting for the
// edge endpoints.
//
// # Overview
//
// Every endpoint has a scope (chat, keycheck, config, health) with a default
// limit and window. Operators may override both through raw strings such as
// CHAT_RATE_LIMIT_MAX; values are parsed leniently and clamped rather than
// rejected:
//
//   - limit: leading integer, clamped to [1, 500]
//   - window: leading integer milliseconds, clamped to [1s, 1h]
//   - anything non-numeric uses the scope default
//
// Clients are identified by the first X-Forwarded-For entry, then a trusted
// proxy header (CF-Connecting-IP by default), then "unknown".
//
// # Usage
//
//	limiter := ratelimit.NewLimiter(storage.NewMemoryStore())
//	decision := limiter.Check(r, ratelimit.ChatPolicy, ratelimit.Overrides{
//	    Max:      cfg.RateLimits.Chat.Max,
//	    WindowMS: cfg.RateLimits.Chat.WindowMS,
//	})
//	decision.Apply(w)
//	if !decision.Allowed {
//	    // 429 with Retry-After
//	}
//
// # Sweeping
//
// Expired buckets are removed opportunistically during Check (when the store
// holds more than 5000 buckets, or on roughly 2% of calls) and on a cron
// schedule by Sweeper.
package ratelimit

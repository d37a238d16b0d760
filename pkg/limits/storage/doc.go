// Package storage holds fixed-window rate-limit buckets.
//
// A MemoryStore is process-local and owned by whoever constructs it; there is
// no package-level state. Each bucket is keyed by "scope:client" and records
// the hit count for the current window and the instant the window ends.
//
//	store := storage.NewMemoryStore()
//	bucket := store.Hit("chat:203.0.113.7", time.Minute, time.Now())
//	if bucket.Count > limit {
//	    // blocked
//	}
//
// Expired buckets stay in memory until Sweep removes them.
package storage

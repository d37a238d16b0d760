package storage

import (
	"sync"
	"time"
)

// Bucket is the state of one fixed window.
type Bucket struct {
	// Count is the number of hits in the window. It keeps growing past the
	// limit; callers compare it against the limit.
	Count int

	// ResetAt is when the window ends.
	ResetAt time.Time
}

// Expired reports whether the window has ended at now.
func (b Bucket) Expired(now time.Time) bool {
	return !now.Before(b.ResetAt)
}

// MemoryStore is a mutex-guarded map of buckets.
// It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*Bucket
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]*Bucket)}
}

// Hit records one request against key and returns the bucket after the
// increment. A missing or expired bucket is replaced by a fresh window
// ending at now+window.
func (s *MemoryStore) Hit(key string, window time.Duration, now time.Time) Bucket {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok || bucket.Expired(now) {
		bucket = &Bucket{ResetAt: now.Add(window)}
		s.buckets[key] = bucket
	}
	bucket.Count++

	return *bucket
}

// Get returns the bucket for key without modifying it.
func (s *MemoryStore) Get(key string) (Bucket, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, ok := s.buckets[key]
	if !ok {
		return Bucket{}, false
	}
	return *bucket, true
}

// Sweep deletes every bucket whose window has ended at now and returns the
// number removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, bucket := range s.buckets {
		if bucket.Expired(now) {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of buckets held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.buckets)
}

// Reset drops every bucket.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = make(map[string]*Bucket)
}

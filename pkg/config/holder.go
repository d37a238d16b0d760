package config

import "sync/atomic"

// Holder publishes the active configuration. Readers call Get once per
// request and use that snapshot throughout; a reload never mutates a
// snapshot already handed out.
type Holder struct {
	current atomic.Pointer[Config]
}

// NewHolder creates a Holder seeded with cfg.
func NewHolder(cfg *Config) *Holder {
	h := &Holder{}
	h.current.Store(cfg)
	return h
}

// Get returns the active configuration.
func (h *Holder) Get() *Config {
	return h.current.Load()
}

// Set replaces the active configuration.
func (h *Holder) Set(cfg *Config) {
	h.current.Store(cfg)
}

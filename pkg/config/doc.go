// Package config loads and validates runtime configuration for the edge service.
//
// Configuration is read from an optional YAML file, overlaid on built-in
// defaults, and then overridden by environment variables. The environment
// names match the ones operators already set for the hosted deployment
// (ALLOWED_ORIGINS, OPENAI_API_KEY, CHAT_RATE_LIMIT_MAX, ...), so the same
// environment works for both.
//
// Loading sequence:
//  1. Start from Default()
//  2. Overlay the YAML file, if a path is given
//  3. Apply environment overrides
//  4. ApplyDefaults for fields left empty
//  5. Validate
//
// A Holder publishes the active configuration to request handlers, and a
// Watcher reloads the file into the Holder when it changes on disk.
//
// Example configuration:
//
//	server:
//	  listen_address: "0.0.0.0:8788"
//	security:
//	  allowed_origins: "https://savior.example, https://app.savior.example"
//	rate_limits:
//	  chat:
//	    max: "30"
//	    window_ms: "60000"
//	upstream:
//	  provider: auto
//	  fallback_enabled: true
//	  openai:
//	    model: gpt-4.1-mini
//	  ollama:
//	    enabled: false
//	telemetry:
//	  logging:
//	    level: info
//	    format: json
package config

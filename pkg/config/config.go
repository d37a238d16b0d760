package config

import (
	"strings"
	"time"
)

// Config is the root configuration structure for the edge service.
type Config struct {
	// Server contains HTTP listener settings.
	Server ServerConfig `yaml:"server"`

	// Security contains origin and error-exposure settings.
	Security SecurityConfig `yaml:"security"`

	// RateLimits contains per-scope fixed-window limits.
	RateLimits RateLimitsConfig `yaml:"rate_limits"`

	// Upstream contains language-model provider settings.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Public contains values published verbatim by /api/config.
	Public PublicConfig `yaml:"public"`

	// Build contains deployment metadata reported by /api/config and /api/health.
	Build BuildConfig `yaml:"build"`

	// Telemetry contains logging, metrics, and tracing settings.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Default: "127.0.0.1:8788"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 15s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	// It must exceed the upstream chat timeout.
	// Default: 30s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes limits request header size.
	// Default: 65536
	MaxHeaderBytes int `yaml:"max_header_bytes"`
}

// SecurityConfig contains request guard settings.
type SecurityConfig struct {
	// AllowedOrigins is the comma-separated CORS allow-list. "*" allows every
	// origin; empty allows the built-in local development origins.
	// Env: ALLOWED_ORIGINS
	AllowedOrigins string `yaml:"allowed_origins"`

	// TrustedProxyHeader names the header carrying the client IP when
	// X-Forwarded-For is absent.
	// Env: TRUSTED_PROXY_HEADER
	// Default: "CF-Connecting-IP"
	TrustedProxyHeader string `yaml:"trusted_proxy_header"`

	// DebugErrors exposes upstream error details in the "detail" field.
	// Env: DEBUG_ERRORS
	DebugErrors bool `yaml:"debug_errors"`
}

// RateLimitRule holds the raw operator values for one scope. Values are kept
// as strings because unparseable values fall back to the scope defaults
// instead of failing validation.
type RateLimitRule struct {
	// Max is the number of requests allowed per window.
	Max string `yaml:"max"`

	// WindowMS is the window length in milliseconds.
	WindowMS string `yaml:"window_ms"`
}

// RateLimitsConfig contains rate limits for every scope.
type RateLimitsConfig struct {
	// Env: CHAT_RATE_LIMIT_MAX, CHAT_RATE_LIMIT_WINDOW_MS
	Chat RateLimitRule `yaml:"chat"`

	// Env: KEYCHECK_RATE_LIMIT_MAX, KEYCHECK_RATE_LIMIT_WINDOW_MS
	KeyCheck RateLimitRule `yaml:"keycheck"`

	// Env: CONFIG_RATE_LIMIT_MAX, CONFIG_RATE_LIMIT_WINDOW_MS
	Config RateLimitRule `yaml:"config"`

	// Env: HEALTH_RATE_LIMIT_MAX, HEALTH_RATE_LIMIT_WINDOW_MS
	Health RateLimitRule `yaml:"health"`

	// SweepSchedule is the cron expression for the periodic expired-bucket
	// sweep. Empty disables the scheduled sweep; the probabilistic sweep
	// always runs.
	// Default: "@every 1m"
	SweepSchedule string `yaml:"sweep_schedule"`
}

// Provider preference values.
const (
	ProviderAuto   = "auto"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// UpstreamConfig contains language-model provider configuration.
type UpstreamConfig struct {
	// Provider is the provider preference: "auto", "openai", or "ollama".
	// Env: LLM_PROVIDER
	// Default: "auto"
	Provider string `yaml:"provider"`

	// FallbackEnabled allows templated replies when no provider can answer.
	// Env: AI_FALLBACK_ENABLED
	// Default: true
	FallbackEnabled bool `yaml:"fallback_enabled"`

	// OpenAI configures the OpenAI Responses API client.
	OpenAI OpenAIConfig `yaml:"openai"`

	// Ollama configures local inference.
	Ollama OllamaConfig `yaml:"ollama"`
}

// OpenAIConfig contains OpenAI client settings.
type OpenAIConfig struct {
	// APIKey is the server key. A valid user key in X-User-OpenAI-Key wins.
	// Env: OPENAI_API_KEY
	APIKey string `yaml:"api_key"`

	// BaseURL is the API root.
	// Env: OPENAI_BASE_URL
	// Default: "https://api.openai.com/v1"
	BaseURL string `yaml:"base_url"`

	// Model is the Responses API model.
	// Env: OPENAI_MODEL
	// Default: "gpt-4.1-mini"
	Model string `yaml:"model"`

	// Temperature is the sampling temperature.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// MaxOutputTokens caps the reply length.
	// Default: 500
	MaxOutputTokens int `yaml:"max_output_tokens"`

	// ChatTimeout bounds a chat completion call.
	// Default: 20s
	ChatTimeout time.Duration `yaml:"chat_timeout"`

	// VerifyTimeout bounds a key verification call.
	// Default: 10s
	VerifyTimeout time.Duration `yaml:"verify_timeout"`
}

// OllamaConfig contains local inference settings.
type OllamaConfig struct {
	// Enabled turns on the Ollama provider.
	// Env: OLLAMA_ENABLED
	Enabled bool `yaml:"enabled"`

	// BaseURL is the Ollama server root.
	// Env: OLLAMA_BASE_URL
	// Default: "http://127.0.0.1:11434"
	BaseURL string `yaml:"base_url"`

	// Model is the local model name.
	// Env: OLLAMA_MODEL
	// Default: "llama3.1"
	Model string `yaml:"model"`

	// Temperature is the sampling temperature.
	// Default: 0.7
	Temperature float64 `yaml:"temperature"`

	// Timeout bounds a local completion call.
	// Default: 20s
	Timeout time.Duration `yaml:"timeout"`
}

// PublicConfig contains front-end facing identifiers.
type PublicConfig struct {
	// APIBaseURL is the public API origin the front-end should call.
	// Env: API_BASE_URL
	APIBaseURL string `yaml:"api_base_url"`

	// Env: ADSENSE_CLIENT
	AdsenseClient string `yaml:"adsense_client"`

	// Env: ADSENSE_SLOT_TOP
	AdsenseSlotTop string `yaml:"adsense_slot_top"`

	// Env: ADSENSE_SLOT_BOTTOM
	AdsenseSlotBottom string `yaml:"adsense_slot_bottom"`
}

// BuildConfig contains deployment metadata.
type BuildConfig struct {
	// Env: CF_PAGES_BRANCH
	Branch string `yaml:"branch"`

	// Env: CF_PAGES_COMMIT_SHA
	Commit string `yaml:"commit"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error.
	// Env: SAVIOR_LOG_LEVEL
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: json or text.
	// Env: SAVIOR_LOG_FORMAT
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes file and line in records.
	AddSource bool `yaml:"add_source"`

	// Redact masks API keys and bearer tokens in log output.
	// Default: true
	Redact bool `yaml:"redact"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether metrics are collected and exposed.
	// Env: SAVIOR_METRICS_ENABLED
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path for the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "savior"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "edge"
	Subsystem string `yaml:"subsystem"`

	// RequestDurationBuckets defines histogram buckets in seconds.
	// Default: [0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 20]
	RequestDurationBuckets []float64 `yaml:"request_duration_buckets"`
}

// TracingConfig contains OpenTelemetry tracing configuration.
type TracingConfig struct {
	// Enabled turns on span export.
	// Env: SAVIOR_TRACING_ENABLED
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP gRPC collector address (host:port).
	// Env: SAVIOR_TRACING_ENDPOINT
	Endpoint string `yaml:"endpoint"`

	// Insecure disables TLS to the collector.
	Insecure bool `yaml:"insecure"`

	// ServiceName is reported as service.name.
	// Default: "savior-edge"
	ServiceName string `yaml:"service_name"`

	// SampleRatio is the fraction of root traces sampled, 0 to 1.
	// Default: 1.0
	SampleRatio float64 `yaml:"sample_ratio"`
}

// HasServerAPIKey reports whether an operator key is configured at all.
// The shape is not checked here; an unusable key still reports true.
func (c *Config) HasServerAPIKey() bool {
	return strings.TrimSpace(c.Upstream.OpenAI.APIKey) != ""
}

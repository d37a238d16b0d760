package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8788"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 64 << 10

	// Security defaults
	DefaultTrustedProxyHeader = "CF-Connecting-IP"

	// Rate limit defaults
	DefaultSweepSchedule = "@every 1m"

	// Upstream defaults
	DefaultProvider        = ProviderAuto
	DefaultFallbackEnabled = true

	DefaultOpenAIBaseURL         = "https://api.openai.com/v1"
	DefaultOpenAIModel           = "gpt-4.1-mini"
	DefaultOpenAITemperature     = 0.7
	DefaultOpenAIMaxOutputTokens = 500
	DefaultOpenAIChatTimeout     = 20 * time.Second
	DefaultOpenAIVerifyTimeout   = 10 * time.Second

	DefaultOllamaBaseURL     = "http://127.0.0.1:11434"
	DefaultOllamaModel       = "llama3.1"
	DefaultOllamaTemperature = 0.7
	DefaultOllamaTimeout     = 20 * time.Second

	// Telemetry defaults
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "json"
	DefaultLogRedact          = true
	DefaultMetricsEnabled     = true
	DefaultMetricsPath        = "/metrics"
	DefaultMetricsNamespace   = "savior"
	DefaultMetricsSubsystem   = "edge"
	DefaultTracingServiceName = "savior-edge"
	DefaultTracingSampleRatio = 1.0
)

// DefaultRequestDurationBuckets spans local rejections through full upstream calls.
var DefaultRequestDurationBuckets = []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 5, 10, 20}

// Default returns a configuration populated with every default value.
// Boolean defaults that are true can only be expressed here, since a zero
// value in YAML is indistinguishable from an omitted field.
func Default() *Config {
	cfg := &Config{
		Upstream: UpstreamConfig{
			FallbackEnabled: DefaultFallbackEnabled,
		},
		Telemetry: TelemetryConfig{
			Logging: LoggingConfig{Redact: DefaultLogRedact},
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
		RateLimits: RateLimitsConfig{
			SweepSchedule: DefaultSweepSchedule,
		},
	}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields with their defaults.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// Security defaults
	if cfg.Security.TrustedProxyHeader == "" {
		cfg.Security.TrustedProxyHeader = DefaultTrustedProxyHeader
	}

	// Upstream defaults
	if cfg.Upstream.Provider == "" {
		cfg.Upstream.Provider = DefaultProvider
	}

	openai := &cfg.Upstream.OpenAI
	if openai.BaseURL == "" {
		openai.BaseURL = DefaultOpenAIBaseURL
	}
	if openai.Model == "" {
		openai.Model = DefaultOpenAIModel
	}
	if openai.Temperature == 0 {
		openai.Temperature = DefaultOpenAITemperature
	}
	if openai.MaxOutputTokens == 0 {
		openai.MaxOutputTokens = DefaultOpenAIMaxOutputTokens
	}
	if openai.ChatTimeout == 0 {
		openai.ChatTimeout = DefaultOpenAIChatTimeout
	}
	if openai.VerifyTimeout == 0 {
		openai.VerifyTimeout = DefaultOpenAIVerifyTimeout
	}

	ollama := &cfg.Upstream.Ollama
	if ollama.BaseURL == "" {
		ollama.BaseURL = DefaultOllamaBaseURL
	}
	if ollama.Model == "" {
		ollama.Model = DefaultOllamaModel
	}
	if ollama.Temperature == 0 {
		ollama.Temperature = DefaultOllamaTemperature
	}
	if ollama.Timeout == 0 {
		ollama.Timeout = DefaultOllamaTimeout
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLogLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLogFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Telemetry.Metrics.Subsystem == "" {
		cfg.Telemetry.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Telemetry.Metrics.RequestDurationBuckets) == 0 {
		cfg.Telemetry.Metrics.RequestDurationBuckets = append([]float64(nil), DefaultRequestDurationBuckets...)
	}
	if cfg.Telemetry.Tracing.ServiceName == "" {
		cfg.Telemetry.Tracing.ServiceName = DefaultTracingServiceName
	}
	if cfg.Telemetry.Tracing.SampleRatio == 0 {
		cfg.Telemetry.Tracing.SampleRatio = DefaultTracingSampleRatio
	}
}

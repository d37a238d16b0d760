package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load builds the configuration from defaults, the optional YAML file at
// path, and environment overrides, then validates it. An empty path skips
// the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	ApplyDefaults(cfg)
	normalize(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// normalize canonicalizes values whose case or padding does not matter.
func normalize(cfg *Config) {
	cfg.Upstream.Provider = strings.ToLower(strings.TrimSpace(cfg.Upstream.Provider))
	cfg.Upstream.OpenAI.APIKey = strings.TrimSpace(cfg.Upstream.OpenAI.APIKey)
	cfg.Upstream.OpenAI.BaseURL = strings.TrimRight(cfg.Upstream.OpenAI.BaseURL, "/")
	cfg.Upstream.Ollama.BaseURL = strings.TrimRight(cfg.Upstream.Ollama.BaseURL, "/")
	cfg.Public.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.Public.APIBaseURL), "/")
	cfg.Telemetry.Logging.Level = strings.ToLower(cfg.Telemetry.Logging.Level)
	cfg.Telemetry.Logging.Format = strings.ToLower(cfg.Telemetry.Logging.Format)
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables always take precedence over the file; a variable set
// to the empty string is ignored.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("SAVIOR_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("SAVIOR_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}

	// Security overrides
	if val := os.Getenv("ALLOWED_ORIGINS"); val != "" {
		cfg.Security.AllowedOrigins = val
	}
	if val := os.Getenv("TRUSTED_PROXY_HEADER"); val != "" {
		cfg.Security.TrustedProxyHeader = val
	}
	if val := os.Getenv("DEBUG_ERRORS"); val != "" {
		if b, ok := parseBool(val); ok {
			cfg.Security.DebugErrors = b
		}
	}

	// Rate limit overrides are copied raw; the limiter handles bad values.
	applyRuleOverrides(&cfg.RateLimits.Chat, "CHAT")
	applyRuleOverrides(&cfg.RateLimits.KeyCheck, "KEYCHECK")
	applyRuleOverrides(&cfg.RateLimits.Config, "CONFIG")
	applyRuleOverrides(&cfg.RateLimits.Health, "HEALTH")
	if val := os.Getenv("RATE_LIMIT_SWEEP_SCHEDULE"); val != "" {
		if strings.EqualFold(val, "off") {
			val = ""
		}
		cfg.RateLimits.SweepSchedule = val
	}

	// Upstream overrides
	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		cfg.Upstream.Provider = val
	}
	if val := os.Getenv("AI_FALLBACK_ENABLED"); val != "" {
		if b, ok := parseBool(val); ok {
			cfg.Upstream.FallbackEnabled = b
		}
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		cfg.Upstream.OpenAI.APIKey = val
	}
	if val := os.Getenv("OPENAI_BASE_URL"); val != "" {
		cfg.Upstream.OpenAI.BaseURL = val
	}
	if val := os.Getenv("OPENAI_MODEL"); val != "" {
		cfg.Upstream.OpenAI.Model = val
	}
	if val := os.Getenv("OPENAI_TIMEOUT_MS"); val != "" {
		if ms, err := strconv.Atoi(val); err == nil && ms > 0 {
			cfg.Upstream.OpenAI.ChatTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	if val := os.Getenv("OLLAMA_ENABLED"); val != "" {
		if b, ok := parseBool(val); ok {
			cfg.Upstream.Ollama.Enabled = b
		}
	}
	if val := os.Getenv("OLLAMA_BASE_URL"); val != "" {
		cfg.Upstream.Ollama.BaseURL = val
	}
	if val := os.Getenv("OLLAMA_MODEL"); val != "" {
		cfg.Upstream.Ollama.Model = val
	}

	// Public overrides
	if val := os.Getenv("API_BASE_URL"); val != "" {
		cfg.Public.APIBaseURL = val
	}
	if val := os.Getenv("ADSENSE_CLIENT"); val != "" {
		cfg.Public.AdsenseClient = val
	}
	if val := os.Getenv("ADSENSE_SLOT_TOP"); val != "" {
		cfg.Public.AdsenseSlotTop = val
	}
	if val := os.Getenv("ADSENSE_SLOT_BOTTOM"); val != "" {
		cfg.Public.AdsenseSlotBottom = val
	}

	// Build overrides
	if val := os.Getenv("CF_PAGES_BRANCH"); val != "" {
		cfg.Build.Branch = val
	}
	if val := os.Getenv("CF_PAGES_COMMIT_SHA"); val != "" {
		cfg.Build.Commit = val
	}

	// Telemetry overrides
	if val := os.Getenv("SAVIOR_LOG_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SAVIOR_LOG_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SAVIOR_METRICS_ENABLED"); val != "" {
		if b, ok := parseBool(val); ok {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SAVIOR_TRACING_ENABLED"); val != "" {
		if b, ok := parseBool(val); ok {
			cfg.Telemetry.Tracing.Enabled = b
		}
	}
	if val := os.Getenv("SAVIOR_TRACING_ENDPOINT"); val != "" {
		cfg.Telemetry.Tracing.Endpoint = val
	}
	if val := os.Getenv("SAVIOR_TRACING_SAMPLE_RATIO"); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			cfg.Telemetry.Tracing.SampleRatio = f
		}
	}
}

// applyRuleOverrides reads <SCOPE>_RATE_LIMIT_MAX and <SCOPE>_RATE_LIMIT_WINDOW_MS.
func applyRuleOverrides(rule *RateLimitRule, scope string) {
	if val := os.Getenv(scope + "_RATE_LIMIT_MAX"); val != "" {
		rule.Max = val
	}
	if val := os.Getenv(scope + "_RATE_LIMIT_WINDOW_MS"); val != "" {
		rule.WindowMS = val
	}
}

// parseBool accepts the strconv forms plus yes/no and on/off.
func parseBool(val string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "yes", "on":
		return true, true
	case "no", "off":
		return false, true
	}
	b, err := strconv.ParseBool(strings.TrimSpace(val))
	if err != nil {
		return false, false
	}
	return b, true
}

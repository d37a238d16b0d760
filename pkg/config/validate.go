package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. All field errors are
// collected and returned together as a ValidationError.
//
// Rate limit values are deliberately not validated: unparseable values fall
// back to scope defaults at request time.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(cfg)...)
	errs = append(errs, validateRateLimits(&cfg.RateLimits)...)
	errs = append(errs, validateUpstream(&cfg.Upstream)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateServer(cfg *Config) []FieldError {
	var errs []FieldError
	s := &cfg.Server

	if s.ListenAddress == "" {
		errs = append(errs, FieldError{Field: "server.listen_address", Message: "must not be empty"})
	}
	if s.ReadTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.read_timeout", Message: "must not be negative"})
	}
	if s.WriteTimeout < 0 {
		errs = append(errs, FieldError{Field: "server.write_timeout", Message: "must not be negative"})
	}
	if s.WriteTimeout > 0 && s.WriteTimeout <= cfg.Upstream.OpenAI.ChatTimeout {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: fmt.Sprintf("must exceed upstream.openai.chat_timeout (%s)", cfg.Upstream.OpenAI.ChatTimeout),
		})
	}
	if s.ShutdownTimeout <= 0 {
		errs = append(errs, FieldError{Field: "server.shutdown_timeout", Message: "must be positive"})
	}
	if s.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{Field: "server.max_header_bytes", Message: "must not be negative"})
	}

	return errs
}

func validateRateLimits(rl *RateLimitsConfig) []FieldError {
	if rl.SweepSchedule == "" {
		return nil
	}
	if _, err := cron.ParseStandard(rl.SweepSchedule); err != nil {
		return []FieldError{{
			Field:   "rate_limits.sweep_schedule",
			Message: fmt.Sprintf("invalid cron expression %q: %v", rl.SweepSchedule, err),
		}}
	}
	return nil
}

func validateUpstream(up *UpstreamConfig) []FieldError {
	var errs []FieldError

	switch up.Provider {
	case ProviderAuto, ProviderOpenAI, ProviderOllama:
	default:
		errs = append(errs, FieldError{
			Field:   "upstream.provider",
			Message: fmt.Sprintf("must be one of auto, openai, ollama (got %q)", up.Provider),
		})
	}

	if err := validateHTTPURL(up.OpenAI.BaseURL); err != "" {
		errs = append(errs, FieldError{Field: "upstream.openai.base_url", Message: err})
	}
	if up.OpenAI.Model == "" {
		errs = append(errs, FieldError{Field: "upstream.openai.model", Message: "must not be empty"})
	}
	if up.OpenAI.Temperature < 0 || up.OpenAI.Temperature > 2 {
		errs = append(errs, FieldError{Field: "upstream.openai.temperature", Message: "must be between 0 and 2"})
	}
	if up.OpenAI.MaxOutputTokens < 0 {
		errs = append(errs, FieldError{Field: "upstream.openai.max_output_tokens", Message: "must be positive"})
	}
	if up.OpenAI.ChatTimeout <= 0 {
		errs = append(errs, FieldError{Field: "upstream.openai.chat_timeout", Message: "must be positive"})
	}
	if up.OpenAI.VerifyTimeout <= 0 {
		errs = append(errs, FieldError{Field: "upstream.openai.verify_timeout", Message: "must be positive"})
	}

	if up.Ollama.Enabled {
		if err := validateHTTPURL(up.Ollama.BaseURL); err != "" {
			errs = append(errs, FieldError{Field: "upstream.ollama.base_url", Message: err})
		}
		if up.Ollama.Model == "" {
			errs = append(errs, FieldError{Field: "upstream.ollama.model", Message: "must not be empty when ollama is enabled"})
		}
		if up.Ollama.Timeout <= 0 {
			errs = append(errs, FieldError{Field: "upstream.ollama.timeout", Message: "must be positive"})
		}
	}

	return errs
}

func validateTelemetry(tel *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch tel.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error (got %q)", tel.Logging.Level),
		})
	}
	switch tel.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be json or text (got %q)", tel.Logging.Format),
		})
	}

	if tel.Metrics.Enabled {
		if !strings.HasPrefix(tel.Metrics.Path, "/") {
			errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must start with /"})
		} else if strings.HasPrefix(tel.Metrics.Path, "/api/") {
			errs = append(errs, FieldError{Field: "telemetry.metrics.path", Message: "must not be under /api/"})
		}
	}

	if tel.Tracing.Enabled && tel.Tracing.Endpoint == "" {
		errs = append(errs, FieldError{Field: "telemetry.tracing.endpoint", Message: "required when tracing is enabled"})
	}
	if tel.Tracing.SampleRatio < 0 || tel.Tracing.SampleRatio > 1 {
		errs = append(errs, FieldError{Field: "telemetry.tracing.sample_ratio", Message: "must be between 0 and 1"})
	}

	return errs
}

// validateHTTPURL returns a message when raw is not an absolute http(s) URL.
func validateHTTPURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "must use http or https scheme"
	}
	if u.Host == "" {
		return "must include a host"
	}
	return ""
}

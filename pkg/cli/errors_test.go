package cli

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigError(t *testing.T) {
	tests := []struct {
		name string
		err  *ConfigError
		want string
	}{
		{
			name: "with path",
			err:  NewConfigError("savior.yaml", errors.New("server.listen_address: must not be empty")),
			want: "config error in savior.yaml: server.listen_address: must not be empty",
		},
		{
			name: "without path",
			err:  NewConfigError("", errors.New("invalid LLM_PROVIDER")),
			want: "config error: invalid LLM_PROVIDER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	underlying := errors.New("bad field")
	err := NewConfigError("savior.yaml", underlying)

	if !errors.Is(err, underlying) {
		t.Error("errors.Is() should find the wrapped error")
	}
}

func TestCommandError(t *testing.T) {
	underlyingErr := errors.New("underlying error")
	err := NewCommandError("run", underlyingErr)

	expected := "command run failed: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, underlyingErr) {
		t.Error("errors.Is() should work with CommandError.Unwrap()")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"plain", errors.New("boom"), ExitFailure},
		{"command", NewCommandError("run", errors.New("boom")), ExitFailure},
		{"config", NewConfigError("x.yaml", errors.New("bad")), ExitConfigFailed},
		{"wrapped config", fmt.Errorf("startup: %w", NewConfigError("", errors.New("bad"))), ExitConfigFailed},
		{"config inside command", NewCommandError("run", NewConfigError("", errors.New("bad"))), ExitConfigFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

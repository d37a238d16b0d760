package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"the-savior/edge/pkg/cli"
	"the-savior/edge/pkg/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Upstream.OpenAI.APIKey = "sk-secret-value-1234"
	return cfg
}

func TestPrintConfig_YAML(t *testing.T) {
	cfg := testConfig()
	buf := &bytes.Buffer{}

	if err := printConfig(buf, cfg, cli.FormatYAML); err != nil {
		t.Fatalf("printConfig() error = %v", err)
	}

	if strings.Contains(buf.String(), "sk-secret-value-1234") {
		t.Errorf("output leaks API key:\n%s", buf.String())
	}

	var got struct {
		Server struct {
			ListenAddress string `yaml:"listen_address"`
		} `yaml:"server"`
		Upstream struct {
			OpenAI struct {
				APIKey string `yaml:"api_key"`
			} `yaml:"openai"`
		} `yaml:"upstream"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if got.Server.ListenAddress != config.DefaultListenAddress {
		t.Errorf("listen_address = %q, want %q", got.Server.ListenAddress, config.DefaultListenAddress)
	}
	if got.Upstream.OpenAI.APIKey != "sk-s***" {
		t.Errorf("api_key = %q, want %q", got.Upstream.OpenAI.APIKey, "sk-s***")
	}

	if cfg.Upstream.OpenAI.APIKey != "sk-secret-value-1234" {
		t.Error("printConfig() modified the caller's config")
	}
}

func TestPrintConfig_JSON(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := printConfig(buf, testConfig(), cli.FormatJSON); err != nil {
		t.Fatalf("printConfig() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	server, ok := got["server"].(map[string]any)
	if !ok {
		t.Fatalf("server = %T, want object", got["server"])
	}
	if server["listen_address"] != config.DefaultListenAddress {
		t.Errorf("listen_address = %v, want %q", server["listen_address"], config.DefaultListenAddress)
	}
	if strings.Contains(buf.String(), "sk-secret-value-1234") {
		t.Errorf("output leaks API key:\n%s", buf.String())
	}
}

func TestPrintConfig_EmptyKeyStaysEmpty(t *testing.T) {
	buf := &bytes.Buffer{}

	if err := printConfig(buf, config.Default(), cli.FormatYAML); err != nil {
		t.Fatalf("printConfig() error = %v", err)
	}
	if strings.Contains(buf.String(), "***") {
		t.Errorf("empty key was masked:\n%s", buf.String())
	}
}

func TestPrintConfig_UnknownFormat(t *testing.T) {
	if err := printConfig(&bytes.Buffer{}, config.Default(), "xml"); err == nil {
		t.Error("printConfig() error = nil, want unsupported format")
	}
}

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"the-savior/edge/pkg/cli"
	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/telemetry/logging"
)

var configFlags struct {
	output string
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration the server would run with: defaults, the optional
config file, and environment overrides, after validation. The OpenAI API key
is masked.

Examples:
  savior config
  savior config --config /etc/savior/edge.yaml --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return printConfig(cmd.OutOrStdout(), cfg, cli.OutputFormat(configFlags.output))
	},
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().StringVarP(&configFlags.output, "output", "o", string(cli.FormatYAML), "output format (yaml, json)")
}

// printConfig writes cfg with secrets masked. JSON output reuses the YAML
// field names.
func printConfig(w io.Writer, cfg *config.Config, format cli.OutputFormat) error {
	formatter, err := cli.NewFormatter(format)
	if err != nil {
		return err
	}

	masked := *cfg
	if masked.Upstream.OpenAI.APIKey != "" {
		masked.Upstream.OpenAI.APIKey = logging.RedactAPIKey(masked.Upstream.OpenAI.APIKey)
	}

	if format != cli.FormatJSON {
		return formatter.FormatTo(w, &masked)
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return formatter.FormatTo(w, tree)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "savior",
	Short: "Savior edge - coaching chat gateway",
	Long: `Savior edge is the HTTP gateway behind the savior mental-wellness front-end.

It provides:
  - Coaching, check-in, and journal replies from OpenAI or Ollama
  - Local crisis escalation and template fallbacks
  - OpenAI key verification for user-supplied keys
  - Per-client rate limiting and CORS enforcement

Configuration comes from an optional YAML file overlaid by environment
variables such as OPENAI_API_KEY, LLM_PROVIDER, and ALLOWED_ORIGINS.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and prints any error to stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (optional)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// Savior edge serves the coaching chat, key verification, public config,
// and health endpoints for the savior front-end.
//
// It proxies chat requests to OpenAI or a local Ollama instance, and
// answers with built-in coaching templates when neither is reachable.
// Crisis messages are answered locally without calling a provider.
//
// Usage:
//
//	# Start with environment configuration only
//	savior run
//
//	# Start with a configuration file and reload it on change
//	savior run --config /etc/savior/edge.yaml --watch
//
//	# Print the effective configuration with secrets masked
//	savior config --config /etc/savior/edge.yaml
//
//	# Show version information
//	savior version
package main

import (
	"os"

	"the-savior/edge/pkg/cli"
)

func main() {
	os.Exit(cli.ExitCode(Execute()))
}

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"the-savior/edge/pkg/cli"
	"the-savior/edge/pkg/config"
	"the-savior/edge/pkg/limits/ratelimit"
	"the-savior/edge/pkg/limits/storage"
	"the-savior/edge/pkg/providers"
	"the-savior/edge/pkg/providers/ollama"
	"the-savior/edge/pkg/providers/openai"
	"the-savior/edge/pkg/proxy/handlers"
	"the-savior/edge/pkg/server"
	"the-savior/edge/pkg/telemetry/logging"
	"the-savior/edge/pkg/telemetry/metrics"
	"the-savior/edge/pkg/telemetry/tracing"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	watch         bool
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the edge server",
	Long: `Start the edge server with the specified configuration.

The server listens on the configured address and serves /api/chat,
/api/key-check, /api/config, and /api/health.

Examples:
  # Start with environment configuration only
  savior run

  # Start with a config file and reload it when it changes
  savior run --config /etc/savior/edge.yaml --watch

  # Override listen address
  savior run --listen 0.0.0.0:8788

  # Validate config without starting server
  savior run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVarP(&runFlags.watch, "watch", "w", false, "reload the config file when it changes")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	} else if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}
	if runFlags.watch && cfgFile == "" {
		return cli.NewConfigError("", errors.New("--watch requires --config"))
	}

	logger, err := logging.New(logging.Config{
		Level:     cfg.Telemetry.Logging.Level,
		Format:    cfg.Telemetry.Logging.Format,
		AddSource: cfg.Telemetry.Logging.AddSource,
		Redact:    cfg.Telemetry.Logging.Redact,
		Writer:    os.Stdout,
	})
	if err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	slog.SetDefault(logger)

	if runFlags.dryRun {
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration valid")
		return nil
	}

	ctx, stop := cli.SetupSignalHandler(cmd.Context())
	defer stop()

	tracer, err := tracing.New(ctx, &cfg.Telemetry.Tracing, Version)
	if err != nil {
		return cli.NewCommandError("run", err)
	}
	defer func() {
		if err := tracer.Shutdown(context.Background()); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	holder := config.NewHolder(cfg)
	deps := newDependencies(holder)

	sweeper := ratelimit.NewSweeper(deps.Limiter, cfg.RateLimits.SweepSchedule, logger)
	if err := sweeper.Start(ctx); err != nil {
		return cli.NewConfigError(cfgFile, err)
	}
	defer sweeper.Stop()

	if cfgFile != "" {
		watcher, err := startWatcher(ctx, holder, logger)
		if err != nil {
			return cli.NewCommandError("run", err)
		}
		go handleReloadSignals(ctx, watcher)
	}

	logStartup(logger, cfg)

	srv := server.NewServer(deps)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// loadConfig loads cfgFile, or the environment alone when no file is given.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError(cfgFile, err)
	}
	return cfg, nil
}

// newDependencies builds the shared handler dependencies. Provider
// transports are shared; clients are rebuilt per request from the holder.
func newDependencies(holder *config.Holder) *handlers.Dependencies {
	cfg := holder.Get()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		metricsCfg := cfg.Telemetry.Metrics
		collector = metrics.NewCollector(&metricsCfg, prometheus.NewRegistry())
	}

	return &handlers.Dependencies{
		Config:  holder,
		Limiter: ratelimit.NewLimiter(storage.NewMemoryStore(), ratelimit.WithMetrics(collector)),
		Metrics: collector,
		OpenAI:  providers.NewHTTPProvider(openai.ProviderName, providers.WithMetrics(collector)),
		Ollama:  providers.NewHTTPProvider(ollama.ProviderName, providers.WithMetrics(collector)),
	}
}

// startWatcher prepares reloads of cfgFile. File events are only watched
// with --watch; SIGHUP always reloads.
func startWatcher(ctx context.Context, holder *config.Holder, logger *slog.Logger) (*config.Watcher, error) {
	watcher, err := config.NewWatcher(cfgFile, holder, logger)
	if err != nil {
		return nil, err
	}
	watcher.OnReload = func(cfg *config.Config) {
		logger.Debug("active configuration updated",
			"provider", cfg.Upstream.Provider,
			"fallback_enabled", cfg.Upstream.FallbackEnabled,
			"server_key_configured", cfg.HasServerAPIKey(),
		)
	}

	if runFlags.watch {
		go func() {
			if err := watcher.Watch(ctx); err != nil {
				logger.Error("config watcher exited", "error", err)
			}
		}()
	}
	return watcher, nil
}

func handleReloadSignals(ctx context.Context, watcher *config.Watcher) {
	reload, stop := cli.NotifyReload()
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reload:
			slog.Info("received SIGHUP, reloading configuration")
			watcher.Reload()
		}
	}
}

func logStartup(logger *slog.Logger, cfg *config.Config) {
	logger.Info("starting savior edge",
		"version", Version,
		"config_file", cfgFile,
		"listen_address", cfg.Server.ListenAddress,
		"provider", cfg.Upstream.Provider,
		"server_key_configured", cfg.HasServerAPIKey(),
		"ollama_enabled", cfg.Upstream.Ollama.Enabled,
		"fallback_enabled", cfg.Upstream.FallbackEnabled,
		"metrics_enabled", cfg.Telemetry.Metrics.Enabled,
		"tracing_enabled", cfg.Telemetry.Tracing.Enabled,
	)
	if cfg.Security.DebugErrors {
		logger.Warn("debug_errors is enabled, upstream error details are exposed to clients")
	}
}

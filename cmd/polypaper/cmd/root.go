package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alejandrodnm/polypaper/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "polypaper",
	Short: "A paper trading bot for Polymarket prediction markets",
	Long: `Polypaper scans the Polymarket Gamma API for near-certain markets close to
resolution, simulates buying the dominant side against a virtual balance, and
records every cycle in a durable JSON ledger.

It provides commands for:
  - Running the scan loop on an interval (or a single cycle)
  - Reconciling pending trades against real market resolutions
  - Printing a wallet and settlement digest from the ledger
  - Serving a read-only HTTP dashboard over the ledger`,
	SilenceUsage: true,
}

var (
	cfgPath   string
	logLevel  string
	logFormat string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "config/config.yaml", "path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
}

// loadConfig loads the YAML config, applies CLI overrides and installs the
// global logger. Every subcommand calls this first.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", cfgPath, err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}
	setupLogger(cfg.Log)

	return cfg, nil
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

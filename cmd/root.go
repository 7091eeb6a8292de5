/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/internal/config"
	"github.com/jfmyers9/crates/pkg/discogs"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	configPath   string
	logLevel     string
	logFile      string
	outputFormat string

	cfg    *config.Config
	logger zerolog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crates",
	Short: "Browse the Discogs database from the terminal",
	Long: `crates is a command line client for the Discogs database.

It looks up artists, labels, releases and masters by id, runs database
searches, and keeps a local crate of releases you want to hold on to.

Most lookups work anonymously. Search requires credentials; run
'crates auth' to store a personal access token or a consumer key and
secret in ~/.config/crates/config.yaml.`,
	Version:           fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.config/crates/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "", "Output format template (overrides config)")
}

// loadConfig runs before every command
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if outputFormat != "" {
		cfg.OutputFormat = outputFormat
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = setupLogger(logFile, cfg.LogLevel)
	logger.Debug().
		Str("version", version).
		Str("base_url", cfg.BaseURL).
		Bool("authenticated", cfg.HasCredentials()).
		Msg("Loaded configuration")

	return nil
}

// newCatalog builds the Discogs client for a command
func newCatalog() (*catalog.Client, error) {
	return catalog.New(cfg, logger, catalog.WithConcurrency(fetchConcurrency(cfg.RateLimit)))
}

// fetchConcurrency keeps parallel fetches well under the per-minute limit
func fetchConcurrency(rateLimit int) int {
	n := rateLimit / 60
	if n < 1 {
		return 1
	}
	if n > catalog.DefaultConcurrency {
		return catalog.DefaultConcurrency
	}
	return n
}

// explain turns API errors into messages a user can act on
func explain(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case discogs.IsNotFound(err):
		return fmt.Errorf("not found on Discogs: %w", err)
	case discogs.IsUnauthorized(err):
		return fmt.Errorf("request rejected by Discogs, check your credentials with 'crates auth': %w", err)
	case errors.Is(err, discogs.ErrTransportSend):
		return fmt.Errorf("could not reach Discogs: %w", err)
	}
	return err
}

// setupLogger creates a logger with the specified configuration
func setupLogger(logFile, logLevel string) zerolog.Logger {
	// Parse log level
	level := zerolog.InfoLevel
	switch logLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Set up output
	var output *os.File
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			output = os.Stderr
		} else {
			output = f
		}
	} else {
		output = os.Stderr
	}

	logger := zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	// Use pretty console output if logging to stderr
	if output == os.Stderr {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	return logger
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"opencode-desktop/internal/app"
	"opencode-desktop/internal/config"
	"opencode-desktop/internal/logs"
)

var (
	logLevel  string
	logToFile bool
	logDir    string

	version = "v0.1.0" // This will be injected by -ldflags during build
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "opencode-desktop",
		Short:   "OpenCode Desktop - shell that supervises the local opencode server",
		Version: version,
		RunE:    runShell,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logToFile, "log-to-file", true, "Enable logging to file in standard OS location")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Custom log directory path (overrides standard OS location)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runShell(_ *cobra.Command, _ []string) error {
	// Developer convenience: overrides live in a .env next to the
	// checkout. Missing file is the normal case.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cfg.Logging = logs.DefaultLogConfig()
	cfg.Logging.Level = logLevel
	cfg.Logging.EnableFile = logToFile
	cfg.Logging.LogDir = logDir

	logger, err := logs.SetupLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to setup logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting opencode-desktop",
		zap.String("version", version),
		zap.String("log_level", logLevel),
		zap.String("state_dir", cfg.StateDir))

	return app.New(cfg, logger).Run(context.Background())
}

package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/dblibsync/internal/config"
	"github.com/JonMunkholm/dblibsync/internal/logging"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "dblibsync",
	Short: "dblibsync syncs a parts spreadsheet into an Altium database library",
	Long: `Reads every tab of the configured spreadsheet as a component category,
rebuilds one table per category in the library database and writes the
DbLib file that points Altium Designer at those tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file (default: .env if present)")
}

// loadConfig loads the .env file, then the configuration, and sets up logging.
func loadConfig() (*config.Config, error) {
	if envFile != "" {
		// Overload so the file wins over stale shell variables
		if err := godotenv.Overload(envFile); err != nil {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Overload(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}

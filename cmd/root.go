package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/config"
)

var (
	flagDataDir string
	flagJSON    bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "aurum",
	Short: "Personal finance store and cash forecast",
	Long:  "Bootstrap the aurum finance store and project the liquid cash balance 30 days ahead.",
	RunE:  runForecast,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env in the working directory may carry AURUM_* overrides;
	// absence is not an error.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Data directory for the store file (default: $XDG_DATA_HOME/aurum)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Emit machine-readable JSON")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// loadConfig reads the config file and applies the --data-dir override.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	return cfg, nil
}

// ensureStorePath resolves the store file location and creates its parent
// directory. Directory creation is the shell's job; the store itself
// expects the directory to exist.
func ensureStorePath(cfg config.Config) (string, error) {
	dir := config.GetDataDir(cfg)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return config.StorePath(cfg), nil
}

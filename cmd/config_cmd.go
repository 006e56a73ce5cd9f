// Package cmd implements the aurum CLI commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.GetDataDir(cfg))
	fmt.Printf("    Store file:     %s\n", config.StorePath(cfg))
	fmt.Println()

	fmt.Println("  [Logging]")
	fmt.Printf("    Level:  %s\n", config.GetLogLevel(cfg))
	fmt.Printf("    Format: %s\n", config.GetLogFormat(cfg))
	fmt.Println()

	fmt.Println("  [Serve]")
	fmt.Printf("    Address:       %s\n", config.GetServeAddr(cfg))
	fmt.Printf("    Poll interval: %ds\n", cfg.Serve.PollIntervalSecs)
	fmt.Printf("    Events buffer: %d\n", cfg.Serve.EventsBuffer)
	fmt.Println()

	fmt.Println("  Run `aurum setup` to reconfigure.")
	return nil
}

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/config"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// Load existing config or defaults so re-running preserves answers.
	cfg, _ := config.Load()

	dataDir := cfg.General.DataDir
	addr := cfg.Serve.Addr
	level := cfg.Logging.Level
	format := cfg.Logging.Format

	fmt.Println()
	fmt.Println("  Welcome to aurum!")
	fmt.Println()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Data directory").
				Description("Where the store file lives. Leave empty for the platform default.").
				Placeholder(config.GetDataDir(config.Config{})).
				Value(&dataDir),
			huh.NewInput().
				Title("Daemon listen address").
				Description("Used by `aurum serve`.").
				Value(&addr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&level),
			huh.NewSelect[string]().
				Title("Log format").
				Description("console for humans, json for log collectors.").
				Options(huh.NewOptions("console", "json")...).
				Value(&format),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup canceled, nothing saved.")
			return nil
		}
		return err
	}

	cfg.General.DataDir = strings.TrimSpace(dataDir)
	cfg.Serve.Addr = strings.TrimSpace(addr)
	cfg.Logging.Level = level
	cfg.Logging.Format = format

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Run `aurum setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}

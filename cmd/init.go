package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/store"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or verify the store schema and seed account",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := ensureStorePath(cfg)
	if err != nil {
		return err
	}

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.EnsureReady(); err != nil {
		return err
	}

	if flagQuiet {
		return nil
	}

	tables, err := s.TableNames()
	if err != nil {
		return err
	}
	count, err := s.AccountCount()
	if err != nil {
		return err
	}

	fmt.Printf("  Store ready: %s\n", path)
	fmt.Printf("  Tables: %s\n", strings.Join(tables, ", "))
	fmt.Printf("  Accounts: %d\n", count)
	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/cli"
	"github.com/aurumfin/aurum/internal/store"
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List stored accounts and the liquid balance",
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(_ *cobra.Command, _ []string) error {
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

	accounts, err := s.Accounts()
	if err != nil {
		return err
	}
	liquid, err := s.LiquidBalance()
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(accounts)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ACCOUNTS"))
	fmt.Println()

	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{
			a.Name,
			a.Type,
			cli.FormatAmount(a.Balance),
			cli.FormatFlag(a.IsLiquid),
			a.GrowthRateAPR.String(),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Type", "Balance", "Liquid", "APR"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Printf("  Accounts: %s\n", cli.FormatCount(int64(len(accounts))))
	fmt.Printf("  Liquid balance: %s\n", cli.FormatAmount(liquid))
	fmt.Println()

	return nil
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/aurumfin/aurum/internal/cli"
	"github.com/aurumfin/aurum/internal/forecast"
	"github.com/aurumfin/aurum/internal/store"
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Project the liquid cash balance 30 days ahead",
	RunE:  runForecast,
}

func init() {
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path, err := ensureStorePath(cfg)
	if err != nil {
		return err
	}

	// Bootstrap before reading so a fresh install forecasts the seed
	// account instead of failing.
	if err := store.EnsureReady(path); err != nil {
		return err
	}

	points, err := forecast.Forecast(path)
	if err != nil {
		return err
	}

	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(points)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FORECAST  %d days", forecast.HorizonDays)))
	fmt.Println()

	rows := make([][]string, 0, len(points))
	balances := make([]float64, 0, len(points))
	for _, p := range points {
		day := ""
		if d, err := time.Parse("2006-01-02", p.Date); err == nil {
			day = cli.FormatDayOfWeek(d.Weekday())
		}
		rows = append(rows, []string{p.Date, day, cli.FormatAmount(p.Balance)})
		balances = append(balances, p.Balance.InexactFloat64())
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Balance"},
		Rows:    rows,
	}))

	first := points[0].Balance
	last := points[len(points)-1].Balance
	fmt.Println()
	fmt.Printf("  Trend  %s\n", cli.RenderSparkline(balances))
	fmt.Printf("  Start %s, day %d %s (%s over the horizon)\n",
		cli.FormatAmount(first),
		forecast.HorizonDays-1,
		cli.FormatAmount(last),
		cli.FormatAmount(last.Sub(first)),
	)
	fmt.Println()

	return nil
}

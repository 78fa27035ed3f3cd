package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"srvburn/internal/cli"
	"srvburn/internal/engine"
)

var flagMonths int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Month-by-month spend forecast",
	Long: "Project spend per month assuming no renewals. Each month counts the full monthly " +
		"price of every server still active on the first of that month; this is deliberately " +
		"coarser than the day-prorated summary figures.",
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVarP(&flagMonths, "months", "m", 0, "Months to forecast (defaults to configured value)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, _, err := loadServers(cfg)
	if err != nil {
		return err
	}

	months := flagMonths
	if months == 0 {
		months = cfg.General.MonthsAhead
	}

	points := engine.ForecastMonthly(result.Servers, months, time.Now())
	money := moneyConfig(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPEND FORECAST  next %d months", len(points))))
	fmt.Println()

	peak := 0.0
	for _, p := range points {
		if p.Cost > peak {
			peak = p.Cost
		}
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			cli.MonthLabel(p.Month),
			cli.FormatMoney(p.Cost, money),
			cli.RenderHorizontalBar(p.Cost, peak, 30),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Month", "Spend", ""},
		Rows:    rows,
	}))
	fmt.Println()

	return nil
}

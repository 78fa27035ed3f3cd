package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"srvburn/internal/cli"
	"srvburn/internal/engine"
	"srvburn/internal/model"
	"srvburn/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Spend summary: daily burn and horizon projection",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, _, err := loadServers(cfg)
	if err != nil {
		return err
	}

	report := engine.Compute(result.Servers, engine.Options{
		Now:         time.Now(),
		HorizonDays: cfg.General.HorizonDays,
		Mode:        selectedMode(),
	})
	money := moneyConfig(cfg)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SERVER SPEND  %s mode  ·  %dd horizon", report.Mode, report.HorizonDays)))
	fmt.Println()

	rows := [][]string{
		{"Daily burn", cli.FormatMoneyPerDay(report.TotalDailyCost, money)},
		{fmt.Sprintf("Spend next %dd", report.HorizonDays), cli.FormatMoney(report.TotalInHorizon, money)},
		{"---"},
		{"Active servers", fmt.Sprintf("%d", report.ActiveServers)},
		{"Billed servers", fmt.Sprintf("%d", report.TotalServers)},
	}
	if report.Mode == model.ModeFlat {
		rows = append(rows, []string{"Yearly total (flat)", cli.FormatMoney(report.YearlyTotal, money)})
	}
	if cfg.Budget.Monthly > 0 {
		monthly := report.TotalDailyCost * engine.AvgDaysPerMonth
		rows = append(rows, []string{"---"})
		rows = append(rows, []string{
			"Monthly vs budget",
			fmt.Sprintf("%s / %s (%.0f%%)",
				cli.FormatMoney(monthly, money),
				cli.FormatMoney(cfg.Budget.Monthly, money),
				monthly/cfg.Budget.Monthly*100),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	printWarnings(report.Warnings)

	// History is best-effort; the summary is still valid when the snapshot
	// cannot be written.
	if err := saveSnapshot(report); err != nil && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("history not updated: %v", err)))
	}

	return nil
}

func saveSnapshot(report model.Report) error {
	hist, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	return hist.SaveSnapshot(model.Snapshot{
		At:             report.GeneratedAt,
		TotalDailyCost: report.TotalDailyCost,
		TotalInHorizon: report.TotalInHorizon,
		ActiveServers:  report.ActiveServers,
		HorizonDays:    report.HorizonDays,
		Mode:           report.Mode,
	})
}

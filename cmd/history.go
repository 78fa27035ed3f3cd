package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"srvburn/internal/cli"
	"srvburn/internal/store"
)

var flagHistoryLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recent spend snapshots",
	Long:  "Show snapshots recorded by `summary` runs and the daemon, most recent first, with a burn-rate trend line.",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Snapshots to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	money := moneyConfig(cfg)

	hist, err := store.Open(store.DefaultPath())
	if err != nil {
		return err
	}
	defer func() { _ = hist.Close() }()

	snaps, err := hist.ListSnapshots(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("\n  No history yet. Run `srvburn summary` to record a snapshot.")
		return nil
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SPEND HISTORY  last %d snapshots", len(snaps))))
	fmt.Println()

	rows := make([][]string, 0, len(snaps))
	for i, s := range snaps {
		delta := ""
		if i+1 < len(snaps) {
			delta = cli.FormatDelta(s.TotalDailyCost, snaps[i+1].TotalDailyCost, money)
		}
		rows = append(rows, []string{
			s.At.Local().Format("2006-01-02 15:04"),
			cli.FormatMoneyPerDay(s.TotalDailyCost, money),
			delta,
			fmt.Sprintf("%d", s.ActiveServers),
			string(s.Mode),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"When", "Daily burn", "Δ", "Active", "Mode"},
		Rows:    rows,
	}))

	// Oldest to newest for the trend line.
	values := make([]float64, 0, len(snaps))
	for i := len(snaps) - 1; i >= 0; i-- {
		values = append(values, snaps[i].TotalDailyCost)
	}
	fmt.Println()
	fmt.Println(cli.StatusLine("trend", cli.Sparkline(values)))
	fmt.Println()

	return nil
}

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"srvburn/internal/cli"
	"srvburn/internal/engine"
)

var serversCmd = &cobra.Command{
	Use:   "servers",
	Short: "Per-server costs and expiry status",
	RunE:  runServers,
}

func init() {
	rootCmd.AddCommand(serversCmd)
}

func runServers(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	result, _, err := loadServers(cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	horizon := cfg.General.HorizonDays
	money := moneyConfig(cfg)

	servers := result.Servers
	// Soonest-expiring first; invalid dates sink to the bottom.
	sort.SliceStable(servers, func(i, j int) bool {
		if servers[i].ExpiryValid != servers[j].ExpiryValid {
			return servers[i].ExpiryValid
		}
		return servers[i].Expiry.Before(servers[j].Expiry)
	})

	rows := make([][]string, 0, len(servers))
	var totalDaily float64
	for _, s := range servers {
		if s.MonthlyCost <= 0 {
			continue
		}
		daily, inHorizon, active := engine.ServerBurn(s, now, horizon)
		totalDaily += daily

		expiryCell := cli.BadCell("invalid: " + s.RawExpiry)
		statusCell := cli.BadCell("?")
		if s.ExpiryValid {
			expiryCell = s.Expiry.Format("2006-01-02")
			if active {
				statusCell = cli.FormatDaysLeft(s.DaysLeft(now))
			} else {
				statusCell = "expired"
			}
		}

		rows = append(rows, []string{
			s.Label(),
			cli.FormatMoney(s.MonthlyCost, money),
			expiryCell,
			statusCell,
			cli.FormatMoney(daily, money),
			cli.FormatMoney(inHorizon, money),
		})
	}

	if len(rows) == 0 {
		fmt.Println("\n  No billed servers in the data source.")
		return nil
	}

	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"TOTAL", "", "", "", cli.FormatMoney(totalDaily, money), ""})

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("SERVERS  %d records", len(servers))))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Server", "Monthly", "Expires", "Left", "Daily", fmt.Sprintf("Next %dd", engine.ClampHorizon(horizon))},
		Rows:    rows,
	}))

	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"srvburn/internal/config"
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
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Horizon days: %d\n", cfg.General.HorizonDays)
	fmt.Printf("    Months ahead: %d\n", cfg.General.MonthsAhead)
	fmt.Printf("    Servers file: %s\n", cfg.General.ServersFile)
	if cfg.General.ServersURL != "" {
		fmt.Printf("    Servers URL:  %s\n", cfg.General.ServersURL)
	}
	fmt.Println()

	fmt.Println("  [Display]")
	fmt.Printf("    Currency symbol: %s\n", cfg.Display.CurrencySymbol)
	fmt.Printf("    Locale:          %s\n", cfg.Display.Locale)
	fmt.Printf("    Fraction digits: %d-%d\n", cfg.Display.MinFractionDigits, cfg.Display.MaxFractionDigits)
	fmt.Println()

	fmt.Println("  [Budget]")
	if cfg.Budget.Monthly > 0 {
		fmt.Printf("    Monthly budget: %s%.2f\n", cfg.Display.CurrencySymbol, cfg.Budget.Monthly)
	} else {
		fmt.Println("    Monthly budget: not set")
	}
	fmt.Println()

	fmt.Println("  Run `srvburn setup` to reconfigure.")
	return nil
}

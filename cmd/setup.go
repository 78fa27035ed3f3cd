package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"srvburn/internal/config"
	"srvburn/internal/source"
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
	cfg, _ := config.Load()

	serversFile := cfg.General.ServersFile
	serversURL := cfg.General.ServersURL
	symbol := cfg.Display.CurrencySymbol
	locale := cfg.Display.Locale
	horizon := strconv.Itoa(cfg.General.HorizonDays)
	budget := ""
	if cfg.Budget.Monthly > 0 {
		budget = strconv.FormatFloat(cfg.Budget.Monthly, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Server list file").
				Description("JSON array of {id, name, monthlyCost, expire}").
				Value(&serversFile),
			huh.NewInput().
				Title("Server list URL").
				Description("Optional; takes precedence over the file when set").
				Value(&serversURL),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Currency symbol").
				Options(huh.NewOptions("$", "€", "£", "¥")...).
				Value(&symbol),
			huh.NewSelect[string]().
				Title("Number locale").
				Options(huh.NewOptions("en", "de", "fr", "es", "pt", "ja")...).
				Value(&locale),
			huh.NewInput().
				Title("Projection horizon (days)").
				Validate(validatePositiveInt).
				Value(&horizon),
			huh.NewInput().
				Title("Monthly budget").
				Description("Leave empty to disable budget tracking").
				Value(&budget),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.ServersFile = serversFile
	cfg.General.ServersURL = serversURL
	cfg.Display.CurrencySymbol = symbol
	cfg.Display.Locale = locale
	if n, err := strconv.Atoi(horizon); err == nil {
		cfg.General.HorizonDays = n
	}
	cfg.Budget.Monthly = 0
	if budget != "" {
		if v, err := strconv.ParseFloat(budget, 64); err == nil && v > 0 {
			cfg.Budget.Monthly = v
		}
	}

	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Printf("\n  Saved %s\n", config.Path())

	// A quick sanity read so a bad path surfaces now, not on first use.
	if cfg.General.ServersURL == "" {
		if result, err := source.LoadFile(config.ExpandPath(cfg.General.ServersFile)); err != nil {
			fmt.Printf("  Note: server list not readable yet (%v)\n", err)
		} else {
			fmt.Printf("  Found %d server record(s).\n", len(result.Servers))
		}
	}

	return nil
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fmt.Errorf("enter a positive whole number")
	}
	return nil
}

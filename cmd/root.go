// Package cmd implements the srvburn CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"srvburn/internal/cli"
	"srvburn/internal/config"
	"srvburn/internal/model"
	"srvburn/internal/source"
)

var (
	flagFile    string
	flagURL     string
	flagHorizon int
	flagFlat    bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "srvburn",
	Short: "Hosting spend tracker",
	Long:  "Track recurring hosting spend: daily burn, horizon projections, and monthly forecasts from a server list.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFile, "file", "f", "", "Server list JSON file (defaults to configured path)")
	rootCmd.PersistentFlags().StringVarP(&flagURL, "url", "u", "", "Server list URL (overrides --file)")
	rootCmd.PersistentFlags().IntVarP(&flagHorizon, "horizon", "n", 0, "Projection horizon in days (defaults to configured value)")
	rootCmd.PersistentFlags().BoolVar(&flagFlat, "flat", false, "Use the legacy flat accounting mode (monthly x 12, expiry ignored)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress diagnostic output")
}

// loadConfig merges the config file with command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagFile != "" {
		cfg.General.ServersFile = flagFile
		cfg.General.ServersURL = ""
	}
	if flagURL != "" {
		cfg.General.ServersURL = flagURL
	}
	if flagHorizon != 0 {
		cfg.General.HorizonDays = flagHorizon
	}
	return cfg, nil
}

// loadServers is the shared data loading path used by all commands.
// A structurally invalid document (not a list) returns an empty result and
// notList=true: callers render a zeroed report instead of failing.
func loadServers(cfg config.Config) (result *source.LoadResult, notList bool, err error) {
	if cfg.General.ServersURL != "" {
		result, err = source.FetchURL(context.Background(), cfg.General.ServersURL)
	} else {
		result, err = source.LoadFile(config.ExpandPath(cfg.General.ServersFile))
	}
	if errors.Is(err, source.ErrNotList) {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, cli.RenderWarning("data source is not a server list; showing empty totals"))
		}
		return &source.LoadResult{}, true, nil
	}
	if err != nil {
		return nil, false, err
	}

	if result.Malformed > 0 && !flagQuiet {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(
			fmt.Sprintf("%d malformed record(s) skipped", result.Malformed)))
	}
	return result, false, nil
}

func selectedMode() model.Mode {
	if flagFlat {
		return model.ModeFlat
	}
	return model.ModeProrated
}

func moneyConfig(cfg config.Config) cli.MoneyConfig {
	return cli.MoneyConfig{
		Symbol:            cfg.Display.CurrencySymbol,
		Locale:            cfg.Display.Locale,
		MinFractionDigits: cfg.Display.MinFractionDigits,
		MaxFractionDigits: cfg.Display.MaxFractionDigits,
	}
}

// printWarnings reports per-record diagnostics on stderr.
func printWarnings(warnings []string) {
	if flagQuiet {
		return
	}
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(w))
	}
}

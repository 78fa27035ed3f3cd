package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"srvburn/internal/config"
	"srvburn/internal/daemon"
	"srvburn/internal/store"
)

var (
	flagDaemonAddr     string
	flagDaemonInterval time.Duration
	flagDaemonNoStore  bool
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Watch the server list and serve spend reports over HTTP",
	Long: "Poll the data source on an interval, expose /healthz, /v1/status and /v1/report " +
		"on a local listener, and record a history snapshot whenever the totals move.",
	RunE: runDaemon,
}

func init() {
	daemonCmd.Flags().StringVar(&flagDaemonAddr, "addr", "127.0.0.1:8766", "Listen address")
	daemonCmd.Flags().DurationVar(&flagDaemonInterval, "interval", time.Minute, "Poll interval")
	daemonCmd.Flags().BoolVar(&flagDaemonNoStore, "no-store", false, "Skip history snapshots")
	rootCmd.AddCommand(daemonCmd)
}

func runDaemon(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	storePath := store.DefaultPath()
	if flagDaemonNoStore {
		storePath = ""
	}

	svc := daemon.New(daemon.Config{
		ServersFile: config.ExpandPath(cfg.General.ServersFile),
		ServersURL:  cfg.General.ServersURL,
		HorizonDays: cfg.General.HorizonDays,
		Mode:        selectedMode(),
		Interval:    flagDaemonInterval,
		Addr:        flagDaemonAddr,
		StorePath:   storePath,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !flagQuiet {
		fmt.Printf("  srvburn daemon listening on %s (poll every %s)\n", flagDaemonAddr, flagDaemonInterval)
	}
	return svc.Run(ctx)
}

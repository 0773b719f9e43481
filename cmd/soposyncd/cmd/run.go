package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"soposyncd/internal/scheduler"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run incremental syncs on a fixed interval",
	Long: `Start a long-running loop that performs an incremental sync immediately
and then on every configured interval, until SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		sched := scheduler.NewScheduler(a.engine, a.cfg.Sync.Interval, a.logger)

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		go func() {
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			sig := <-sigCh
			a.logger.Info("received shutdown signal", "signal", sig)
			cancel()
		}()

		a.logger.Info("starting sync daemon",
			"workflows", len(a.cfg.Workflows),
			"interval", a.cfg.Sync.Interval,
		)

		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

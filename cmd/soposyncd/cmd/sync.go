package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize potentially new entries",
	Long: `Run one incremental pass: fetch entries created after each workflow's
watermark, push the ones not yet in the ledger to every target, and record
them. Requires a completed "init" for every workflow.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		_, err = a.engine.Sync(cmd.Context())
		return err
	},
}

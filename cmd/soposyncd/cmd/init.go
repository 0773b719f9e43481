package cmd

import (
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initial sync without posting anything",
	Long: `Seed the ledger for every configured workflow: all entries within the
look-back window are recorded as processed without being pushed to any
target, so a following "sync" never mass-replays history. Safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()

		return a.engine.InitialSync(cmd.Context())
	},
}

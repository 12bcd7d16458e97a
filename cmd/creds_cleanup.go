package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Prunes expired rotation backups",
	Long: `Removes rotation backups older than 30 days. Every creds command prunes
on exit; this just runs the prune on its own.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting cleanup command")

		spinner, cleanup := startSpinner("Cleaning up vault...", verbose)
		defer cleanup()

		_, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		// Pruning happens on vault teardown; nothing else to do here.
		closeVault()

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault cleaned up"
		return nil
	},
}

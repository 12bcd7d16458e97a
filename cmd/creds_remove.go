package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
)

var removeCmd = &cobra.Command{
	Use:   "remove <service>",
	Short: "Removes the stored credentials for a service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID := args[0]
		Logger.Infof("Starting remove command for %s", serviceID)

		spinner, cleanup := startSpinner("Removing credentials...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		if err := v.RemoveCredentials(serviceID); err != nil {
			return Logger.ErrorfAndReturn("Failed to remove credentials: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Removed credentials for " + ui.Highlight.Sprint(serviceID)
		return nil
	},
}

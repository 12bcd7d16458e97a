package cmd

import (
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
)

var rotateCmd = &cobra.Command{
	Use:   "rotate <service> <field=value>...",
	Short: "Replaces a service's credentials, keeping a timestamped backup",
	Long: `Stores new credentials for a service while snapshotting the current ones
under a backup id. Backups are pruned automatically after 30 days.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID := args[0]
		Logger.Infof("Starting rotate command for %s", serviceID)

		record, err := parseFieldArgs(args[1:])
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Rotating credentials...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		backupID, err := v.RotateCredentials(serviceID, record)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Could not rotate credentials for " + ui.Highlight.Sprint(serviceID)
			return Logger.ErrorfAndReturn("Failed to rotate credentials: %v", err)
		}

		finalMsg := ui.Success.Sprint("✓") + " Rotated credentials for " + ui.Highlight.Sprint(serviceID)
		if backupID != "" {
			finalMsg += "\n" + ui.Info.Sprint("→") + " Previous credentials kept as " + ui.Highlight.Sprint(backupID)
		}
		spinner.FinalMSG = finalMsg
		return nil
	},
}

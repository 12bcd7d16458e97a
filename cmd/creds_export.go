package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
)

var exportCmd = &cobra.Command{
	Use:   "export <path> [service]...",
	Short: "Exports credentials to an encrypted transfer file",
	Long: `Writes the selected services (or everything when none are named) into a
single encrypted file for moving credentials to another machine. The file is
sealed under a one-time transfer key printed on success; without that key the
file cannot be read, so share the file and the key over separate channels.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		services := args[1:]
		Logger.Infof("Starting export command to %s", path)

		spinner, cleanup := startSpinner("Exporting credentials...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		transferKey, count, err := v.ExportCredentials(path, services)
		if err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Export failed"
			return Logger.ErrorfAndReturn("Failed to export credentials: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Exported " + ui.Highlight.Sprintf("%d", count) +
			" services to " + ui.Path.Sprint(path) + "\n" +
			ui.Info.Sprint("→") + " Transfer key: " + ui.Highlight.Sprint(transferKey) + "\n" +
			ui.Info.Sprint("→") + " Import with " + ui.Code.Sprint(fmt.Sprintf("stencil creds import %s --key <transfer-key>", path))
		return nil
	},
}

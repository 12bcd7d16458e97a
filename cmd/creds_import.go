package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	verrors "github.com/stencil-cli/stencil/internal/errors"
	"github.com/stencil-cli/stencil/internal/ui"
)

var (
	importOverwrite bool
	importKey       string
)

func init() {
	importCmd.Flags().BoolVar(&importOverwrite, "overwrite", false, "replace services that already exist in the vault")
	importCmd.Flags().StringVar(&importKey, "key", "", "transfer key printed by the exporting vault")
	if err := importCmd.MarkFlagRequired("key"); err != nil {
		panic(err)
	}
}

var importCmd = &cobra.Command{
	Use:   "import <path> --key <transfer-key>",
	Short: "Imports credentials from an encrypted transfer file",
	Long: `Merges the services from an export file into the vault, unlocking it with
the transfer key printed at export time. Services that already exist are
skipped unless --overwrite is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		Logger.Infof("Starting import command from %s", path)

		spinner, cleanup := startSpinner("Importing credentials...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		imported, skipped, err := v.ImportCredentials(path, importKey, importOverwrite)
		if err != nil {
			if errors.Is(err, verrors.ErrImportInvalid) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " " + ui.Path.Sprint(path) + " is not a readable export file\n" +
					ui.Info.Sprint("→") + " Check that the transfer key matches the one printed at export time"
				return err
			}
			return Logger.ErrorfAndReturn("Failed to import credentials: %v", err)
		}

		finalMsg := ui.Success.Sprint("✓") + " Imported " + ui.Highlight.Sprintf("%d", imported) + " services"
		if skipped > 0 {
			finalMsg += "\n" + ui.Warning.Sprint("!") + " Skipped " + ui.Highlight.Sprintf("%d", skipped) +
				" existing services " + ui.Muted.Sprint("use --overwrite to replace")
		}
		spinner.FinalMSG = finalMsg
		return nil
	},
}

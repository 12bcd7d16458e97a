package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	verrors "github.com/stencil-cli/stencil/internal/errors"
	"github.com/stencil-cli/stencil/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initializes the credential vault on this machine",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting init command")
		spinner, cleanup := startSpinner("Initializing credential vault...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			if errors.Is(err, verrors.ErrWrongMachine) {
				spinner.FinalMSG = ui.Error.Sprint("✗") + " The vault key was created on a different machine\n" +
					ui.Info.Sprint("→") + " Move credentials with " + ui.Code.Sprint("stencil creds export") + " on the original machine"
				return err
			}
			return Logger.ErrorfAndReturn("Failed to initialize vault: %v", err)
		}
		defer closeVault()

		services, err := v.ListServices()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list services: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Vault ready at " + ui.Path.Sprint(v.Dir()) + "\n" +
			ui.Info.Sprint("→") + " " + ui.Highlight.Sprintf("%d", len(services)) + " services stored"
		return nil
	},
}

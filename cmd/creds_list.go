package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
	"github.com/stencil-cli/stencil/internal/vault"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the service list as JSON")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists the services with stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		services, err := v.ListServices()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to list services: %v", err)
		}

		if listJSON {
			out, err := json.MarshalIndent(services, "", "  ")
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to encode service list: %v", err)
			}
			fmt.Println(string(out))
			return nil
		}

		if len(services) == 0 {
			fmt.Println(ui.Info.Sprint("→") + " No credentials stored yet")
			fmt.Println("  Run " + ui.Code.Sprint("stencil creds set <service> <field=value>...") + " to add some")
			return nil
		}

		fmt.Println(ui.Success.Sprint("✓") + " Stored services:")
		for _, serviceID := range services {
			if vault.IsBackup(serviceID) {
				fmt.Println("  " + serviceID + " " + ui.Muted.Sprint("rotation backup"))
				continue
			}
			fmt.Println("  " + ui.Highlight.Sprint(serviceID))
		}
		return nil
	},
}

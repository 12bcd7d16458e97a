package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/internal/ui"
	"github.com/stencil-cli/stencil/internal/vault"
)

// printSchemaHint shows the field contract for a service when `creds set` is
// invoked without field arguments.
func printSchemaHint(serviceID string) error {
	schema, ok := vault.SchemaFor(serviceID)
	if !ok {
		fmt.Println(ui.Warning.Sprint("!") + " No schema defined for " + ui.Highlight.Sprint(serviceID))
		fmt.Println(ui.Info.Sprint("→") + " Fields are stored unchecked: " +
			ui.Code.Sprint("stencil creds set "+serviceID+" <field=value>..."))
		return nil
	}

	fmt.Println(ui.Info.Sprint("→") + " Schema for " + ui.Highlight.Sprint(serviceID))
	fmt.Printf("  required:  %s\n", strings.Join(schema.Required, ", "))
	if len(schema.Optional) > 0 {
		fmt.Printf("  optional:  %s\n", strings.Join(schema.Optional, ", "))
	}
	fmt.Printf("  encrypted: %s\n", strings.Join(schema.Sensitive, ", "))
	return nil
}

var setCmd = &cobra.Command{
	Use:   "set <service> <field=value>...",
	Short: "Stores credentials for a service",
	Long: `Validates the given fields against the service's schema and stores them
with sensitive fields encrypted. Run with no field arguments to see the schema.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID := args[0]
		Logger.Infof("Starting set command for %s", serviceID)

		if len(args) == 1 {
			return printSchemaHint(serviceID)
		}

		record, err := parseFieldArgs(args[1:])
		if err != nil {
			return Logger.ErrorfAndReturn("%v", err)
		}

		spinner, cleanup := startSpinner("Storing credentials...", verbose)
		defer cleanup()

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		if err := v.SetCredentials(serviceID, record); err != nil {
			spinner.FinalMSG = ui.Error.Sprint("✗") + " Could not store credentials for " + ui.Highlight.Sprint(serviceID)
			return Logger.ErrorfAndReturn("Failed to store credentials: %v", err)
		}

		spinner.FinalMSG = ui.Success.Sprint("✓") + " Stored credentials for " + ui.Highlight.Sprint(serviceID)
		return nil
	},
}

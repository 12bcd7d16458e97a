package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	verrors "github.com/stencil-cli/stencil/internal/errors"
	"github.com/stencil-cli/stencil/internal/ui"
	"github.com/stencil-cli/stencil/internal/vault"
)

var showValues bool

func init() {
	getCmd.Flags().BoolVar(&showValues, "show", false, "print sensitive values instead of masking them")
}

var getCmd = &cobra.Command{
	Use:   "get <service>",
	Short: "Retrieves the stored credentials for a service",
	Long: `Prints the decrypted credential fields for a service. Sensitive values
are masked unless --show is given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		serviceID := args[0]
		Logger.Infof("Starting get command for %s", serviceID)

		v, closeVault, err := openVault()
		if err != nil {
			return Logger.ErrorfAndReturn("Failed to open vault: %v", err)
		}
		defer closeVault()

		record, err := v.GetCredentials(serviceID)
		if err != nil {
			if errors.Is(err, verrors.ErrNotFound) {
				fmt.Println(ui.Error.Sprint("✗") + " No credentials stored for " + ui.Highlight.Sprint(serviceID))
				fmt.Println(ui.Info.Sprint("→") + " Run " + ui.Code.Sprint("stencil creds set "+serviceID+" <field=value>..."))
				return err
			}
			return Logger.ErrorfAndReturn("Failed to get credentials: %v", err)
		}

		sensitive := vault.SensitiveFields(serviceID)

		fields := make([]string, 0, len(record))
		for field := range record {
			fields = append(fields, field)
		}
		slices.Sort(fields)

		fmt.Println(ui.Success.Sprint("✓") + " Credentials for " + ui.Highlight.Sprint(serviceID))
		for _, field := range fields {
			value := record[field]
			if !showValues && slices.Contains(sensitive, field) {
				value = maskValue(value) + " " + ui.Muted.Sprint("use --show to reveal")
			}
			fmt.Printf("  %s = %s\n", field, value)
		}
		return nil
	},
}

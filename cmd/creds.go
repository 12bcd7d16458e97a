package cmd

import (
	logger "github.com/stencil-cli/stencil/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	debug   bool
	Logger  logger.Logger

	CredsCmd = &cobra.Command{
		Use:   "creds",
		Short: "Manage SaaS credentials in the local vault",
		Long:  `Stores, retrieves, rotates, and transfers encrypted API credentials for the services Stencil integrates with.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing creds command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	CredsCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	CredsCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")

	CredsCmd.AddCommand(initCmd)
	CredsCmd.AddCommand(setCmd)
	CredsCmd.AddCommand(getCmd)
	CredsCmd.AddCommand(removeCmd)
	CredsCmd.AddCommand(listCmd)
	CredsCmd.AddCommand(rotateCmd)
	CredsCmd.AddCommand(exportCmd)
	CredsCmd.AddCommand(importCmd)
	CredsCmd.AddCommand(cleanupCmd)
}

// GetCredsCmd returns the CredsCmd for testing.
func GetCredsCmd() *cobra.Command {
	return CredsCmd
}

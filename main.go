package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/stencil-cli/stencil/cmd"
)

var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "Stencil - A CLI for scaffolding web projects and wiring up their services.",
	Long: `Stencil scaffolds web projects and keeps the API credentials for their
services in an encrypted local vault, so the assistant can call Stripe,
OpenAI, GitHub, and friends on your behalf without ever seeing a key.

Features:
  - Store SaaS credentials encrypted and bound to this machine
  - Rotate keys with automatic timestamped backups
  - Move credentials between machines with encrypted export files

Usage:
  stencil <command> [flags]

Available Commands:
  creds      Manage SaaS credentials in the local vault

Run 'stencil help <command>' for more details on a specific command.
`,
	Run: func(cmd *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Stencil", "alligator2", "cyan", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Welcome to Stencil! Run 'stencil --help' to see available commands.")
	},
}

func main() {
	rootCmd.AddCommand(cmd.CredsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

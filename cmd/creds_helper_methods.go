package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"

	"github.com/stencil-cli/stencil/internal/configs"
	"github.com/stencil-cli/stencil/internal/ui"
	"github.com/stencil-cli/stencil/internal/vault"
)

// startSpinner creates and starts a spinner with the given message when not in
// verbose or debug mode. Returns the spinner and a function that should be
// deferred to clean up.
//
// IMPORTANT: spinner.FinalMSG values do NOT need trailing newlines. The cleanup
// function automatically calls ui.EnsureNewline() on the final message before
// printing it. This ensures consistent output formatting across all commands.
func startSpinner(message string, verbose bool) (*spinner.Spinner, func()) {
	Logger.Debugf("Starting spinner with message: %s", message)
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	err := s.Color("cyan")
	if err != nil {
		// If we can't set spinner color, just continue without it.
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	if !verbose && !debug {
		Logger.Debugf("Starting spinner in non-verbose mode")
		s.Start()
		// Ensure log output is discarded unless in verbose mode.
		log.SetOutput(io.Discard)
	} else {
		Logger.Infof("Running in verbose or debug mode: %s", message)
	}

	cleanup := func() {
		// Restore log output first.
		if !verbose && !debug {
			Logger.Debugf("Restoring log output")
			log.SetOutput(os.Stdout)
		}

		// Ensure final message ends with a newline.
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		// Stop the spinner first to clear the spinner line.
		if !verbose && !debug {
			Logger.Debugf("Stopping spinner")
			s.Stop()
		}

		// Print final message to stdout (for tests to capture).
		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// openVault resolves the vault directory from the user config and opens an
// initialized vault. The returned cleanup releases the vault lock and wipes
// the key material; always defer it.
func openVault() (*vault.Vault, func(), error) {
	dir, err := configs.VaultDir()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve vault directory: %w", err)
	}

	v := vault.New(dir, Logger)
	if err := v.Initialize(); err != nil {
		return nil, nil, err
	}
	return v, v.Cleanup, nil
}

// parseFieldArgs parses field=value command arguments into a record.
func parseFieldArgs(args []string) (vault.Record, error) {
	record := make(vault.Record, len(args))
	for _, arg := range args {
		field, value, ok := strings.Cut(arg, "=")
		if !ok || field == "" {
			return nil, fmt.Errorf("invalid field argument %q, expected field=value", arg)
		}
		record[field] = value
	}
	return record, nil
}

// maskValue hides all but a short prefix of a secret value.
func maskValue(value string) string {
	const visible = 4
	if len(value) <= visible {
		return strings.Repeat("*", len(value))
	}
	return value[:visible] + strings.Repeat("*", 8)
}

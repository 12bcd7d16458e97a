// Package logger provides leveled logging for Stencil CLI commands.
//
// The logger supports verbosity levels controlled by command-line flags:
//
//   - --verbose: shows info messages
//   - --debug: shows debug details
//
// Warnings and errors are always shown on stderr. Output is colored with
// semantic prefixes.
//
// # Usage
//
// Create a logger with the desired verbosity:
//
//	log := logger.Logger{Verbose: verbose, Debug: debug}
//	log.Infof("Sealed %d fields for %s", count, serviceID)
//
// Commands typically create a logger in their PersistentPreRun and pass it
// to internal functions. Field-level decryption failures go through Warnf so
// operators can distinguish a partially readable record from a hard error
// reported via Errorf.
package logger

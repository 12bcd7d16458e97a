// Package ui provides semantic text formatting for CLI output.
//
// Formatters render appropriately based on terminal capabilities: colorized
// when colors are available, text decorations (backticks, quotes) when
// NO_COLOR is set or the terminal doesn't support colors.
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("stencil creds init")   // Commands
//	ui.Path.Sprint("~/.stencil/vault")     // File paths
//	ui.Success.Sprint("✓")                 // Success indicators
//	ui.Error.Sprint("✗")                   // Error indicators
//	ui.Info.Sprint("→")                    // Informational hints
//	ui.Highlight.Sprint("stripe")          // Service ids and user values
package ui

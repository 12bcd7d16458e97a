// Package errors provides typed error values for the Stencil credential vault.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Lifecycle errors: the vault is unusable (ErrInitFailed, ErrVaultLocked)
//   - Credential errors: a record or lookup is bad (ErrValidation, ErrNotFound)
//   - Crypto errors: sealing or opening failed (ErrWrongMachine, ErrFieldUnreadable)
//   - Transfer errors: import files are invalid (ErrImportInvalid)
//
// # Usage
//
// Return errors from internal packages:
//
//	if !ok {
//	    return nil, verrors.ErrNotFound
//	}
//
// Wrap errors with the service id and operation at the call site:
//
//	return fmt.Errorf("get credentials for %q: %w", serviceID, verrors.ErrNotFound)
//
// Handle errors in the CLI layer:
//
//	if errors.Is(err, verrors.ErrValidation) {
//	    // Show which required field is missing.
//	}
package errors

package errors

import "errors"

// Vault lifecycle errors indicate the vault itself is unusable.
var (
	// ErrVaultNotInitialized indicates a vault operation was attempted before Initialize.
	ErrVaultNotInitialized = errors.New("vault has not been initialized")

	// ErrInitFailed indicates the vault directory or key file could not be set up.
	ErrInitFailed = errors.New("vault initialization failed")

	// ErrVaultLocked indicates another process holds the vault lock.
	ErrVaultLocked = errors.New("vault is locked by another process")
)

// Credential errors indicate problems with individual credential records.
var (
	// ErrValidation indicates a credential record fails its service schema.
	ErrValidation = errors.New("credential record failed validation")

	// ErrNotFound indicates no credentials are stored for the requested service.
	ErrNotFound = errors.New("no credentials stored for service")

	// ErrEmptyServiceID indicates an operation was called with an empty service id.
	ErrEmptyServiceID = errors.New("service id must not be empty")
)

// Cryptographic errors indicate failures during sealing or opening.
var (
	// ErrWrongMachine indicates the key file could not be unwrapped with this
	// machine's fingerprint. The file was created on a different machine or
	// has been corrupted.
	ErrWrongMachine = errors.New("key file does not match this machine")

	// ErrFieldUnreadable indicates one or more sealed fields in a record could
	// not be decrypted. The record is partially readable at best.
	ErrFieldUnreadable = errors.New("sealed field could not be decrypted")

	// ErrDecryptFailed indicates an encrypted document failed authentication.
	ErrDecryptFailed = errors.New("failed to decrypt document")
)

// Import/export errors indicate problems with credential transfer files.
var (
	// ErrImportInvalid indicates the import file is not a valid export document.
	ErrImportInvalid = errors.New("import file is not a valid credential export")
)

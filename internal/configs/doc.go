// Package configs manages user configuration for Stencil.
//
// Configuration is stored in TOML format at ~/.stencil/config.toml and holds:
//
//   - An install UUID, auto-generated on first use. It tags exported
//     credential documents and diagnostics. It is not a secret and plays no
//     role in key derivation.
//   - An optional vault directory override. By default the credential vault
//     lives at ~/.stencil/vault.
//   - The default project template for scaffolding.
//
// Call EnsureUserConfig() to load the config, creating it on first use.
// VaultDir() resolves the effective vault directory.
package configs

// Package vault implements Stencil's machine-bound credential store.
//
// The vault turns plaintext API secrets (keys, tokens, access-key pairs) into
// an at-rest encrypted store that is unusable if copied to another machine.
// A 32-byte master key is generated once and written to disk wrapped under a
// key derived from a fingerprint of stable host attributes; sensitive fields
// within credential records are individually sealed with the master key, and
// the whole store is persisted as a single encrypted document.
//
// All encryption uses NaCl secretbox (XSalsa20-Poly1305), so tampered or
// wrong-machine material fails authentication instead of silently decrypting
// to garbage.
//
// # Layout on disk
//
//	<vault-dir>/keyring.enc      salt || sealed master key
//	<vault-dir>/credentials.enc  sealed JSON document of all records
//	<vault-dir>/vault.lock       advisory single-writer lock
//	<vault-dir>/audit.jsonl      operation audit trail
//
// # Usage
//
//	v := vault.New(dir, log)
//	if err := v.Initialize(); err != nil { ... }
//	defer v.Cleanup()
//
//	err := v.SetCredentials("stripe", vault.Record{"api_key": "sk_live_..."})
//	rec, err := v.GetCredentials("stripe")
package vault

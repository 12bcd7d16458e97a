// Package audit provides an audit trail for vault operations.
//
// Every mutation of the credential vault (set, remove, rotate, import,
// cleanup) and every export is recorded as JSON Lines at:
//
//	<vault-dir>/audit.jsonl
//
// Each entry contains a UTC timestamp, the operation name, and
// operation-specific details such as the service id or counts. Decrypted
// credential values are never written to the trail.
//
// # Failure Handling
//
// Audit logging is best-effort. If logging fails (permissions, disk full,
// etc.), the operation continues without error.
//
// # Reading Logs
//
// Use ReadEntries() to parse the audit log for display or analysis.
// Malformed entries are silently skipped to handle partial writes.
package audit

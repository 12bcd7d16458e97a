package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Service       string   `json:"service,omitempty"`        // For set/get/remove/rotate.
	BackupService string   `json:"backup_service,omitempty"` // For rotate.
	Services      []string `json:"services,omitempty"`       // For export/import.
	SkippedCount  int      `json:"skipped_count,omitempty"`  // For import.
	RemovedCount  int      `json:"removed_count,omitempty"`  // For cleanup.
	OutputPath    string   `json:"output_path,omitempty"`    // For export.
	Overwrite     bool     `json:"overwrite,omitempty"`      // For import.
}

// Log appends an entry to the audit log in the given vault directory.
// Audit logging is best-effort: failures are swallowed so that vault
// operations never fail just because the trail could not be written.
func Log(vaultDir string, entry Entry) {
	if vaultDir == "" {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := filepath.Join(vaultDir, "audit.jsonl")

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log in the given vault
// directory. Returns an empty slice if the log doesn't exist.
func ReadEntries(vaultDir string) ([]Entry, error) {
	logPath := filepath.Join(vaultDir, "audit.jsonl")

	data, err := os.ReadFile(logPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

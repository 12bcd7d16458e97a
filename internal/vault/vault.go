package vault

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/stencil-cli/stencil/internal/audit"
	verrors "github.com/stencil-cli/stencil/internal/errors"
	logger "github.com/stencil-cli/stencil/internal/logging"
)

const (
	// KeyFileName is the wrapped master key file inside the vault directory.
	KeyFileName = "keyring.enc"

	// CredentialsFileName is the encrypted credential document.
	CredentialsFileName = "credentials.enc"

	// LockFileName is the advisory single-writer lock.
	LockFileName = "vault.lock"

	// backupMarker joins a service id and the epoch-millisecond timestamp in
	// a backup record's synthetic id, e.g. "github_backup_1756600000000".
	backupMarker = "_backup_"

	// backupRetention is how long rotation backups are kept before Cleanup
	// prunes them.
	backupRetention = 30 * 24 * time.Hour
)

// Vault owns the master key and credential store for one session. Construct
// with New, call Initialize before any operation, and Cleanup when done.
type Vault struct {
	dir    string
	logger logger.Logger
	key    *[MasterKeySize]byte
	store  *credentialStore
	lock   *vaultLock
}

// New returns an uninitialized Vault rooted at dir.
func New(dir string, log logger.Logger) *Vault {
	return &Vault{dir: dir, logger: log}
}

// Dir returns the vault directory.
func (v *Vault) Dir() string {
	return v.dir
}

// Initialize prepares the vault: creates the directory, acquires the
// advisory lock, loads or creates the machine-bound master key, and loads
// the credential store.
func (v *Vault) Initialize() error {
	if err := os.MkdirAll(v.dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create vault directory %s: %v", verrors.ErrInitFailed, v.dir, err)
	}

	lock := newVaultLock(filepath.Join(v.dir, LockFileName), v.logger)
	if err := lock.acquire(); err != nil {
		return fmt.Errorf("vault at %s: %w", v.dir, err)
	}
	v.lock = lock

	key, err := LoadOrCreateMasterKey(filepath.Join(v.dir, KeyFileName))
	if err != nil {
		lock.release()
		v.lock = nil
		if errors.Is(err, verrors.ErrWrongMachine) {
			return err
		}
		return fmt.Errorf("%w: %v", verrors.ErrInitFailed, err)
	}
	v.key = key

	store := newCredentialStore(filepath.Join(v.dir, CredentialsFileName), v.logger)
	if err := store.load(key); err != nil {
		lock.release()
		v.lock = nil
		v.key = nil
		return fmt.Errorf("%w: %v", verrors.ErrInitFailed, err)
	}
	v.store = store

	v.logger.Debugf("Vault initialized at %s with %d stored services", v.dir, len(store.records))
	return nil
}

func (v *Vault) ready() error {
	if v.key == nil || v.store == nil {
		return verrors.ErrVaultNotInitialized
	}
	return nil
}

// SetCredentials validates a record against the service schema, seals its
// sensitive fields, and persists the store.
func (v *Vault) SetCredentials(serviceID string, record Record) error {
	if err := v.ready(); err != nil {
		return err
	}
	if serviceID == "" {
		return verrors.ErrEmptyServiceID
	}

	warnings, err := ValidateRecord(serviceID, record)
	for _, warning := range warnings {
		v.logger.Warnf("%s", warning)
	}
	if err != nil {
		return fmt.Errorf("set credentials: %w", err)
	}

	sealed, err := SealRecord(serviceID, record, v.key)
	if err != nil {
		return fmt.Errorf("set credentials for %q: %w", serviceID, err)
	}

	v.store.set(serviceID, sealed)
	if err := v.store.save(v.key); err != nil {
		// The in-memory store stays authoritative until the next save succeeds.
		return fmt.Errorf("set credentials for %q: %w", serviceID, err)
	}

	audit.Log(v.dir, audit.Entry{Operation: "set", Service: serviceID})
	v.logger.Infof("Stored credentials for %s (%d sensitive fields sealed)",
		serviceID, len(SensitiveFields(serviceID)))
	return nil
}

// GetCredentials returns the fully decrypted record for a service. If any
// sealed field fails to decrypt the whole call fails with ErrFieldUnreadable
// naming the fields, rather than returning ciphertext-shaped values.
func (v *Vault) GetCredentials(serviceID string) (Record, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}

	sealed, ok := v.store.get(serviceID)
	if !ok {
		return nil, fmt.Errorf("get credentials for %q: %w", serviceID, verrors.ErrNotFound)
	}

	record, unreadable := OpenRecord(sealed, v.key)
	if len(unreadable) > 0 {
		for _, field := range unreadable {
			v.logger.Warnf("Field %q of %q could not be decrypted", field, serviceID)
		}
		return nil, fmt.Errorf("get credentials for %q: fields %s: %w",
			serviceID, strings.Join(unreadable, ", "), verrors.ErrFieldUnreadable)
	}

	return record, nil
}

// RemoveCredentials removes a service's record and persists the store.
// Removing an absent service is a no-op with a warning.
func (v *Vault) RemoveCredentials(serviceID string) error {
	if err := v.ready(); err != nil {
		return err
	}

	if !v.store.remove(serviceID) {
		v.logger.Warnf("No credentials stored for %q, nothing to remove", serviceID)
		return nil
	}

	if err := v.store.save(v.key); err != nil {
		return fmt.Errorf("remove credentials for %q: %w", serviceID, err)
	}

	audit.Log(v.dir, audit.Entry{Operation: "remove", Service: serviceID})
	v.logger.Infof("Removed credentials for %s", serviceID)
	return nil
}

// ListServices returns the lexicographically sorted service ids in the
// store, including rotation backups.
func (v *Vault) ListServices() ([]string, error) {
	if err := v.ready(); err != nil {
		return nil, err
	}
	return v.store.services(), nil
}

// RotateCredentials snapshots the current record under a timestamped backup
// id and replaces the live record with newRecord in a single persisted
// transaction, so a crash can never leave only the snapshot on disk.
// Returns the backup id, or "" when there was no prior record to snapshot.
func (v *Vault) RotateCredentials(serviceID string, newRecord Record) (string, error) {
	if err := v.ready(); err != nil {
		return "", err
	}
	if serviceID == "" {
		return "", verrors.ErrEmptyServiceID
	}

	warnings, err := ValidateRecord(serviceID, newRecord)
	for _, warning := range warnings {
		v.logger.Warnf("%s", warning)
	}
	if err != nil {
		return "", fmt.Errorf("rotate credentials: %w", err)
	}

	sealed, err := SealRecord(serviceID, newRecord, v.key)
	if err != nil {
		return "", fmt.Errorf("rotate credentials for %q: %w", serviceID, err)
	}

	backupID := ""
	if prior, ok := v.store.get(serviceID); ok {
		backupID = serviceID + backupMarker + strconv.FormatInt(time.Now().UnixMilli(), 10)
		v.store.set(backupID, prior)
	} else {
		v.logger.Warnf("No existing credentials for %q, rotating without a snapshot", serviceID)
	}

	v.store.set(serviceID, sealed)
	if err := v.store.save(v.key); err != nil {
		return "", fmt.Errorf("rotate credentials for %q: %w", serviceID, err)
	}

	audit.Log(v.dir, audit.Entry{Operation: "rotate", Service: serviceID, BackupService: backupID})
	v.logger.Infof("Rotated credentials for %s (backup: %s)", serviceID, backupID)
	return backupID, nil
}

// exportDocument is the decrypted payload of a transfer file. The records
// inside are field-sealed under the transfer key, never under any vault's
// machine-bound master key, so the file is importable anywhere.
type exportDocument struct {
	ExportID   string            `json:"export_id"`
	ExportedAt time.Time         `json:"exported_at"`
	Records    map[string]Record `json:"records"`
}

// ExportCredentials writes one encrypted document containing the records for
// the selected services, re-sealed under a fresh random transfer key. The
// machine-bound master key never leaves this vault; the returned base64
// transfer key is the only way to read the file back and must be given to
// ImportCredentials.
//
// An empty services slice exports everything, backups included. Requesting a
// service that is not stored fails with ErrNotFound; a record with
// undecryptable fields fails the export with ErrFieldUnreadable rather than
// exporting ciphertext that no key can open.
func (v *Vault) ExportCredentials(path string, services []string) (transferKey string, count int, err error) {
	if err := v.ready(); err != nil {
		return "", 0, err
	}

	selected := services
	if len(selected) == 0 {
		selected = v.store.services()
	}

	var key [MasterKeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return "", 0, fmt.Errorf("export credentials: failed to generate transfer key: %w", err)
	}

	doc := exportDocument{
		ExportID:   uuid.NewString(),
		ExportedAt: time.Now().UTC(),
		Records:    make(map[string]Record, len(selected)),
	}
	for _, serviceID := range selected {
		sealed, ok := v.store.get(serviceID)
		if !ok {
			return "", 0, fmt.Errorf("export credentials for %q: %w", serviceID, verrors.ErrNotFound)
		}

		record, unreadable := OpenRecord(sealed, v.key)
		if len(unreadable) > 0 {
			return "", 0, fmt.Errorf("export credentials for %q: fields %s: %w",
				serviceID, strings.Join(unreadable, ", "), verrors.ErrFieldUnreadable)
		}

		resealed, err := SealRecord(baseServiceID(serviceID), record, &key)
		if err != nil {
			return "", 0, fmt.Errorf("export credentials for %q: %w", serviceID, err)
		}
		doc.Records[serviceID] = resealed
	}

	plaintext, err := json.Marshal(doc)
	if err != nil {
		return "", 0, fmt.Errorf("export credentials: %w", err)
	}
	sealed, err := sealDocument(plaintext, &key)
	if err != nil {
		return "", 0, fmt.Errorf("export credentials: %w", err)
	}
	if err := os.WriteFile(path, sealed, 0600); err != nil {
		return "", 0, fmt.Errorf("export credentials to %s: %w", path, err)
	}

	exported := make([]string, 0, len(doc.Records))
	for serviceID := range doc.Records {
		exported = append(exported, serviceID)
	}
	slices.Sort(exported)

	audit.Log(v.dir, audit.Entry{Operation: "export", Services: exported, OutputPath: path})
	v.logger.Infof("Exported %d services to %s", len(exported), path)
	return base64.StdEncoding.EncodeToString(key[:]), len(exported), nil
}

// ImportCredentials merges records from a transfer file into the store,
// opening them with the transfer key returned by the exporting vault and
// re-sealing them under this vault's master key. Services already present
// are skipped unless overwrite is true. The merge is staged fully before the
// store is touched, then persisted once. Returns the counts of imported and
// skipped services.
func (v *Vault) ImportCredentials(path, transferKey string, overwrite bool) (imported, skipped int, err error) {
	if err := v.ready(); err != nil {
		return 0, 0, err
	}

	keyBytes, err := base64.StdEncoding.DecodeString(transferKey)
	if err != nil || len(keyBytes) != MasterKeySize {
		return 0, 0, fmt.Errorf("%w: transfer key is malformed", verrors.ErrImportInvalid)
	}
	var key [MasterKeySize]byte
	copy(key[:], keyBytes)

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("import credentials from %s: %w", path, err)
	}

	plaintext, err := openDocument(data, &key)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", verrors.ErrImportInvalid, path, err)
	}

	var doc exportDocument
	if err := json.Unmarshal(plaintext, &doc); err != nil {
		return 0, 0, fmt.Errorf("%w: %s: %v", verrors.ErrImportInvalid, path, err)
	}

	staged := make(map[string]Record, len(doc.Records))
	for serviceID, record := range doc.Records {
		if _, exists := v.store.get(serviceID); exists && !overwrite {
			v.logger.Warnf("Skipping %q, already stored (use overwrite to replace)", serviceID)
			skipped++
			continue
		}

		opened, unreadable := OpenRecord(record, &key)
		if len(unreadable) > 0 {
			return 0, 0, fmt.Errorf("%w: %s: fields %s of %q do not match the transfer key",
				verrors.ErrImportInvalid, path, strings.Join(unreadable, ", "), serviceID)
		}

		resealed, err := SealRecord(baseServiceID(serviceID), opened, v.key)
		if err != nil {
			return 0, 0, fmt.Errorf("import credentials for %q: %w", serviceID, err)
		}
		staged[serviceID] = resealed
	}

	merged := make([]string, 0, len(staged))
	for serviceID, record := range staged {
		v.store.set(serviceID, record)
		merged = append(merged, serviceID)
	}
	slices.Sort(merged)

	if len(merged) > 0 {
		if err := v.store.save(v.key); err != nil {
			return 0, 0, fmt.Errorf("import credentials from %s: %w", path, err)
		}
	}

	audit.Log(v.dir, audit.Entry{
		Operation:    "import",
		Services:     merged,
		SkippedCount: skipped,
		Overwrite:    overwrite,
	})
	v.logger.Infof("Imported %d services from %s (%d skipped)", len(merged), path, skipped)
	return len(merged), skipped, nil
}

// Cleanup prunes rotation backups older than the retention window, persists
// the pruned store, releases the advisory lock, and discards the in-memory
// key and store. It is best-effort: internal errors are logged and the
// teardown continues.
func (v *Vault) Cleanup() {
	if v.key != nil && v.store != nil {
		removed := v.pruneExpiredBackups()
		if removed > 0 {
			if err := v.store.save(v.key); err != nil {
				v.logger.Errorf("Failed to persist pruned store: %v", err)
			}
		}
		audit.Log(v.dir, audit.Entry{Operation: "cleanup", RemovedCount: removed})
	}

	if v.lock != nil {
		v.lock.release()
		v.lock = nil
	}

	if v.key != nil {
		for i := range v.key {
			v.key[i] = 0
		}
		v.key = nil
	}
	if v.store != nil {
		v.store.clear()
		v.store = nil
	}
}

// pruneExpiredBackups removes backup records older than backupRetention.
func (v *Vault) pruneExpiredBackups() int {
	cutoff := time.Now().Add(-backupRetention)

	removed := 0
	for _, serviceID := range v.store.services() {
		createdAt, ok := backupTimestamp(serviceID)
		if !ok {
			continue
		}
		if createdAt.Before(cutoff) {
			v.store.remove(serviceID)
			v.logger.Infof("Pruned expired backup %s (created %s)", serviceID, createdAt.Format(time.RFC3339))
			removed++
		}
	}
	return removed
}

// backupTimestamp extracts the creation time from a backup record's
// synthetic id. Returns false for live (non-backup) service ids.
func backupTimestamp(serviceID string) (time.Time, bool) {
	idx := strings.LastIndex(serviceID, backupMarker)
	if idx < 0 {
		return time.Time{}, false
	}

	millis, err := strconv.ParseInt(serviceID[idx+len(backupMarker):], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

// IsBackup reports whether a service id names a rotation backup.
func IsBackup(serviceID string) bool {
	_, ok := backupTimestamp(serviceID)
	return ok
}

// baseServiceID strips the backup suffix from a rotation backup id, so
// schema lookups for "github_backup_<ts>" resolve to "github". Live service
// ids pass through unchanged.
func baseServiceID(serviceID string) string {
	if !IsBackup(serviceID) {
		return serviceID
	}
	return serviceID[:strings.LastIndex(serviceID, backupMarker)]
}

package vault

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"golang.org/x/crypto/nacl/secretbox"

	verrors "github.com/stencil-cli/stencil/internal/errors"
	logger "github.com/stencil-cli/stencil/internal/logging"
)

// credentialStore is the in-memory authoritative map of service id to sealed
// credential record, persisted as a single encrypted JSON document. It is
// owned by a Vault for the lifetime of a session; it is not shared state.
type credentialStore struct {
	path    string
	logger  logger.Logger
	records map[string]Record
}

func newCredentialStore(path string, log logger.Logger) *credentialStore {
	return &credentialStore{
		path:    path,
		logger:  log,
		records: make(map[string]Record),
	}
}

// load reads and decrypts the store document. A missing file starts an empty
// store. A document that fails decryption or parsing is logged as a warning
// and the store starts empty rather than failing initialization.
func (s *credentialStore) load(key *[MasterKeySize]byte) error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read credential store %s: %w", s.path, err)
	}

	plaintext, err := openDocument(data, key)
	if err != nil {
		s.logger.Warnf("Credential store at %s could not be decrypted, starting empty: %v", s.path, err)
		s.records = make(map[string]Record)
		return nil
	}

	records := make(map[string]Record)
	if err := json.Unmarshal(plaintext, &records); err != nil {
		s.logger.Warnf("Credential store at %s is malformed, starting empty: %v", s.path, err)
		s.records = make(map[string]Record)
		return nil
	}

	s.records = records
	return nil
}

// save serializes, encrypts, and persists the whole store. The document is
// written to a temp file and renamed into place so a crash never leaves a
// partial store, then restricted to owner-only permissions.
func (s *credentialStore) save(key *[MasterKeySize]byte) error {
	plaintext, err := json.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("failed to serialize credential store: %w", err)
	}

	sealed, err := sealDocument(plaintext, key)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential store: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, sealed, 0600); err != nil {
		return fmt.Errorf("failed to write credential store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace credential store: %w", err)
	}

	return nil
}

func (s *credentialStore) get(serviceID string) (Record, bool) {
	record, ok := s.records[serviceID]
	return record, ok
}

func (s *credentialStore) set(serviceID string, record Record) {
	s.records[serviceID] = record
}

// remove deletes a record, reporting whether it existed.
func (s *credentialStore) remove(serviceID string) bool {
	_, ok := s.records[serviceID]
	delete(s.records, serviceID)
	return ok
}

// services returns the lexicographically sorted list of stored service ids,
// including backup records.
func (s *credentialStore) services() []string {
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s *credentialStore) clear() {
	s.records = make(map[string]Record)
}

// sealDocument encrypts a whole document with the master key.
// Output layout: nonce || box.
func sealDocument(plaintext []byte, key *[MasterKeySize]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

// openDocument is the inverse of sealDocument.
func openDocument(data []byte, key *[MasterKeySize]byte) ([]byte, error) {
	if len(data) < nonceSize+secretbox.Overhead {
		return nil, fmt.Errorf("document too short (%d bytes): %w", len(data), verrors.ErrDecryptFailed)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	plaintext, ok := secretbox.Open(nil, data[nonceSize:], &nonce, key)
	if !ok {
		return nil, verrors.ErrDecryptFailed
	}
	return plaintext, nil
}

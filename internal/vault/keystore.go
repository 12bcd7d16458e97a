package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"

	verrors "github.com/stencil-cli/stencil/internal/errors"
)

const (
	// MasterKeySize is the size of the vault master key.
	MasterKeySize = 32

	saltSize  = 32
	nonceSize = 24
)

// wrapInfo domain-separates the wrapping key from any other HKDF use.
var wrapInfo = []byte("stencil vault master key wrap v1")

// LoadOrCreateMasterKey returns the vault master key stored at path,
// unwrapping it with this machine's fingerprint. If the file does not exist a
// fresh random key is generated, wrapped, and written with owner-only
// permissions.
//
// A key file written on a different machine (or corrupted on disk) fails
// authentication and returns ErrWrongMachine rather than unwrapping to a
// wrong key.
func LoadOrCreateMasterKey(path string) (*[MasterKeySize]byte, error) {
	return loadOrCreateMasterKey(path, Fingerprint())
}

func loadOrCreateMasterKey(path string, fingerprint []byte) (*[MasterKeySize]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return unwrapMasterKey(data, fingerprint)
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key file %s: %w", path, err)
	}

	var key [MasterKeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		return nil, fmt.Errorf("failed to generate master key: %w", err)
	}

	wrapped, err := wrapMasterKey(&key, fingerprint)
	if err != nil {
		return nil, err
	}

	if err := os.WriteFile(path, wrapped, 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file %s: %w", path, err)
	}

	return &key, nil
}

// wrapMasterKey seals the master key under a fingerprint-derived wrapping
// key. Output layout: salt || nonce || box.
func wrapMasterKey(key *[MasterKeySize]byte, fingerprint []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	wrappingKey, err := deriveWrappingKey(fingerprint, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	box := secretbox.Seal(nonce[:], key[:], &nonce, wrappingKey)
	return append(salt, box...), nil
}

// unwrapMasterKey reverses wrapMasterKey. Authentication failure means the
// file was written under a different fingerprint or has been tampered with.
func unwrapMasterKey(data []byte, fingerprint []byte) (*[MasterKeySize]byte, error) {
	minLen := saltSize + nonceSize + MasterKeySize + secretbox.Overhead
	if len(data) < minLen {
		return nil, fmt.Errorf("key file is truncated (%d bytes, need %d): %w",
			len(data), minLen, verrors.ErrWrongMachine)
	}

	salt := data[:saltSize]
	wrappingKey, err := deriveWrappingKey(fingerprint, salt)
	if err != nil {
		return nil, err
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[saltSize:saltSize+nonceSize])

	opened, ok := secretbox.Open(nil, data[saltSize+nonceSize:], &nonce, wrappingKey)
	if !ok || len(opened) != MasterKeySize {
		return nil, verrors.ErrWrongMachine
	}

	var key [MasterKeySize]byte
	copy(key[:], opened)
	return &key, nil
}

// deriveWrappingKey derives the key-wrapping key from the machine
// fingerprint and the per-file salt using HKDF-SHA256.
func deriveWrappingKey(fingerprint, salt []byte) (*[MasterKeySize]byte, error) {
	reader := hkdf.New(sha256.New, fingerprint, salt, wrapInfo)

	var key [MasterKeySize]byte
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return nil, fmt.Errorf("failed to derive wrapping key: %w", err)
	}
	return &key, nil
}

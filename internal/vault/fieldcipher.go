package vault

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	verrors "github.com/stencil-cli/stencil/internal/errors"
)

// encryptedMarkerSuffix marks a sealed field in the persisted form of a
// record: a sealed field "api_key" is accompanied by "api_key_encrypted" set
// to "true".
const encryptedMarkerSuffix = "_encrypted"

// SealRecord returns a copy of record with every sensitive field (per the
// service's schema) replaced by its base64 ciphertext plus the sibling
// marker. Non-sensitive fields pass through unchanged.
func SealRecord(serviceID string, record Record, key *[MasterKeySize]byte) (Record, error) {
	sensitive := SensitiveFields(serviceID)

	sealed := make(Record, len(record))
	for field, value := range record {
		if !slices.Contains(sensitive, field) {
			sealed[field] = value
			continue
		}

		box, err := encryptField(value, key)
		if err != nil {
			return nil, fmt.Errorf("failed to seal field %q for %q: %w", field, serviceID, err)
		}
		sealed[field] = base64.StdEncoding.EncodeToString(box)
		sealed[field+encryptedMarkerSuffix] = "true"
	}

	return sealed, nil
}

// OpenRecord reverses SealRecord: every field carrying an encrypted marker is
// decoded and decrypted back to plaintext and its marker dropped, so callers
// never see markers or ciphertext forms.
//
// Fields that fail to decrypt are returned by name in unreadable instead of
// being silently left ciphertext-shaped; their values are omitted from the
// result. Callers decide whether a partially readable record is usable.
func OpenRecord(record Record, key *[MasterKeySize]byte) (opened Record, unreadable []string) {
	opened = make(Record, len(record))

	for field, value := range record {
		if strings.HasSuffix(field, encryptedMarkerSuffix) {
			continue
		}
		if record[field+encryptedMarkerSuffix] != "true" {
			opened[field] = value
			continue
		}

		plaintext, err := openSealedValue(value, key)
		if err != nil {
			unreadable = append(unreadable, field)
			continue
		}
		opened[field] = plaintext
	}

	slices.Sort(unreadable)
	return opened, unreadable
}

func openSealedValue(value string, key *[MasterKeySize]byte) (string, error) {
	box, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return "", fmt.Errorf("invalid base64: %w", err)
	}
	return decryptField(box, key)
}

// encryptField seals the UTF-8 bytes of plaintext with the master key.
// Output layout: nonce || box.
func encryptField(plaintext string, key *[MasterKeySize]byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	return secretbox.Seal(nonce[:], []byte(plaintext), &nonce, key), nil
}

// decryptField is the inverse of encryptField. Authentication failure
// surfaces as ErrFieldUnreadable.
func decryptField(data []byte, key *[MasterKeySize]byte) (string, error) {
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short (%d bytes): %w", len(data), verrors.ErrFieldUnreadable)
	}

	var nonce [nonceSize]byte
	copy(nonce[:], data[:nonceSize])

	plaintext, ok := secretbox.Open(nil, data[nonceSize:], &nonce, key)
	if !ok {
		return "", verrors.ErrFieldUnreadable
	}

	return string(plaintext), nil
}

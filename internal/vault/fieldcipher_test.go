package vault

import (
	"crypto/rand"
	"io"
	"strings"
	"testing"
)

func testKey(t *testing.T) *[MasterKeySize]byte {
	t.Helper()
	var key [MasterKeySize]byte
	if _, err := io.ReadFull(rand.Reader, key[:]); err != nil {
		t.Fatalf("failed to generate test key: %v", err)
	}
	return &key
}

func TestSealRecordEncryptsOnlySensitiveFields(t *testing.T) {
	key := testKey(t)
	record := Record{
		"api_key":      "sk-live-secret",
		"organization": "org-123",
	}

	sealed, err := SealRecord("openai", record, key)
	if err != nil {
		t.Fatalf("failed to seal record: %v", err)
	}

	if sealed["api_key"] == "sk-live-secret" {
		t.Errorf("sensitive field was stored in cleartext")
	}
	if sealed["api_key_encrypted"] != "true" {
		t.Errorf("expected encrypted marker for api_key, got %q", sealed["api_key_encrypted"])
	}
	if sealed["organization"] != "org-123" {
		t.Errorf("non-sensitive field should pass through, got %q", sealed["organization"])
	}
	if _, ok := sealed["organization_encrypted"]; ok {
		t.Errorf("non-sensitive field should not carry a marker")
	}
}

func TestOpenRecordRestoresPlaintextAndDropsMarkers(t *testing.T) {
	key := testKey(t)
	record := Record{
		"api_key":  "sk-live-secret",
		"base_url": "https://api.example.com",
	}

	sealed, err := SealRecord("anthropic", record, key)
	if err != nil {
		t.Fatalf("failed to seal record: %v", err)
	}

	opened, unreadable := OpenRecord(sealed, key)
	if len(unreadable) != 0 {
		t.Fatalf("expected no unreadable fields, got %v", unreadable)
	}
	if opened["api_key"] != "sk-live-secret" {
		t.Errorf("expected api_key restored, got %q", opened["api_key"])
	}
	if opened["base_url"] != "https://api.example.com" {
		t.Errorf("expected base_url unchanged, got %q", opened["base_url"])
	}
	for field := range opened {
		if strings.HasSuffix(field, "_encrypted") {
			t.Errorf("marker field %q leaked into opened record", field)
		}
	}
}

func TestOpenRecordReportsUnreadableFields(t *testing.T) {
	key := testKey(t)

	sealed, err := SealRecord("aws", Record{
		"access_key_id":     "AKIAEXAMPLE",
		"secret_access_key": "wJalrXUtnFEMI",
		"session_token":     "FwoGZXIvYXdzEBc",
	}, key)
	if err != nil {
		t.Fatalf("failed to seal record: %v", err)
	}

	opened, unreadable := OpenRecord(sealed, testKey(t))
	if len(unreadable) != 2 {
		t.Fatalf("expected 2 unreadable fields under the wrong key, got %v", unreadable)
	}
	if unreadable[0] != "secret_access_key" || unreadable[1] != "session_token" {
		t.Errorf("expected sorted unreadable field names, got %v", unreadable)
	}
	if _, ok := opened["secret_access_key"]; ok {
		t.Errorf("unreadable field should be omitted from the opened record")
	}
	if opened["access_key_id"] != "AKIAEXAMPLE" {
		t.Errorf("cleartext field should still open, got %q", opened["access_key_id"])
	}
}

func TestOpenRecordReportsCorruptCiphertext(t *testing.T) {
	key := testKey(t)

	sealed, err := SealRecord("github", Record{"token": "ghp_abc"}, key)
	if err != nil {
		t.Fatalf("failed to seal record: %v", err)
	}
	sealed["token"] = "not-base64!!"

	_, unreadable := OpenRecord(sealed, key)
	if len(unreadable) != 1 || unreadable[0] != "token" {
		t.Fatalf("expected token reported unreadable, got %v", unreadable)
	}
}

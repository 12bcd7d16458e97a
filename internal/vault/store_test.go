package vault

import (
	"os"
	"path/filepath"
	"testing"

	logger "github.com/stencil-cli/stencil/internal/logging"
)

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	key := testKey(t)

	store := newCredentialStore(path, logger.Logger{})
	store.set("github", Record{"token": "ghp_abc"})
	store.set("stripe", Record{"api_key": "sk_test"})
	if err := store.save(key); err != nil {
		t.Fatalf("failed to save store: %v", err)
	}

	reloaded := newCredentialStore(path, logger.Logger{})
	if err := reloaded.load(key); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	record, ok := reloaded.get("github")
	if !ok {
		t.Fatalf("expected github record after reload")
	}
	if record["token"] != "ghp_abc" {
		t.Errorf("expected token round-tripped, got %q", record["token"])
	}

	services := reloaded.services()
	if len(services) != 2 || services[0] != "github" || services[1] != "stripe" {
		t.Errorf("expected sorted service list [github stripe], got %v", services)
	}
}

func TestStoreLoadMissingFileStartsEmpty(t *testing.T) {
	store := newCredentialStore(filepath.Join(t.TempDir(), "credentials.enc"), logger.Logger{})
	if err := store.load(testKey(t)); err != nil {
		t.Fatalf("missing store file should not be an error: %v", err)
	}
	if len(store.services()) != 0 {
		t.Errorf("expected empty store, got %v", store.services())
	}
}

func TestStoreLoadCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")
	if err := os.WriteFile(path, []byte("garbage that is definitely not a sealed document"), 0600); err != nil {
		t.Fatalf("failed to write corrupt store: %v", err)
	}

	store := newCredentialStore(path, logger.Logger{})
	if err := store.load(testKey(t)); err != nil {
		t.Fatalf("corrupt store should warn and start empty, got %v", err)
	}
	if len(store.services()) != 0 {
		t.Errorf("expected empty store after corrupt load, got %v", store.services())
	}
}

func TestStoreSaveWritesOwnerOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	store := newCredentialStore(path, logger.Logger{})
	store.set("vercel", Record{"token": "v1_abc"})
	if err := store.save(testKey(t)); err != nil {
		t.Fatalf("failed to save store: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("store file was not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected store file mode 0600, got %o", perm)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file should not remain after save")
	}
}

func TestStoreRemoveReportsExistence(t *testing.T) {
	store := newCredentialStore(filepath.Join(t.TempDir(), "credentials.enc"), logger.Logger{})
	store.set("netlify", Record{"token": "nf_abc"})

	if !store.remove("netlify") {
		t.Errorf("expected remove of present record to report true")
	}
	if store.remove("netlify") {
		t.Errorf("expected remove of absent record to report false")
	}
}

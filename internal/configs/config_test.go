package configs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnsureUserConfig_CreatesInstallID(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	config, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	if config.InstallID == "" {
		t.Fatal("Expected install ID to be generated")
	}

	// Config file should exist on disk.
	path := filepath.Join(tempDir, ".stencil", "config.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("Expected config file at %s: %v", path, err)
	}

	// A second call returns the same ID.
	again, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("Second EnsureUserConfig failed: %v", err)
	}
	if again.InstallID != config.InstallID {
		t.Errorf("Install ID changed between calls: %s vs %s", config.InstallID, again.InstallID)
	}
}

func TestVaultDir_DefaultAndOverride(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)

	dir, err := VaultDir()
	if err != nil {
		t.Fatalf("VaultDir failed: %v", err)
	}
	expected := filepath.Join(tempDir, ".stencil", "vault")
	if dir != expected {
		t.Errorf("Expected default vault dir %s, got %s", expected, dir)
	}

	// Override via config.
	config, err := EnsureUserConfig()
	if err != nil {
		t.Fatalf("EnsureUserConfig failed: %v", err)
	}
	config.VaultDir = filepath.Join(tempDir, "custom-vault")
	path, _ := ConfigPath()
	if err := SaveTOML(path, config); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	dir, err = VaultDir()
	if err != nil {
		t.Fatalf("VaultDir with override failed: %v", err)
	}
	if dir != config.VaultDir {
		t.Errorf("Expected overridden vault dir %s, got %s", config.VaultDir, dir)
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	in := UserConfig{InstallID: "abc-123", DefaultTemplate: "react-ts"}
	if err := SaveTOML(path, in); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	var out UserConfig
	if err := LoadTOML(path, &out); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if out.InstallID != in.InstallID || out.DefaultTemplate != in.DefaultTemplate {
		t.Errorf("Round trip mismatch: %+v vs %+v", out, in)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Config file was not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("Expected config file mode 0600, got %o", perm)
	}
}

func TestLoadTOML_NamesPathOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("not = = valid"), 0600); err != nil {
		t.Fatalf("Failed to write broken file: %v", err)
	}

	var out UserConfig
	err := LoadTOML(path, &out)
	if err == nil {
		t.Fatal("Expected error for broken TOML")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("Expected error to name the file, got %q", err.Error())
	}
}

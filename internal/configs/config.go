package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

// UserConfig holds the per-user Stencil settings stored at
// ~/.stencil/config.toml.
type UserConfig struct {
	// InstallID is a random UUID generated on first use. It identifies this
	// installation in exported documents and diagnostics; it is not a secret.
	InstallID string `toml:"install_id"`

	// VaultDir overrides the default vault directory when set.
	VaultDir string `toml:"vault_dir,omitempty"`

	// DefaultTemplate is the project template used by `stencil new` when no
	// template is given.
	DefaultTemplate string `toml:"default_template,omitempty"`
}

// ConfigDir returns the Stencil config directory, ~/.stencil.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".stencil"), nil
}

// ConfigPath returns the path to the user config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadUserConfig loads the user config from disk.
func LoadUserConfig() (*UserConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var config UserConfig
	if err := LoadTOML(path, &config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}
	return &config, nil
}

// EnsureUserConfig loads the user config, creating it with a fresh install
// UUID if it does not exist yet. An existing config missing an install ID is
// upgraded in place.
func EnsureUserConfig() (*UserConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	config := &UserConfig{}
	if _, statErr := os.Stat(path); statErr == nil {
		config, err = LoadUserConfig()
		if err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(statErr) {
		return nil, fmt.Errorf("failed to check user config: %w", statErr)
	}

	if config.InstallID == "" {
		config.InstallID = uuid.NewString()
		if err := SaveTOML(path, config); err != nil {
			return nil, fmt.Errorf("failed to save user config: %w", err)
		}
	}

	return config, nil
}

// SaveTOML encodes data as TOML at path, creating parent directories as
// needed. The file is owner read/write only since the config dir sits next
// to the vault.
func SaveTOML(path string, data any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(data); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// LoadTOML decodes the TOML file at path into data.
func LoadTOML(path string, data any) error {
	if _, err := toml.DecodeFile(path, data); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// VaultDir resolves the vault directory: the config override when set,
// otherwise ~/.stencil/vault.
func VaultDir() (string, error) {
	config, err := EnsureUserConfig()
	if err != nil {
		return "", err
	}
	if config.VaultDir != "" {
		return config.VaultDir, nil
	}

	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault"), nil
}

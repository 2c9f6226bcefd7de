package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureConfigExists writes the commented template to configPath unless a
// file is already there. It reports whether a file was created.
func EnsureConfigExists(fs afero.Fs, configPath string) (bool, error) {
	exists, err := afero.Exists(fs, configPath)
	if err != nil {
		return false, fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		return false, nil
	}

	if err := fs.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := afero.WriteFile(fs, configPath, []byte(configTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config template: %w", err)
	}

	return true, nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kettleby/dossier/internal/constants"
)

// InitError reports a settings file that exists but cannot serve as a
// starting snapshot.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("config %s unusable: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

func GetConfigPath(homeDir string) string {
	return filepath.Join(
		homeDir,
		constants.ConfigDir,
		constants.ConfigFile+"."+constants.ConfigFileType,
	)
}

// EnsureConfigExists creates an empty settings file when none is present
// so that Load always has something to read.
func EnsureConfigExists(homeDir string) error {
	configPath := GetConfigPath(homeDir)
	configDir := filepath.Dir(configPath)

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		file, err := os.Create(configPath)
		if err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		file.Close()
	} else if err != nil {
		return fmt.Errorf("failed to check config file existence: %w", err)
	}

	if _, err := Load(homeDir); err != nil {
		return &InitError{Path: configPath, Err: err}
	}

	return nil
}

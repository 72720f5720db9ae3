package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Init loads the configuration for workingDir and makes sure the data
// directory exists.
func Init(workingDir string, debug bool) (*Config, error) {
	cfg, err := Load(workingDir, debug)
	if err != nil {
		return nil, err
	}
	if err := ensureDataDirectory(cfg.DataDir()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ensureDataDirectory creates dir with a .gitignore so logs and seeded
// stores never end up in version control.
func ensureDataDirectory(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory %q: %w", dir, err)
	}
	gitIgnorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitIgnorePath, []byte("*\n"), 0o644); err != nil {
			return fmt.Errorf("failed to create .gitignore file: %w", err)
		}
	}
	return nil
}

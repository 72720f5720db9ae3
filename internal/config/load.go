package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/qjebbs/go-jsons"
)

// Load reads the global, user data and project config files, merges them
// over the defaults, then applies VSCROLL_* environment variables.
func Load(workingDir string, debug bool) (*Config, error) {
	paths := ConfigPaths(workingDir)
	cfg, err := loadFromPaths(paths)
	if err != nil {
		return nil, err
	}
	cfg.workingDir = workingDir
	cfg.dataConfigDir = GlobalConfigData()

	FromEnv(cfg)
	if debug {
		cfg.Options.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ConfigPaths lists the config files Load merges, lowest precedence first.
func ConfigPaths(cwd string) []string {
	return []string{
		GlobalConfig(),
		GlobalConfigData(),
		filepath.Join(cwd, appName+".json"),
		filepath.Join(cwd, "."+appName+".json"),
	}
}

func loadFromPaths(paths []string) (*Config, error) {
	defaults, err := json.Marshal(Defaults())
	if err != nil {
		return nil, err
	}
	readers := []io.Reader{bytes.NewReader(defaults)}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}
		slog.Debug("Loading config file", "path", path)
		readers = append(readers, bytes.NewReader(data))
	}
	return loadFromReaders(readers)
}

func loadFromReaders(readers []io.Reader) (*Config, error) {
	merged, err := jsons.Merge(readers)
	if err != nil {
		return nil, fmt.Errorf("failed to merge config files: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(merged, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// GlobalConfig returns the path to the main config file for the user.
func GlobalConfig() string {
	if path := os.Getenv("VSCROLL_GLOBAL_CONFIG"); path != "" {
		return path
	}
	xdgConfigHome := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, appName+".json")
	}
	return filepath.Join(homeDir(), ".config", appName, appName+".json")
}

// GlobalConfigData returns the path to the config file that `config set`
// writes to.
func GlobalConfigData() string {
	if path := os.Getenv("VSCROLL_GLOBAL_DATA"); path != "" {
		return path
	}
	xdgDataHome := os.Getenv("XDG_DATA_HOME")
	if xdgDataHome != "" {
		return filepath.Join(xdgDataHome, appName, appName+".json")
	}

	// for windows, it should be in `%LOCALAPPDATA%/vscroll/`
	// for linux and macOS, it should be in `$HOME/.local/share/vscroll/`
	if runtime.GOOS == "windows" {
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}
		return filepath.Join(localAppData, appName, appName+".json")
	}
	return filepath.Join(homeDir(), ".local", "share", appName, appName+".json")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/vscroll/internal/scroller"
	"github.com/charmbracelet/vscroll/internal/source"
	"github.com/tidwall/sjson"
)

const (
	appName              = "vscroll"
	defaultDataDirectory = ".vscroll"
	defaultHeight        = "100%"
	defaultTheme         = "dark"
)

// SourceOptions selects where rows come from.
type SourceOptions struct {
	Kind string `json:"kind"`
	Path string `json:"path,omitempty"`
	// Limit caps the generated source; 0 means unbounded.
	Limit int64 `json:"limit,omitempty"`
	// FromStart makes the file source read existing lines before following.
	FromStart bool `json:"from_start"`
}

// ListOptions are the scroller knobs.
type ListOptions struct {
	// Height is a line count or a percentage of the terminal, e.g. "100%".
	Height     any `json:"height"`
	RowHeight  int `json:"row_height"`
	PageSize   int `json:"page_size"`
	Buffer     int `json:"buffer"`
	Threshold  int `json:"threshold"`
	ThrottleMS int `json:"throttle_ms"`
}

type TUIOptions struct {
	Theme string `json:"theme"`
	Mouse bool   `json:"mouse"`
}

type Options struct {
	Debug         bool   `json:"debug,omitempty"`
	DataDirectory string `json:"data_directory,omitempty"` // Relative to the cwd
}

// Config holds the configuration for vscroll.
type Config struct {
	Source  *SourceOptions `json:"source,omitempty"`
	List    *ListOptions   `json:"list,omitempty"`
	TUI     *TUIOptions    `json:"tui,omitempty"`
	Options *Options       `json:"options,omitempty"`

	// Internal
	workingDir    string `json:"-"`
	dataConfigDir string `json:"-"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() *Config {
	return &Config{
		Source: &SourceOptions{
			Kind:      string(source.KindGenerator),
			FromStart: true,
		},
		List: &ListOptions{
			Height:     defaultHeight,
			RowHeight:  1,
			PageSize:   scroller.DefaultPageSize,
			Buffer:     scroller.DefaultBuffer,
			Threshold:  scroller.DefaultThreshold,
			ThrottleMS: int(scroller.DefaultThrottleWait / time.Millisecond),
		},
		TUI: &TUIOptions{
			Theme: defaultTheme,
			Mouse: true,
		},
		Options: &Options{
			DataDirectory: defaultDataDirectory,
		},
	}
}

func (c *Config) WorkingDir() string {
	return c.workingDir
}

// Throttle returns the scroll throttle interval.
func (c *Config) Throttle() time.Duration {
	return time.Duration(c.List.ThrottleMS) * time.Millisecond
}

// DataDir returns the absolute data directory.
func (c *Config) DataDir() string {
	if filepath.IsAbs(c.Options.DataDirectory) {
		return c.Options.DataDirectory
	}
	return filepath.Join(c.workingDir, c.Options.DataDirectory)
}

// LogFile returns the path of the log file inside the data directory.
func (c *Config) LogFile() string {
	return filepath.Join(c.DataDir(), "logs", appName+".log")
}

// Validate checks the fields the scroller does not validate itself.
func (c *Config) Validate() error {
	if !slices.Contains(source.Kinds, source.Kind(c.Source.Kind)) {
		return fmt.Errorf("unknown source %q, expected one of %v", c.Source.Kind, source.Kinds)
	}
	if c.Source.Limit < 0 {
		return fmt.Errorf("source limit must not be negative, got %d", c.Source.Limit)
	}
	if c.List.ThrottleMS < 0 {
		return fmt.Errorf("throttle must not be negative, got %dms", c.List.ThrottleMS)
	}
	if c.TUI.Theme != "dark" && c.TUI.Theme != "light" {
		return fmt.Errorf("unknown theme %q", c.TUI.Theme)
	}
	return nil
}

// String renders the effective configuration as indented JSON.
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return string(data)
}

// SetConfigField writes one dotted key to the user data config file.
func (c *Config) SetConfigField(key string, value any) error {
	// read the data
	data, err := os.ReadFile(c.dataConfigDir)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	newValue, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("failed to set config field %s: %w", key, err)
	}
	if err := os.MkdirAll(filepath.Dir(c.dataConfigDir), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(c.dataConfigDir, []byte(newValue), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// SetGlobalField writes one dotted key to the user data config file without
// loading the current configuration.
func SetGlobalField(key string, value any) error {
	c := &Config{dataConfigDir: GlobalConfigData()}
	return c.SetConfigField(key, value)
}

package config

import (
	"os"
	"strconv"
	"strings"
)

// FromEnv overlays VSCROLL_* environment variables onto cfg. Values that do
// not parse are ignored.
func FromEnv(cfg *Config) {
	if v := os.Getenv("VSCROLL_SOURCE"); v != "" {
		cfg.Source.Kind = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("VSCROLL_PATH"); v != "" {
		cfg.Source.Path = v
	}
	if v := os.Getenv("VSCROLL_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Source.Limit = n
		}
	}
	if v := os.Getenv("VSCROLL_FROM_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Source.FromStart = b
		}
	}
	if v := os.Getenv("VSCROLL_HEIGHT"); v != "" {
		cfg.List.Height = v
	}
	setInt("VSCROLL_ROW_HEIGHT", &cfg.List.RowHeight)
	setInt("VSCROLL_PAGE_SIZE", &cfg.List.PageSize)
	setInt("VSCROLL_BUFFER", &cfg.List.Buffer)
	setInt("VSCROLL_THRESHOLD", &cfg.List.Threshold)
	setInt("VSCROLL_THROTTLE_MS", &cfg.List.ThrottleMS)
	if v := os.Getenv("VSCROLL_THEME"); v != "" {
		cfg.TUI.Theme = v
	}
	if v := os.Getenv("VSCROLL_MOUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.TUI.Mouse = b
		}
	}
	if v := os.Getenv("VSCROLL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Options.Debug = b
		}
	}
	if v := os.Getenv("VSCROLL_DATA_DIRECTORY"); v != "" {
		cfg.Options.DataDirectory = v
	}
}

func setInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

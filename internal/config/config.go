// Package config loads the optional YAML settings file and resolves default
// paths under the XDG base directories.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitlog/internal/constants"
	"github.com/julianstephens/habitlog/internal/utils"
)

// Theme holds the presentation colors as hex strings.
type Theme struct {
	Accent  string `yaml:"accent"`
	Success string `yaml:"success"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`
	Muted   string `yaml:"muted"`
	Border  string `yaml:"border"`
}

// Settings is the contents of config.yaml.
type Settings struct {
	Theme          Theme  `yaml:"theme"`
	RecentLogLimit int    `yaml:"recent_log_limit"`
	Timezone       string `yaml:"timezone"`
}

// DefaultTheme is the Catppuccin Mocha palette.
func DefaultTheme() Theme {
	return Theme{
		Accent:  "#cba6f7",
		Success: "#a6e3a1",
		Error:   "#f38ba8",
		Info:    "#89b4fa",
		Muted:   "#6c7086",
		Border:  "#45475a",
	}
}

func Default() Settings {
	return Settings{
		Theme:          DefaultTheme(),
		RecentLogLimit: constants.DefaultRecentLogLimit,
		Timezone:       "Local",
	}
}

// DefaultSettingsPath is $XDG_CONFIG_HOME/habitlog/config.yaml.
func DefaultSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, constants.AppName, constants.SettingsFileName)
}

// DefaultDatabasePath is $XDG_DATA_HOME/habitlog/habitlog.db.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, constants.AppName, constants.DatabaseFileName)
}

// ConfigDir is the directory holding settings and logs.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, constants.AppName)
}

// Load reads settings from path. A missing file yields the defaults; fields
// left out of the file keep their default values.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		path = DefaultSettingsPath()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return settings, nil
	}
	if err != nil {
		return settings, fmt.Errorf("failed to read settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings file: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return settings, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path, creating the parent directory.
func Save(settings Settings, path string) error {
	if path == "" {
		path = DefaultSettingsPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

func (s Settings) Validate() error {
	if s.RecentLogLimit <= 0 {
		return fmt.Errorf("recent_log_limit must be positive, got %d", s.RecentLogLimit)
	}
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("unknown timezone %q", s.Timezone)
	}
	return nil
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/habitlog/internal/constants"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if settings.RecentLogLimit != constants.DefaultRecentLogLimit {
		t.Errorf("RecentLogLimit = %d, want %d", settings.RecentLogLimit, constants.DefaultRecentLogLimit)
	}
	if settings.Theme != DefaultTheme() {
		t.Errorf("Theme = %+v, want defaults", settings.Theme)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "recent_log_limit: 20\ntheme:\n  accent: \"#ffffff\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if settings.RecentLogLimit != 20 {
		t.Errorf("RecentLogLimit = %d, want 20", settings.RecentLogLimit)
	}
	if settings.Theme.Accent != "#ffffff" {
		t.Errorf("Theme.Accent = %q, want #ffffff", settings.Theme.Accent)
	}
	if settings.Theme.Error != DefaultTheme().Error {
		t.Errorf("Theme.Error = %q, want default", settings.Theme.Error)
	}
	if settings.Timezone != "Local" {
		t.Errorf("Timezone = %q, want Local", settings.Timezone)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad yaml", "theme: [", "failed to parse"},
		{"zero limit", "recent_log_limit: 0", "recent_log_limit"},
		{"bad timezone", "timezone: Nowhere/Invalid", "unknown timezone"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Default()
	want.RecentLogLimit = 7
	want.Timezone = "UTC"

	if err := Save(want, path); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != want {
		t.Errorf("Load() = %+v, want %+v", got, want)
	}
}

func TestDefaultPaths(t *testing.T) {
	if !strings.HasSuffix(DefaultSettingsPath(), filepath.Join(constants.AppName, constants.SettingsFileName)) {
		t.Errorf("DefaultSettingsPath() = %q", DefaultSettingsPath())
	}
	if !strings.HasSuffix(DefaultDatabasePath(), filepath.Join(constants.AppName, constants.DatabaseFileName)) {
		t.Errorf("DefaultDatabasePath() = %q", DefaultDatabasePath())
	}
}

// ABOUTME: Tests for configuration load/save and path handling.
// ABOUTME: Uses XDG_CONFIG_HOME overrides for isolation.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != "" || cfg.ColorScheme != "" {
		t.Errorf("Expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{DataDir: "/tmp/daytrack-data"}
	if err := cfg.SetColorScheme(SchemeDark); err != nil {
		t.Fatalf("SetColorScheme failed: %v", err)
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.DataDir != cfg.DataDir {
		t.Errorf("DataDir mismatch: got %q, want %q", got.DataDir, cfg.DataDir)
	}
	if got.ColorScheme != SchemeDark {
		t.Errorf("ColorScheme mismatch: got %q, want %q", got.ColorScheme, SchemeDark)
	}

	// Config file is private
	info, err := os.Stat(GetConfigPath())
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %v", info.Mode().Perm())
	}
}

func TestSetColorSchemeRejectsUnknown(t *testing.T) {
	cfg := &Config{}
	if err := cfg.SetColorScheme("solarized"); err == nil {
		t.Error("Expected error for unknown scheme")
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	if got := ExpandPath("~"); got != home {
		t.Errorf("ExpandPath(~) = %q, want %q", got, home)
	}
	if got := ExpandPath("~/data"); got != filepath.Join(home, "data") {
		t.Errorf("ExpandPath(~/data) = %q", got)
	}
	if got := ExpandPath("/abs/path"); got != "/abs/path" {
		t.Errorf("ExpandPath(/abs/path) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(\"\") = %q", got)
	}
}

func TestGetDataDirDefault(t *testing.T) {
	cfg := &Config{}
	if !strings.HasSuffix(cfg.GetDataDir(), "daytrack") {
		t.Errorf("Expected default data dir ending in daytrack, got %q", cfg.GetDataDir())
	}
}

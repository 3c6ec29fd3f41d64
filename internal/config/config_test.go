package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != defaultTheme {
		t.Fatalf("Theme = %q, want %q", cfg.Theme, defaultTheme)
	}
	if !cfg.Follow {
		t.Fatalf("Follow = false, want true by default")
	}
	if cfg.ScanBudget != defaultBudgetMS*time.Millisecond {
		t.Fatalf("ScanBudget = %v, want %v", cfg.ScanBudget, defaultBudgetMS*time.Millisecond)
	}
}

func TestLoad_ParsesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`
theme = "Solarized"
follow = false
scan_budget_ms = 120
time_format = "15:04:05"
`), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Theme != "Solarized" {
		t.Fatalf("Theme = %q, want Solarized", cfg.Theme)
	}
	if cfg.Follow {
		t.Fatalf("Follow = true, want false")
	}
	if cfg.ScanBudget != 120*time.Millisecond {
		t.Fatalf("ScanBudget = %v, want 120ms", cfg.ScanBudget)
	}
	if cfg.TimeFormat != "15:04:05" {
		t.Fatalf("TimeFormat = %q, want 15:04:05", cfg.TimeFormat)
	}
}

func TestLoad_MalformedConfigErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("theme = ["), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("Load on malformed config succeeded, want error")
	}
}

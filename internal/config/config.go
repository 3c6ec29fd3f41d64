package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures loupe's settings.
type Config struct {
	Theme      string
	Follow     bool          // start in follow (auto-tail) mode
	ScanBudget time.Duration // per-tick scan budget
	TimeFormat string        // timestamp display format
}

const (
	defaultConfigPath = "~/.config/loupe/config.toml"
	defaultTheme      = "Dracula"
	defaultBudgetMS   = 50
	defaultTimeFormat = "15:04:05.000"
)

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Theme:      defaultTheme,
		Follow:     true,
		ScanBudget: defaultBudgetMS * time.Millisecond,
		TimeFormat: defaultTimeFormat,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Theme        string `toml:"theme"`
		Follow       *bool  `toml:"follow"`
		ScanBudgetMS int    `toml:"scan_budget_ms"`
		TimeFormat   string `toml:"time_format"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if raw.Follow != nil {
		cfg.Follow = *raw.Follow
	}
	if raw.ScanBudgetMS > 0 {
		cfg.ScanBudget = time.Duration(raw.ScanBudgetMS) * time.Millisecond
	}
	if tf := strings.TrimSpace(raw.TimeFormat); tf != "" {
		cfg.TimeFormat = tf
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

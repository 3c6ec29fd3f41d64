package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/loupedev/loupe/internal/record"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Nord" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Nord Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Nord" {
		t.Fatalf("NextTheme(Dracula) = %q, want Nord", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	nord := GetTheme("Nord")
	if nord.Name != "Nord" {
		t.Fatalf("GetTheme(Nord).Name = %q, want Nord", nord.Name)
	}

	unknown := GetTheme("Unknown")
	if unknown.Name != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", unknown.Name)
	}
}

func TestLevelStyleFallback(t *testing.T) {
	th := GetTheme("Dracula")

	for _, lvl := range []record.Level{record.LevelTrace, record.LevelDebug,
		record.LevelInfo, record.LevelWarn, record.LevelError, record.LevelFatal} {
		if _, ok := th.LevelColors[lvl]; !ok {
			t.Fatalf("Dracula has no color for level %v", lvl)
		}
	}

	// A record that carried no usable severity falls back to the plain color.
	plain := th.LevelStyle(record.LevelNone)
	if got := plain.GetForeground(); got != lipgloss.Color(th.PlainColor) {
		t.Fatalf("LevelStyle(none) foreground = %v, want %v", got, th.PlainColor)
	}
}

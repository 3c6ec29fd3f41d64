package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loupedev/loupe/internal/record"
)

// Theme defines colors for the UI.
type Theme struct {
	Name string

	Background string
	Text       string
	Muted      string
	Faint      string
	Accent     string
	Border     string

	SelectionBg   string // cursor row background
	SelectionText string
	Marked        string // selection-set gutter marks

	// Level colors keyed by severity.
	LevelColors map[record.Level]string
	// Fallback color for undecodable (plain text) records.
	PlainColor string

	Success string
	Warning string
	Danger  string
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text)),
		Muted: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),
		Faint: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Faint)),

		Accent: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Accent)).Bold(true),

		Cursor: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Marked: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Marked)).Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		StatusBar: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)),

		Success: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Success)),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Danger:  lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)).Bold(true),

		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)),
	}
}

// Styles bundles the lipgloss styles derived from a Theme.
type Styles struct {
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Faint  lipgloss.Style
	Accent lipgloss.Style

	Cursor lipgloss.Style
	Marked lipgloss.Style

	Header    lipgloss.Style
	StatusBar lipgloss.Style

	Success lipgloss.Style
	Warning lipgloss.Style
	Danger  lipgloss.Style

	Border lipgloss.Style
}

// LevelStyle returns the style for a severity badge.
func (t Theme) LevelStyle(lvl record.Level) lipgloss.Style {
	if c, ok := t.LevelColors[lvl]; ok {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	if lvl >= record.LevelNone {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(t.PlainColor))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Text))
}

func draculaTheme() Theme {
	return Theme{
		Name:          "Dracula",
		Background:    "#282a36",
		Text:          "#f8f8f2",
		Muted:         "#9aa0b0",
		Faint:         "#6272a4",
		Accent:        "#bd93f9",
		Border:        "#44475a",
		SelectionBg:   "#44475a",
		SelectionText: "#f8f8f2",
		Marked:        "#ff79c6",
		LevelColors: map[record.Level]string{
			record.LevelTrace: "#6272a4",
			record.LevelDebug: "#8be9fd",
			record.LevelInfo:  "#50fa7b",
			record.LevelWarn:  "#f1fa8c",
			record.LevelError: "#ff5555",
			record.LevelFatal: "#ff5555",
		},
		PlainColor: "#9aa0b0",
		Success:    "#50fa7b",
		Warning:    "#f1fa8c",
		Danger:     "#ff5555",
	}
}

func nordTheme() Theme {
	return Theme{
		Name:          "Nord",
		Background:    "#2e3440",
		Text:          "#eceff4",
		Muted:         "#aeb6c5",
		Faint:         "#616e88",
		Accent:        "#88c0d0",
		Border:        "#4c566a",
		SelectionBg:   "#434c5e",
		SelectionText: "#eceff4",
		Marked:        "#b48ead",
		LevelColors: map[record.Level]string{
			record.LevelTrace: "#616e88",
			record.LevelDebug: "#81a1c1",
			record.LevelInfo:  "#a3be8c",
			record.LevelWarn:  "#ebcb8b",
			record.LevelError: "#bf616a",
			record.LevelFatal: "#bf616a",
		},
		PlainColor: "#aeb6c5",
		Success:    "#a3be8c",
		Warning:    "#ebcb8b",
		Danger:     "#bf616a",
	}
}

func slateTheme() Theme {
	return Theme{
		Name:          "Slate",
		Background:    "#1e222a",
		Text:          "#d8dee9",
		Muted:         "#8a93a5",
		Faint:         "#5c6370",
		Accent:        "#61afef",
		Border:        "#3e4452",
		SelectionBg:   "#3e4452",
		SelectionText: "#d8dee9",
		Marked:        "#c678dd",
		LevelColors: map[record.Level]string{
			record.LevelTrace: "#5c6370",
			record.LevelDebug: "#56b6c2",
			record.LevelInfo:  "#98c379",
			record.LevelWarn:  "#e5c07b",
			record.LevelError: "#e06c75",
			record.LevelFatal: "#e06c75",
		},
		PlainColor: "#8a93a5",
		Success:    "#98c379",
		Warning:    "#e5c07b",
		Danger:     "#e06c75",
	}
}

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Nord":    nordTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Nord", "Slate"}

// GetTheme returns a theme by name, defaulting to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	names := make([]string, len(themeOrder))
	copy(names, themeOrder)
	return names
}

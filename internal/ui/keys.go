package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the viewer.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Top      key.Binding
	Bottom   key.Binding
	Tail     key.Binding

	// Selection
	ToggleSelect key.Binding
	NextSelected key.Binding
	PrevSelected key.Binding

	// Search
	Search     key.Binding
	SearchBack key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding

	// Filters
	FilterExpr    key.Binding
	FilterField   key.Binding
	FilterExclude key.Binding
	FilterText    key.Binding
	PopFilter     key.Binding
	ClearFilters  key.Binding
	CycleLevel    key.Binding

	// Modes
	ToggleSort   key.Binding
	ToggleDetail key.Binding
	ClearAll     key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close prompt/pane"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "Page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First match"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last match"),
		),
		Tail: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Follow tail"),
		),

		ToggleSelect: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "Mark record"),
		),
		NextSelected: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Next marked"),
		),
		PrevSelected: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Previous marked"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search forward"),
		),
		SearchBack: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Search backward"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Repeat search"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Repeat search (reverse)"),
		),

		FilterExpr: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Push filter expression"),
		),
		FilterField: key.NewBinding(
			key.WithKeys("="),
			key.WithHelp("=", "Filter on field=value"),
		),
		FilterExclude: key.NewBinding(
			key.WithKeys("!"),
			key.WithHelp("!", "Exclude field=value"),
		),
		FilterText: key.NewBinding(
			key.WithKeys("~"),
			key.WithHelp("~", "Filter on text"),
		),
		PopFilter: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Pop last filter"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("P"),
			key.WithHelp("P", "Clear filters"),
		),
		CycleLevel: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Cycle level threshold"),
		),

		ToggleSort: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Toggle timestamp order"),
		),
		ToggleDetail: key.NewBinding(
			key.WithKeys("enter", "d"),
			key.WithHelp("enter", "Toggle detail pane"),
		),
		ClearAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "Clear all records"),
		),
	}
}

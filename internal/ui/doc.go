// Package ui implements the terminal interface with Bubble Tea.
//
// # Overview
//
// The interface is a single full-screen view over the engine's matching
// index: a header with counts and active filters, the record list, an
// optional detail pane for the record under the cursor, and a status bar.
// Prompts for search and filter expressions open inline on the status
// line using a textinput component.
//
// # Architecture
//
// The Model never touches engine internals. Every refresh tick (100ms)
// it asks the engine for a Snapshot windowed to the visible row count
// and renders from that copy, so the scan loop keeps making progress
// while the user navigates. Key presses translate directly to engine
// commands (Move, Search, PushExpression, ...) followed by an immediate
// snapshot refresh, which keeps the view responsive between ticks.
//
// Record rows are colored by severity; the cursor row and selection
// marks use dedicated theme styles. Rendering helpers in format.go are
// pure functions over record values and are tested directly.
//
// Themes follow the usual map-plus-order arrangement: GetTheme resolves
// a name with a fallback and NextTheme cycles for the theme hotkey. The
// chosen theme and sort mode persist via the prefs package when the
// program exits or the user changes either one.
package ui

// Package app provides the orchestration layer for the Loupe application.
//
// # Overview
//
// This package is the composition root: it wires configuration, the record
// store, the scan engine, the source supervisor, and the UI together and
// runs them until the user quits or the context is cancelled.
//
// # Architecture
//
// Startup follows a fixed order:
//
//  1. Load configuration from ~/.config/loupe/config.toml
//  2. Load user preferences (theme, sort mode), missing file is fine
//  3. Build the source list from files, --command, and stdin
//  4. Create the store and engine, apply initial level and sort settings
//  5. Launch the engine scan loop and the source supervisor as goroutines
//  6. Start the TUI and block until exit
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> config.Load()       Read config
//	       ├─────> prefs.Load()        Read saved theme and sort mode
//	       ├─────> buildSources()      Files, command, stdin
//	       ├─────> engine.New()        Store + scan/filter pipeline
//	       ├─────> go eng.Run()        Incremental scan loop
//	       ├─────> go sup.Run()        One goroutine per source
//	       └─────> ui.Run()            Start TUI (blocks)
//
//	Ingestion path:
//	  source line ──> engine.Append ──> decode ──> store ──> scan queue
//	  UI ticks pull engine.Snapshot() at its own refresh rate.
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Configuration file present but invalid
//   - No usable input source
//
// Recoverable errors (recorded per source, ingestion continues):
//   - A file disappearing or a command exiting non-zero
//   - Any single source failing; its siblings keep running
//
// # Settings Precedence
//
// Theme: --theme flag, then saved preference, then config file default.
// Sort mode: --sorted flag when given, otherwise the saved preference.
package app

package app

import (
	"context"
	"fmt"

	"github.com/loupedev/loupe/internal/config"
	"github.com/loupedev/loupe/internal/engine"
	"github.com/loupedev/loupe/internal/prefs"
	"github.com/loupedev/loupe/internal/record"
	"github.com/loupedev/loupe/internal/source"
	"github.com/loupedev/loupe/internal/store"
	"github.com/loupedev/loupe/internal/ui"
)

// Options configure the Loupe application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/loupe/prefs.toml

	Files    []string
	Command  string // run under "sh -c", stdout and stderr combined
	Stdin    bool
	NoFollow bool

	Level     record.Level // initial threshold, 0 = none
	Theme     string       // overrides prefs and config
	Sorted    bool
	SortedSet bool // Sorted came from a flag, not prefs
}

// Run boots the Loupe TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs := prefs.Load(prefsPath)

	sources, err := buildSources(opts, cfg)
	if err != nil {
		return err
	}

	st := &store.Store{}
	eng := engine.New(st, cfg.ScanBudget)
	if opts.Level > 0 {
		eng.SetLevelFilter(opts.Level)
	}
	if opts.SortedSet {
		eng.SetSorted(opts.Sorted)
	} else {
		eng.SetSorted(userPrefs.Sorted)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go eng.Run(ctx)

	sup := &source.Supervisor{}
	go func() {
		_ = sup.Run(ctx, eng, sources)
	}()

	theme := opts.Theme
	if theme == "" {
		theme = userPrefs.Theme
	}
	if theme == "" {
		theme = cfg.Theme
	}

	return ui.Run(ui.Options{
		Context:    ctx,
		Engine:     eng,
		Supervisor: sup,
		Config:     &cfg,
		ThemeName:  theme,
		PrefsPath:  prefsPath,
		Level:      opts.Level,
	})
}

// buildSources assembles the configured source list: files first, then the
// command, then stdin, so source indexes are stable for a given invocation.
func buildSources(opts Options, cfg config.Config) ([]source.Source, error) {
	follow := cfg.Follow && !opts.NoFollow

	var sources []source.Source
	for _, path := range opts.Files {
		sources = append(sources, &source.File{Path: path, Follow: follow})
	}
	if opts.Command != "" {
		sources = append(sources, &source.Command{
			Name:    "sh",
			Args:    []string{"-c", opts.Command},
			Display: opts.Command,
		})
	}
	if opts.Stdin {
		sources = append(sources, &source.Stdin{})
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no input: pass log files, --command, or pipe stdin")
	}
	return sources, nil
}

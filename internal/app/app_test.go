package app

import (
	"testing"

	"github.com/loupedev/loupe/internal/config"
	"github.com/loupedev/loupe/internal/source"
)

func TestBuildSourcesOrdering(t *testing.T) {
	opts := Options{
		Files:   []string{"a.log", "b.log"},
		Command: "journalctl -f",
		Stdin:   true,
	}
	sources, err := buildSources(opts, config.Config{Follow: true})
	if err != nil {
		t.Fatalf("buildSources() error = %v", err)
	}
	if len(sources) != 4 {
		t.Fatalf("buildSources() returned %d sources, want 4", len(sources))
	}

	// Files first, then command, then stdin.
	if f, ok := sources[0].(*source.File); !ok || f.Path != "a.log" {
		t.Fatalf("sources[0] = %#v, want file a.log", sources[0])
	}
	if c, ok := sources[2].(*source.Command); !ok || c.Label() != "journalctl -f" {
		t.Fatalf("sources[2] = %#v, want the command", sources[2])
	}
	if _, ok := sources[3].(*source.Stdin); !ok {
		t.Fatalf("sources[3] = %#v, want stdin", sources[3])
	}
}

func TestBuildSourcesFollow(t *testing.T) {
	opts := Options{Files: []string{"a.log"}}

	sources, err := buildSources(opts, config.Config{Follow: true})
	if err != nil {
		t.Fatalf("buildSources() error = %v", err)
	}
	if !sources[0].(*source.File).Follow {
		t.Fatal("file source should follow when config enables it")
	}

	opts.NoFollow = true
	sources, err = buildSources(opts, config.Config{Follow: true})
	if err != nil {
		t.Fatalf("buildSources() error = %v", err)
	}
	if sources[0].(*source.File).Follow {
		t.Fatal("--no-follow should override the config")
	}
}

func TestBuildSourcesEmpty(t *testing.T) {
	if _, err := buildSources(Options{}, config.Config{}); err == nil {
		t.Fatal("buildSources() with no input should fail")
	}
}

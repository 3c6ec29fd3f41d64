package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	isatty "github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/loupedev/loupe/internal/app"
	"github.com/loupedev/loupe/internal/record"
	"github.com/loupedev/loupe/internal/ui"
)

var (
	flagConfig   string
	flagCommand  string
	flagLevel    string
	flagTheme    string
	flagSorted   bool
	flagNoFollow bool

	rootCmd = &cobra.Command{
		Use:   "loupe [file...]",
		Short: "An interactive viewer for streaming structured logs",
		Long: `Loupe tails files, command output, and stdin, decodes each line
as newline-delimited JSON where possible, and presents the merged
stream with incremental filtering, search, and record marking.

Plain files are read line by line; .gz files are decompressed. With no
file arguments, loupe reads a piped stdin or the --command output.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}
)

func init() {
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "config file path (default ~/.config/loupe/config.toml)")
	rootCmd.Flags().StringVarP(&flagCommand, "command", "c", "", "run a command and view its combined output")
	rootCmd.Flags().StringVar(&flagLevel, "level", "", "initial minimum severity (trace, debug, info, warn, error, fatal)")
	rootCmd.Flags().StringVar(&flagTheme, "theme", "", "color theme: "+strings.Join(ui.ThemeNames(), ", "))
	rootCmd.Flags().BoolVar(&flagSorted, "sorted", false, "order records by timestamp instead of arrival")
	rootCmd.Flags().BoolVar(&flagNoFollow, "no-follow", false, "read files to the end and stop, do not tail")
}

func runRoot(cmd *cobra.Command, args []string) error {
	opts := app.Options{
		ConfigPath: flagConfig,
		Files:      args,
		Command:    flagCommand,
		Theme:      flagTheme,
		NoFollow:   flagNoFollow,
		Sorted:     flagSorted,
		SortedSet:  cmd.Flags().Changed("sorted"),
	}

	if flagLevel != "" {
		lvl, ok := record.ParseLevel(flagLevel)
		if !ok {
			return fmt.Errorf("unknown level %q", flagLevel)
		}
		opts.Level = lvl
	}

	// Stdin counts as a source only when something is actually piped in.
	if len(args) == 0 && flagCommand == "" && stdinPiped() {
		opts.Stdin = true
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return app.Run(ctx, opts)
}

func stdinPiped() bool {
	fd := os.Stdin.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

func main() {
	ctx := context.Background()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "loupe: %v\n", err)
		os.Exit(1)
	}
}

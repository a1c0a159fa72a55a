package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/aimcourse/ragdemo/internal/domain/ports"
	"github.com/aimcourse/ragdemo/internal/ui/tui"
)

// isTerminal reports whether a writer is a TTY.
var isTerminal = defaultIsTerminal

// runProgram is a test seam for the Bubble Tea program.
var runProgram = func(ctx context.Context, resolver ports.QueryResolver, store ports.CatalogStore, initialSlide int, out io.Writer, opts tui.Options) error {
	return tui.Run(ctx, resolver, store, initialSlide, out, opts)
}

// runTUI builds the handler for the tui command.
func runTUI(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to ragdemo.yaml")
		noColor := fs.Bool("no-color", false, "Disable colors")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if fs.NArg() > 0 {
			fmt.Fprintln(stderr, "Too many arguments")
			return ExitUsage
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := loadRuntime(ctx, *configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}

		if !isTerminal(stdout) {
			fmt.Fprintln(stderr, "stdout is not a TTY; printing the chart and slides instead.")
			if err := tui.RenderPlain(stdout, rt.store.Snapshot()); err != nil {
				fmt.Fprintf(stderr, "Output error: %v\n", err)
				return ExitError
			}
			return ExitOK
		}

		rt.watchContent(ctx)
		if err := runProgram(ctx, rt.resolver, rt.store, rt.cfg.Slides.Initial, stdout, tui.Options{NoColor: *noColor}); err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		return ExitOK
	}
}

// defaultIsTerminal inspects stdout for TTY support.
func defaultIsTerminal(stdout io.Writer) bool {
	if stdout == nil {
		return false
	}
	if file, ok := stdout.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stdout.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

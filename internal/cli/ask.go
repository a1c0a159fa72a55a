package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aimcourse/ragdemo/internal/domain/entities"
	"github.com/aimcourse/ragdemo/internal/domain/usecases"
)

// textView prints panel output as plain text.
// It implements ports.PanelView and ports.Notifier.
type textView struct {
	out io.Writer
	err io.Writer
}

func (v textView) SetLoading(visible bool) {
	if visible {
		fmt.Fprintln(v.err, "Searching documents...")
	}
}

func (v textView) SetResultsVisible(bool) {}

func (v textView) Render(view entities.ResultView) {
	fmt.Fprintf(v.out, "Q: %s\n\n%s\n\nSources:\n", view.Query, view.Answer)
	for _, row := range view.Citations {
		fmt.Fprintln(v.out, usecases.FormatCitationLine(row))
	}
}

func (v textView) Alert(alert entities.Alert) {
	fmt.Fprintln(v.err, alert.Message)
}

// runAsk builds the handler for the ask command.
func runAsk(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to ragdemo.yaml")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}

		ctx := context.Background()
		rt, err := loadRuntime(ctx, *configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}

		view := textView{out: stdout, err: stderr}
		panel := usecases.NewQueryPanel(rt.resolver, view, view, nil)
		panel.SetInput(strings.Join(fs.Args(), " "))

		err = panel.SubmitQuery(ctx)
		switch {
		case err == nil:
			return ExitOK
		case errors.Is(err, usecases.ErrEmptyQuery):
			return ExitUsage
		default:
			return ExitError
		}
	}
}

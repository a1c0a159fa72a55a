package cli

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aimcourse/ragdemo/internal/adapters/metrics"
)

// runMetrics builds the handler for the metrics command.
func runMetrics(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		rawA := fs.String("a", "", "First vector, comma separated")
		rawB := fs.String("b", "", "Second vector, comma separated")
		name := fs.String("metric", "", "Only this metric")
		if err := fs.Parse(args); err != nil {
			return ExitUsage
		}
		if *rawA == "" || *rawB == "" {
			fmt.Fprintln(stderr, "Missing --a or --b")
			return ExitUsage
		}

		a, err := parseVector(*rawA)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --a: %v\n", err)
			return ExitUsage
		}
		b, err := parseVector(*rawB)
		if err != nil {
			fmt.Fprintf(stderr, "Invalid --b: %v\n", err)
			return ExitUsage
		}

		if *name != "" {
			m, err := metrics.Lookup(*name)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitUsage
			}
			score, err := m.Score(a, b)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return ExitError
			}
			fmt.Fprintf(stdout, "%-12s %.4f\n", m.Name, score)
			return ExitOK
		}

		scores, err := metrics.Compare(a, b)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		for _, s := range scores {
			fmt.Fprintf(stdout, "%-12s %.4f\n", s.Metric, s.Value)
		}
		return ExitOK
	}
}

func parseVector(raw string) ([]float64, error) {
	parts := strings.Split(raw, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out = append(out, v)
	}
	return out, nil
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
)

// runSamples builds the handler for the samples command.
func runSamples(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
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

		rt, err := loadRuntime(context.Background(), *configPath)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitError
		}
		for i, q := range rt.store.Snapshot().SampleQueries {
			fmt.Fprintf(stdout, "%d. %s\n", i+1, q)
		}
		return ExitOK
	}
}

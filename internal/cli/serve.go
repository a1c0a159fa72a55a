package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	httpserver "github.com/aimcourse/ragdemo/internal/infrastructure/http"
)

// startServer is a test seam for running the web front-end.
var startServer = func(ctx context.Context, srv *httpserver.Server) error {
	return srv.Start(ctx)
}

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		fs := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		fs.SetOutput(stderr)
		configPath := fs.String("config", "", "Path to ragdemo.yaml")
		addr := fs.String("addr", "", "Address to listen on (overrides server.listen_addr)")
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
		listenAddr := rt.cfg.Server.ListenAddr
		if *addr != "" {
			listenAddr = *addr
		}

		srv, err := httpserver.NewServer(rt.resolver, rt.store, httpserver.Options{
			Addr:         listenAddr,
			InitialSlide: rt.cfg.Slides.Initial,
		})
		if err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}

		rt.watchContent(ctx)
		fmt.Fprintf(stdout, "Serving RAG demo at http://%s\n", displayAddr(listenAddr))
		if err := startServer(ctx, srv); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// displayAddr turns ":8000" into "localhost:8000".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

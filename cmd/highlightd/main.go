// Package main serves syntax highlighting over JSON-RPC on standard input
// and output, for use as the codeview rpc backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tuikit/internal/app"
	"github.com/dshills/tuikit/internal/renderer/highlight"
	"github.com/dshills/tuikit/internal/syntax"
	"github.com/dshills/tuikit/internal/syntax/lexer"
	"github.com/dshills/tuikit/internal/syntax/rpc"
)

func main() {
	os.Exit(run())
}

func run() int {
	var chromaOnly bool
	var logLevel string
	flag.BoolVar(&chromaOnly, "chroma", false, "Use only the chroma lexers")
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Parse()

	// Standard output carries the protocol, so logs go to standard error.
	log := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(logLevel),
		Output: os.Stderr,
		Prefix: "highlightd",
	})

	var client syntax.Client = lexer.New()
	if !chromaOnly {
		client = syntax.Chain(highlight.NewClient(nil), client)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("serving on stdio")
	if err := rpc.NewServer(client).Serve(ctx, rpc.Stdio()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	log.Info("client disconnected")
	return 0
}

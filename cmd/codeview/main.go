// Package main is the entry point for the codeview terminal viewer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/dshills/tuikit/internal/app"
	"github.com/dshills/tuikit/internal/config"
	"github.com/dshills/tuikit/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type flags struct {
	configPath  string
	language    string
	backend     string
	theme       string
	logLevel    string
	dump        bool
	printConfig bool
	noWatch     bool
	path        string
}

func main() {
	os.Exit(run())
}

func run() int {
	f := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	overrides := f.overrides()
	if f.printConfig {
		return printConfig(f.configPath, overrides)
	}

	var content string
	if f.path == "" {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: no file given")
			flag.Usage()
			return 2
		}
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
			return 1
		}
		content = string(data)
	}

	if f.dump || !term.IsTerminal(int(os.Stdout.Fd())) {
		return dump(ctx, f, content, overrides)
	}

	application, err := app.New(app.Options{
		Path:       f.path,
		Content:    content,
		Language:   f.language,
		ConfigPath: f.configPath,
		Overrides:  overrides,
		Watch:      !f.noWatch && f.path != "",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Close()

	terminal, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(terminal); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	if err := application.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// dump highlights the content once and prints it.
func dump(ctx context.Context, f flags, content string, overrides func(*config.Config)) int {
	cfg, err := config.Load(f.configPath)
	if err == nil {
		overrides(&cfg)
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	name := "<stdin>"
	if f.path != "" {
		data, err := os.ReadFile(f.path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		content = string(data)
		name = f.path
	}

	logger := app.NewLogger(app.LoggerConfig{
		Level:  app.ParseLogLevel(cfg.Log.Level),
		Output: os.Stderr,
		Prefix: "codeview",
	})

	client, closers, err := app.NewClient(ctx, cfg.Highlight, logger, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() {
		for _, c := range closers {
			c.Close()
		}
	}()

	err = app.Dump(ctx, os.Stdout, client, content, app.DumpOptions{
		Name:     name,
		Language: app.DetectLanguage(firstNonEmpty(f.language, cfg.Highlight.Language), f.path),
		Conceal:  cfg.Highlight.Conceal,
		Logger:   logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printConfig(path string, overrides func(*config.Config)) int {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	overrides(&cfg)
	data, err := cfg.Marshal()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	os.Stdout.Write(data)
	return 0
}

// overrides applies the command-line flags over a loaded config.
func (f flags) overrides() func(*config.Config) {
	return func(cfg *config.Config) {
		if f.backend != "" {
			cfg.Highlight.Backend = f.backend
		}
		if f.theme != "" {
			cfg.Theme.Name = f.theme
			cfg.Theme.File = ""
		}
		if f.logLevel != "" {
			cfg.Log.Level = f.logLevel
		}
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseFlags() flags {
	var f flags
	var showVersion, showHelp bool

	flag.StringVar(&f.configPath, "config", config.DefaultPath(), "Path to configuration file")
	flag.StringVar(&f.configPath, "c", config.DefaultPath(), "Path to configuration file (shorthand)")
	flag.StringVar(&f.language, "lang", "", "Language of the file (default: detected from the extension)")
	flag.StringVar(&f.language, "l", "", "Language of the file (shorthand)")
	flag.StringVar(&f.backend, "backend", "", "Highlighter: simple, chroma, lua or rpc")
	flag.StringVar(&f.theme, "theme", "", "Color theme name")
	flag.StringVar(&f.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.BoolVar(&f.dump, "dump", false, "Print the highlighted text and its spans instead of opening the viewer")
	flag.BoolVar(&f.printConfig, "print-config", false, "Print the effective configuration and exit")
	flag.BoolVar(&f.noWatch, "no-watch", false, "Do not reload the file when it changes")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		name := filepath.Base(os.Args[0])
		fmt.Fprintf(os.Stderr, "codeview - terminal file viewer with background syntax highlighting\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [file]\n\n", name)
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nKeys:\n")
		fmt.Fprintf(os.Stderr, "  q, Esc     quit\n")
		fmt.Fprintf(os.Stderr, "  j/k, h/l   scroll\n")
		fmt.Fprintf(os.Stderr, "  c          toggle conceal\n")
		fmt.Fprintf(os.Stderr, "  s          toggle streaming\n")
		fmt.Fprintf(os.Stderr, "  u          toggle drawing unstyled text before highlighting\n")
		fmt.Fprintf(os.Stderr, "  t          next theme\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if showVersion {
		fmt.Printf("codeview %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if f.logLevel != "" {
		switch f.logLevel {
		case "debug", "info", "warn", "error":
		default:
			fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", f.logLevel)
			os.Exit(2)
		}
	}

	switch flag.NArg() {
	case 0:
	case 1:
		f.path = flag.Arg(0)
	default:
		fmt.Fprintln(os.Stderr, "Error: codeview views one file at a time")
		os.Exit(2)
	}
	return f
}

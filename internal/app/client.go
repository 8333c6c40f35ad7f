package app

import (
	"context"
	"fmt"
	"io"

	"github.com/dshills/tuikit/internal/config"
	"github.com/dshills/tuikit/internal/renderer/highlight"
	"github.com/dshills/tuikit/internal/syntax"
	"github.com/dshills/tuikit/internal/syntax/lexer"
	"github.com/dshills/tuikit/internal/syntax/rpc"
	"github.com/dshills/tuikit/internal/syntax/script"
)

// NewClient builds the highlight client cfg selects. Closers that must be
// released when the client is no longer needed are returned alongside it.
func NewClient(ctx context.Context, cfg config.HighlightConfig, log *Logger, stderr io.Writer) (syntax.Client, []io.Closer, error) {
	var (
		client  syntax.Client
		closers []io.Closer
	)

	switch cfg.Backend {
	case config.BackendSimple, "":
		// Languages the built-in highlighters do not know fall through
		// to chroma.
		client = syntax.Chain(highlight.NewClient(nil), lexer.New())

	case config.BackendChroma:
		client = lexer.New()

	case config.BackendLua:
		printLog := log.WithComponent("lua")
		c, err := script.Load(cfg.LuaScript, script.WithPrint(func(s string) {
			printLog.Debug("%s", s)
		}))
		if err != nil {
			return nil, nil, NewComponentError("highlighter", "load script", err)
		}
		client = c

	case config.BackendRPC:
		if len(cfg.RPCCommand) == 0 {
			return nil, nil, NewComponentError("highlighter", "spawn", fmt.Errorf("rpc backend needs rpc_command"))
		}
		p, err := rpc.Spawn(ctx, stderr, cfg.RPCCommand[0], cfg.RPCCommand[1:]...)
		if err != nil {
			return nil, nil, NewComponentError("highlighter", "spawn", err)
		}
		client = p
		closers = append(closers, p)

	default:
		return nil, nil, NewComponentError("highlighter", "", fmt.Errorf("unknown backend %q", cfg.Backend))
	}

	return syntax.WithTimeout(client, cfg.Timeout.Std()), closers, nil
}

// DetectLanguage picks the language for path. An explicit language wins;
// otherwise the built-in highlighters are asked first, then chroma.
func DetectLanguage(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	if path == "" {
		return ""
	}
	if lang := highlight.DefaultRegistry().LanguageForPath(path); lang != "" {
		return lang
	}
	return lexer.LanguageForPath(path)
}

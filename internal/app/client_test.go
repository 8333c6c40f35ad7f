package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/tuikit/internal/config"
	"github.com/dshills/tuikit/internal/syntax"
)

func TestNewClient(t *testing.T) {
	script := filepath.Join(t.TempDir(), "todo.lua")
	if err := os.WriteFile(script, []byte(`
function highlight(content, language)
  print("highlighting " .. language)
  return {{start = 1, finish = 4, scope = "keyword"}}
end
`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		cfg       config.HighlightConfig
		language  string
		content   string
		wantScope string
	}{
		{
			name:      "simple",
			cfg:       config.HighlightConfig{Backend: config.BackendSimple},
			language:  "go",
			content:   "func main() {}",
			wantScope: "keyword",
		},
		{
			name:      "simple falls back to chroma",
			cfg:       config.HighlightConfig{Backend: config.BackendSimple},
			language:  "c",
			content:   "int main(void) { return 0; }",
			wantScope: "keyword",
		},
		{
			name:      "chroma",
			cfg:       config.HighlightConfig{Backend: config.BackendChroma},
			language:  "go",
			content:   "func main() {}",
			wantScope: "keyword",
		},
		{
			name:      "lua",
			cfg:       config.HighlightConfig{Backend: config.BackendLua, LuaScript: script},
			language:  "go",
			content:   "TODO later",
			wantScope: "keyword",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			client, closers, err := NewClient(context.Background(), tt.cfg, NullLogger, nil)
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			if len(closers) != 0 {
				t.Errorf("unexpected closers %v", closers)
			}
			res, err := client.Highlight(context.Background(), tt.content, tt.language)
			if err != nil {
				t.Fatalf("Highlight: %v", err)
			}
			if !hasScopePrefix(res.Highlights, tt.wantScope) {
				t.Errorf("no %q span in %+v", tt.wantScope, res.Highlights)
			}
		})
	}
}

func hasScopePrefix(spans []syntax.Span, prefix string) bool {
	for _, sp := range spans {
		if sp.Scope == prefix || strings.HasPrefix(sp.Scope, prefix+".") {
			return true
		}
	}
	return false
}

func TestNewClientErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.HighlightConfig
		want string
	}{
		{"unknown backend", config.HighlightConfig{Backend: "tree-sitter"}, "unknown backend"},
		{"rpc without command", config.HighlightConfig{Backend: config.BackendRPC}, "rpc_command"},
		{"missing lua script", config.HighlightConfig{Backend: config.BackendLua, LuaScript: filepath.Join(t.TempDir(), "none.lua")}, "load script"},
		{"rpc command not found", config.HighlightConfig{Backend: config.BackendRPC, RPCCommand: []string{filepath.Join(t.TempDir(), "no-such-server")}}, "spawn"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewClient(context.Background(), tt.cfg, NullLogger, nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestNewClientTimeout(t *testing.T) {
	cfg := config.HighlightConfig{Backend: config.BackendChroma}
	plain, _, err := NewClient(context.Background(), cfg, NullLogger, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := plain.(interface{ Supports(string) bool }); !ok {
		t.Errorf("client without timeout should be the lexer, got %T", plain)
	}

	cfg.Timeout = config.Duration(50_000_000)
	wrapped, _, err := NewClient(context.Background(), cfg, NullLogger, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := wrapped.(interface{ Supports(string) bool }); ok {
		t.Errorf("client with timeout should be wrapped, got %T", wrapped)
	}
}

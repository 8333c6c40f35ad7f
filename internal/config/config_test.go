package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.Highlight.Backend != BackendSimple {
		t.Errorf("backend = %q", cfg.Highlight.Backend)
	}
	if !cfg.Highlight.Conceal || !cfg.Highlight.DrawUnstyledBeforeReady || cfg.Highlight.Streaming {
		t.Errorf("unexpected flag defaults: %+v", cfg.Highlight)
	}
	if cfg.View.TabWidth != 4 {
		t.Errorf("tab width = %d", cfg.View.TabWidth)
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
[highlight]
backend = "chroma"
language = "go"
streaming = true
conceal = false
debounce = "30ms"
timeout = "2s"

[theme]
name = "dracula"

[log]
level = "debug"
file = "/tmp/tuikit.log"

[view]
tab_width = 8
relative_line_numbers = true
`)
	cfg, err := Parse("test.toml", data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := Default()
	want.Highlight.Backend = BackendChroma
	want.Highlight.Language = "go"
	want.Highlight.Streaming = true
	want.Highlight.Conceal = false
	want.Highlight.Debounce = Duration(30 * time.Millisecond)
	want.Highlight.Timeout = Duration(2 * time.Second)
	want.Theme.Name = "dracula"
	want.Log = LogConfig{Level: "debug", File: "/tmp/tuikit.log"}
	want.View.TabWidth = 8
	want.View.RelativeLineNumbers = true

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantLine int
	}{
		{"syntax", "[highlight]\nbackend = \n", 2},
		{"unknown key", "[highlight]\nbackend = \"simple\"\ncolour = 1\n", 3},
		{"bad duration", "[highlight]\ndebounce = \"soon\"\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.toml", []byte(tt.data))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("err = %v, want *ParseError", err)
			}
			if perr.Path != "bad.toml" {
				t.Errorf("Path = %q", perr.Path)
			}
			if tt.wantLine > 0 && perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (%v)", perr.Line, tt.wantLine, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		path   string
		code   ValidationErrorCode
	}{
		{"backend", func(c *Config) { c.Highlight.Backend = "vim" }, "highlight.backend", ErrCodeInvalidEnum},
		{"debounce", func(c *Config) { c.Highlight.Debounce = -1 }, "highlight.debounce", ErrCodeOutOfRange},
		{"timeout", func(c *Config) { c.Highlight.Timeout = -1 }, "highlight.timeout", ErrCodeOutOfRange},
		{"lua script", func(c *Config) { c.Highlight.Backend = BackendLua }, "highlight.lua_script", ErrCodeRequiredMissing},
		{"rpc command", func(c *Config) { c.Highlight.Backend = BackendRPC }, "highlight.rpc_command", ErrCodeRequiredMissing},
		{"tab width", func(c *Config) { c.View.TabWidth = 0 }, "view.tab_width", ErrCodeOutOfRange},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level", ErrCodeInvalidEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrValidationFailed) {
				t.Fatalf("err = %v, want validation failure", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Path != tt.path || verr.Code != tt.code {
				t.Errorf("got %s (%v), want %s (%v)", verr.Path, verr.Code, tt.path, tt.code)
			}
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Highlight.Backend = "vim"
	cfg.View.TabWidth = 99

	err := cfg.Validate()
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		t.Fatalf("err = %T, want joined errors", err)
	}
	if n := len(joined.Unwrap()); n != 2 {
		t.Errorf("got %d errors, want 2: %v", n, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[view]\ntab_width = 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.TabWidth != 2 {
		t.Errorf("tab width = %d, want 2", cfg.View.TabWidth)
	}

	t.Setenv("TUIKIT_TAB_WIDTH", "6")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.View.TabWidth != 6 {
		t.Errorf("environment should win, tab width = %d", cfg.View.TabWidth)
	}
}

func TestLoadMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.toml")

	cfg, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}

	if _, err := LoadFile(missing); !errors.Is(err, ErrFileNotFound) {
		t.Errorf("LoadFile err = %v, want ErrFileNotFound", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Highlight.Backend = BackendRPC
	cfg.Highlight.RPCCommand = []string{"highlightd", "-v"}
	cfg.Highlight.Debounce = Duration(250 * time.Millisecond)

	data, err := cfg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Parse("round.toml", data)
	if err != nil {
		t.Fatalf("Parse: %v\n%s", err, data)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	got := DefaultPath()
	if filepath.Base(got) != "config.toml" || filepath.Base(filepath.Dir(got)) != "tuikit" {
		t.Errorf("DefaultPath() = %q", got)
	}
}

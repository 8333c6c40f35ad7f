// Package config loads tuikit settings.
//
// Settings come from three places, later ones winning:
//
//  1. Built-in defaults (Default)
//  2. A TOML file, by default ~/.config/tuikit/config.toml
//  3. TUIKIT_* environment variables
//
// An example file:
//
//	[highlight]
//	backend = "chroma"
//	streaming = true
//	debounce = "30ms"
//
//	[theme]
//	name = "dracula"
//
//	[view]
//	tab_width = 8
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Highlight backends.
const (
	BackendSimple = "simple"
	BackendChroma = "chroma"
	BackendLua    = "lua"
	BackendRPC    = "rpc"
)

// Backends lists the valid values of highlight.backend.
var Backends = []string{BackendSimple, BackendChroma, BackendLua, BackendRPC}

// Config holds every tuikit setting.
type Config struct {
	Highlight HighlightConfig `toml:"highlight"`
	Theme     ThemeConfig     `toml:"theme"`
	Log       LogConfig       `toml:"log"`
	View      ViewConfig      `toml:"view"`
}

// HighlightConfig selects and tunes the highlighter.
type HighlightConfig struct {
	// Backend is one of Backends.
	Backend string `toml:"backend"`

	// Language overrides detection from the file name.
	Language string `toml:"language"`

	Streaming               bool `toml:"streaming"`
	Conceal                 bool `toml:"conceal"`
	DrawUnstyledBeforeReady bool `toml:"draw_unstyled_before_ready"`

	// Debounce delays each highlight until edits have been quiet this long.
	// Zero coalesces per executor turn only.
	Debounce Duration `toml:"debounce"`

	// Timeout turns a highlight that runs longer into a failure. Zero
	// means no timeout.
	Timeout Duration `toml:"timeout"`

	// LuaScript is the script run by the lua backend.
	LuaScript string `toml:"lua_script"`

	// RPCCommand is the server command line for the rpc backend.
	RPCCommand []string `toml:"rpc_command"`
}

// ThemeConfig selects the color theme.
type ThemeConfig struct {
	// Name is a built-in theme name. Ignored when File is set.
	Name string `toml:"name"`

	// File is a YAML theme file.
	File string `toml:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level"`

	// File receives log output. Empty discards logs while the UI runs.
	File string `toml:"file"`
}

// ViewConfig configures drawing.
type ViewConfig struct {
	TabWidth            int  `toml:"tab_width"`
	LineNumbers         bool `toml:"line_numbers"`
	RelativeLineNumbers bool `toml:"relative_line_numbers"`
	StatusLine          bool `toml:"status_line"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Highlight: HighlightConfig{
			Backend:                 BackendSimple,
			Conceal:                 true,
			DrawUnstyledBeforeReady: true,
		},
		Theme: ThemeConfig{Name: "Default Dark"},
		Log:   LogConfig{Level: "info"},
		View: ViewConfig{
			TabWidth:    4,
			LineNumbers: true,
			StatusLine:  true,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tuikit", "config.toml")
}

// Load reads the file at path over the defaults, applies environment
// overrides and validates the result. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		err := cfg.loadFile(path)
		if err != nil && !errors.Is(err, ErrFileNotFound) {
			return cfg, err
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadFile reads the file at path over the defaults without consulting the
// environment.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	return c.decode(path, data)
}

// Parse decodes TOML data over the defaults. Unknown keys are errors.
func Parse(source string, data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(source, data); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(source string, data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		perr := &ParseError{Path: source, Message: err.Error(), Err: err}

		var strict *toml.StrictMissingError
		var derr *toml.DecodeError
		switch {
		case errors.As(err, &strict) && len(strict.Errors) > 0:
			perr.Line, perr.Column = strict.Errors[0].Position()
			perr.Message = "unknown key " + strings.Join(strict.Errors[0].Key(), ".")
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		}
		return perr
	}
	return nil
}

// Marshal encodes the settings as TOML.
func (c Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks every setting and returns all failures joined.
func (c Config) Validate() error {
	var errs []error

	if !contains(Backends, c.Highlight.Backend) {
		errs = append(errs, &ValidationError{
			Path:    "highlight.backend",
			Message: "must be one of " + strings.Join(Backends, ", "),
			Value:   c.Highlight.Backend,
			Code:    ErrCodeInvalidEnum,
		})
	}
	if c.Highlight.Debounce < 0 {
		errs = append(errs, &ValidationError{
			Path: "highlight.debounce", Message: "must not be negative",
			Value: c.Highlight.Debounce.Std(), Code: ErrCodeOutOfRange,
		})
	}
	if c.Highlight.Timeout < 0 {
		errs = append(errs, &ValidationError{
			Path: "highlight.timeout", Message: "must not be negative",
			Value: c.Highlight.Timeout.Std(), Code: ErrCodeOutOfRange,
		})
	}
	if c.Highlight.Backend == BackendLua && c.Highlight.LuaScript == "" {
		errs = append(errs, &ValidationError{
			Path: "highlight.lua_script", Message: "required by the lua backend",
			Value: "", Code: ErrCodeRequiredMissing,
		})
	}
	if c.Highlight.Backend == BackendRPC && len(c.Highlight.RPCCommand) == 0 {
		errs = append(errs, &ValidationError{
			Path: "highlight.rpc_command", Message: "required by the rpc backend",
			Value: "", Code: ErrCodeRequiredMissing,
		})
	}
	if c.View.TabWidth < 1 || c.View.TabWidth > 16 {
		errs = append(errs, &ValidationError{
			Path: "view.tab_width", Message: "must be between 1 and 16",
			Value: c.View.TabWidth, Code: ErrCodeOutOfRange,
		})
	}
	if !contains(LogLevels, strings.ToLower(c.Log.Level)) {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be one of " + strings.Join(LogLevels, ", "),
			Value:   c.Log.Level,
			Code:    ErrCodeInvalidEnum,
		})
	}
	return errors.Join(errs...)
}

// LogLevels lists the valid values of log.level.
var LogLevels = []string{"debug", "info", "warn", "error"}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

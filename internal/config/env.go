package config

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "TUIKIT_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

type envSetting struct {
	name  string
	path  string
	apply func(c *Config, v string) error
}

// envSettings maps environment variables to settings.
var envSettings = []envSetting{
	{"BACKEND", "highlight.backend", func(c *Config, v string) error {
		c.Highlight.Backend = strings.ToLower(v)
		return nil
	}},
	{"LANGUAGE", "highlight.language", func(c *Config, v string) error {
		c.Highlight.Language = v
		return nil
	}},
	{"STREAMING", "highlight.streaming", boolSetter(func(c *Config) *bool { return &c.Highlight.Streaming })},
	{"CONCEAL", "highlight.conceal", boolSetter(func(c *Config) *bool { return &c.Highlight.Conceal })},
	{"DRAW_UNSTYLED", "highlight.draw_unstyled_before_ready", boolSetter(func(c *Config) *bool {
		return &c.Highlight.DrawUnstyledBeforeReady
	})},
	{"DEBOUNCE", "highlight.debounce", durationSetter(func(c *Config) *Duration { return &c.Highlight.Debounce })},
	{"TIMEOUT", "highlight.timeout", durationSetter(func(c *Config) *Duration { return &c.Highlight.Timeout })},
	{"LUA_SCRIPT", "highlight.lua_script", func(c *Config, v string) error {
		c.Highlight.LuaScript = v
		return nil
	}},
	{"RPC_COMMAND", "highlight.rpc_command", func(c *Config, v string) error {
		c.Highlight.RPCCommand = strings.Fields(v)
		return nil
	}},
	{"THEME", "theme.name", func(c *Config, v string) error {
		c.Theme.Name = v
		return nil
	}},
	{"THEME_FILE", "theme.file", func(c *Config, v string) error {
		c.Theme.File = v
		return nil
	}},
	{"LOG_LEVEL", "log.level", func(c *Config, v string) error {
		c.Log.Level = strings.ToLower(v)
		return nil
	}},
	{"LOG_FILE", "log.file", func(c *Config, v string) error {
		c.Log.File = v
		return nil
	}},
	{"TAB_WIDTH", "view.tab_width", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.View.TabWidth = n
		return nil
	}},
	{"LINE_NUMBERS", "view.line_numbers", boolSetter(func(c *Config) *bool { return &c.View.LineNumbers })},
}

// ApplyEnv overrides settings from TUIKIT_* variables found by lookup.
// Empty values are treated as set. Every malformed value is reported.
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	var errs []error
	for _, s := range envSettings {
		v, ok := lookup(EnvPrefix + s.name)
		if !ok {
			continue
		}
		if err := s.apply(c, v); err != nil {
			errs = append(errs, &ValidationError{
				Path:    s.path,
				Message: EnvPrefix + s.name + ": " + err.Error(),
				Value:   v,
				Code:    ErrCodeTypeMismatch,
			})
		}
	}
	return errors.Join(errs...)
}

// EnvNames returns the recognised environment variable names.
func EnvNames() []string {
	names := make([]string, len(envSettings))
	for i, s := range envSettings {
		names[i] = EnvPrefix + s.name
	}
	return names
}

func boolSetter(field func(*Config) *bool) func(*Config, string) error {
	return func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "1", "true", "yes", "on":
			*field(c) = true
		case "0", "false", "no", "off", "":
			*field(c) = false
		default:
			return errors.New("invalid boolean")
		}
		return nil
	}
}

func durationSetter(field func(*Config) *Duration) func(*Config, string) error {
	return func(c *Config, v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*field(c) = Duration(d)
		return nil
	}
}

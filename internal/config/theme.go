package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dshills/tuikit/internal/renderer/core"
	"github.com/dshills/tuikit/internal/renderer/highlight"
)

// A theme file is YAML:
//
//	name: Solarized Dark
//	extends: default dark
//	background: "#002b36"
//	foreground: "#839496"
//	gutter: {fg: "#586e75"}
//	status_line: {fg: "#fdf6e3", shade: 0.1}
//	scopes:
//	  comment: {fg: "#93a1a1", fade: 0.4, attrs: italic}
//	  keyword: "#859900"
//	  markup.heading: {fg: "#cb4b16", attrs: "bold underline"}
//
// A scalar style is a foreground color. Colors are hex ("#rgb" or
// "#rrggbb"), a 0-255 palette index, or "default". fade blends the
// foreground toward the background by the given amount. shade derives a
// missing bg from the theme background: positive values lighten it and
// negative values darken it.
type themeFile struct {
	Name       string               `yaml:"name"`
	Extends    string               `yaml:"extends"`
	Background string               `yaml:"background"`
	Foreground string               `yaml:"foreground"`
	Gutter     *styleSpec           `yaml:"gutter"`
	StatusLine *styleSpec           `yaml:"status_line"`
	Scopes     map[string]styleSpec `yaml:"scopes"`
}

type styleSpec struct {
	Fg    string  `yaml:"fg"`
	Bg    string  `yaml:"bg"`
	Attrs string  `yaml:"attrs"`
	Fade  float64 `yaml:"fade"`
	Shade float64 `yaml:"shade"`
}

func (s *styleSpec) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		*s = styleSpec{Fg: n.Value}
		return nil
	}
	type plain styleSpec
	var p plain
	if err := n.Decode(&p); err != nil {
		return err
	}
	*s = styleSpec(p)
	return nil
}

// LoadTheme reads a YAML theme file. Themes named by extends are looked up
// in themes, which may be nil to allow only the built-ins.
func LoadTheme(path string, themes *highlight.ThemeRegistry) (*highlight.Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("reading theme file %s: %w", path, err)
	}
	return ParseTheme(path, data, themes)
}

// ParseTheme decodes a YAML theme. A theme without extends starts from
// the default theme.
func ParseTheme(source string, data []byte, themes *highlight.ThemeRegistry) (*highlight.Theme, error) {
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &ParseError{Path: source, Message: err.Error(), Err: err}
	}
	if themes == nil {
		themes = highlight.NewThemeRegistry()
	}

	base := highlight.DefaultTheme()
	if f.Extends != "" {
		t, ok := themes.Get(f.Extends)
		if !ok {
			return nil, fmt.Errorf("%s: extends: %w %q", source, ErrUnknownTheme, f.Extends)
		}
		base = t
	}
	theme := base.Clone()
	if f.Name != "" {
		theme.Name = f.Name
	}

	var errs []error
	setColor := func(path, value string, dst *core.Color) {
		if value == "" {
			return
		}
		c, err := parseColor(value)
		if err != nil {
			errs = append(errs, themeError(source, path, value, err))
			return
		}
		*dst = c
	}
	setColor("background", f.Background, &theme.Background)
	setColor("foreground", f.Foreground, &theme.Foreground)

	if f.Gutter != nil {
		style, err := f.Gutter.style(theme.Background)
		if err != nil {
			errs = append(errs, themeError(source, "gutter", *f.Gutter, err))
		} else {
			theme.Gutter = style
		}
	}
	if f.StatusLine != nil {
		style, err := f.StatusLine.style(theme.Background)
		if err != nil {
			errs = append(errs, themeError(source, "status_line", *f.StatusLine, err))
		} else {
			theme.StatusLine = style
		}
	}
	for scope, spec := range f.Scopes {
		style, err := spec.style(theme.Background)
		if err != nil {
			errs = append(errs, themeError(source, "scopes."+scope, spec, err))
			continue
		}
		theme.SetScope(strings.ToLower(scope), style)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return theme, nil
}

// ResolveTheme returns the theme cfg selects. A theme loaded from a file
// is registered in themes under its name.
func ResolveTheme(cfg ThemeConfig, themes *highlight.ThemeRegistry) (*highlight.Theme, error) {
	if cfg.File != "" {
		theme, err := LoadTheme(cfg.File, themes)
		if err != nil {
			return nil, err
		}
		themes.Register(theme)
		return theme, nil
	}
	name := cfg.Name
	if name == "" {
		return themes.Current(), nil
	}
	theme, ok := themes.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownTheme, name, strings.Join(themes.Names(), ", "))
	}
	return theme, nil
}

func (s styleSpec) style(background core.Color) (core.Style, error) {
	style := core.DefaultStyle()
	if s.Fg != "" {
		fg, err := parseColor(s.Fg)
		if err != nil {
			return style, err
		}
		style.Foreground = fg
	}
	if s.Bg != "" {
		bg, err := parseColor(s.Bg)
		if err != nil {
			return style, err
		}
		style.Background = bg
	}
	if s.Attrs != "" {
		attrs, err := core.ParseAttributes(s.Attrs)
		if err != nil {
			return style, err
		}
		style.Attributes = attrs
	}
	if s.Fade < 0 || s.Fade > 1 {
		return style, fmt.Errorf("fade %v out of range [0, 1]", s.Fade)
	}
	if s.Fade > 0 && !style.Foreground.IsDefault() && !background.IsDefault() {
		style.Foreground = style.Foreground.Blend(background, s.Fade)
	}
	if s.Shade < -1 || s.Shade > 1 {
		return style, fmt.Errorf("shade %v out of range [-1, 1]", s.Shade)
	}
	if s.Bg == "" && !background.IsDefault() {
		switch {
		case s.Shade > 0:
			style.Background = background.Lighten(s.Shade)
		case s.Shade < 0:
			style.Background = background.Darken(-s.Shade)
		}
	}
	return style, nil
}

func parseColor(s string) (core.Color, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "default") {
		return core.ColorDefault, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 255 {
			return core.Color{}, fmt.Errorf("palette index %d out of range", n)
		}
		return core.ColorFromIndex(uint8(n)), nil
	}
	return core.ColorFromHex(s)
}

func themeError(source, path string, value any, err error) error {
	return &ValidationError{
		Path:    source + ": " + path,
		Message: err.Error(),
		Value:   value,
		Code:    ErrCodeTypeMismatch,
	}
}

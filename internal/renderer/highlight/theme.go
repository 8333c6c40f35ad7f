package highlight

import (
	"sort"
	"strings"
	"sync"

	"github.com/dshills/tuikit/internal/renderer/core"
)

// Theme defines colors and styles for syntax highlighting.
type Theme struct {
	// Name is the display name of the theme.
	Name string

	// Background is the view background color.
	Background core.Color

	// Foreground is the default text color.
	Foreground core.Color

	// Gutter styles line numbers.
	Gutter core.Style

	// StatusLine styles the status line.
	StatusLine core.Style

	// Scopes maps dotted scope names to styles. Lookups fall back to the
	// nearest parent scope.
	Scopes map[string]core.Style
}

// Base returns the unhighlighted text style.
func (t *Theme) Base() core.Style {
	return core.NewStyle(t.Foreground).WithBackground(t.Background)
}

// StyleForScope returns the style for a scope, falling back to parent
// scopes and finally to the base style. Scopes without a background take
// the theme background.
func (t *Theme) StyleForScope(scope string) core.Style {
	for scope != "" {
		if style, ok := t.Scopes[scope]; ok {
			return t.Base().Merge(style)
		}
		i := strings.LastIndexByte(scope, '.')
		if i < 0 {
			break
		}
		scope = scope[:i]
	}
	return t.Base()
}

// StyleForToken returns the style for a token type.
func (t *Theme) StyleForToken(tokenType TokenType) core.Style {
	return t.StyleForScope(tokenType.Scope())
}

// SetScope sets the style for a scope.
func (t *Theme) SetScope(scope string, style core.Style) {
	if t.Scopes == nil {
		t.Scopes = make(map[string]core.Style)
	}
	t.Scopes[scope] = style
}

// Clone returns a deep copy of the theme.
func (t *Theme) Clone() *Theme {
	c := *t
	c.Scopes = make(map[string]core.Style, len(t.Scopes))
	for k, v := range t.Scopes {
		c.Scopes[k] = v
	}
	return &c
}

// DefaultTheme returns a sensible default dark theme.
func DefaultTheme() *Theme {
	// Colors
	comment := core.ColorFromRGB(106, 153, 85)   // Green
	keyword := core.ColorFromRGB(86, 156, 214)   // Blue
	control := core.ColorFromRGB(197, 134, 192)  // Purple
	str := core.ColorFromRGB(206, 145, 120)      // Orange
	number := core.ColorFromRGB(181, 206, 168)   // Light green
	function := core.ColorFromRGB(220, 220, 170) // Yellow
	typ := core.ColorFromRGB(78, 201, 176)       // Teal
	variable := core.ColorFromRGB(156, 220, 254) // Light blue
	invalid := core.ColorFromRGB(244, 71, 71)    // Red
	muted := core.ColorFromRGB(128, 128, 128)

	bg := core.ColorFromRGB(30, 30, 30)
	return &Theme{
		Name:       "Default Dark",
		Background: bg,
		Foreground: core.ColorFromRGB(212, 212, 212),
		Gutter:     core.NewStyle(core.ColorFromRGB(133, 133, 133)).WithBackground(bg),
		StatusLine: core.NewStyle(core.ColorFromRGB(255, 255, 255)).WithBackground(core.ColorFromRGB(0, 122, 204)),
		Scopes: map[string]core.Style{
			"comment":             core.NewStyle(comment).Italic(),
			"string":              core.NewStyle(str),
			"string.escape":       core.NewStyle(core.ColorFromRGB(215, 186, 125)),
			"string.regexp":       core.NewStyle(core.ColorFromRGB(209, 105, 105)),
			"number":              core.NewStyle(number),
			"keyword":             core.NewStyle(keyword),
			"keyword.control":     core.NewStyle(control),
			"operator":            core.DefaultStyle(),
			"punctuation":         core.NewStyle(muted),
			"variable":            core.NewStyle(variable),
			"constant":            core.NewStyle(core.ColorFromRGB(79, 193, 255)),
			"constant.language":   core.NewStyle(keyword),
			"function":            core.NewStyle(function),
			"type":                core.NewStyle(typ),
			"meta":                core.NewStyle(core.ColorFromRGB(220, 220, 170)),
			"invalid":             core.NewStyle(invalid).Bold(),
			"markup.heading":      core.NewStyle(keyword).Bold(),
			"markup.bold":         core.DefaultStyle().Bold(),
			"markup.italic":       core.DefaultStyle().Italic(),
			"markup.strike":       core.DefaultStyle().WithAttributes(core.AttrStrikethrough),
			"markup.code":         core.NewStyle(str),
			"markup.quote":        core.NewStyle(comment).Italic(),
			"markup.list":         core.NewStyle(keyword),
			"markup.link":         core.NewStyle(typ).Underline(),
			"markup.url":          core.NewStyle(typ).Underline(),
			"keyword.declaration": core.NewStyle(keyword),
		},
	}
}

// MonokaiTheme returns a Monokai-inspired theme.
func MonokaiTheme() *Theme {
	pink := core.ColorFromRGB(249, 38, 114)
	green := core.ColorFromRGB(166, 226, 46)
	yellow := core.ColorFromRGB(230, 219, 116)
	purple := core.ColorFromRGB(174, 129, 255)
	blue := core.ColorFromRGB(102, 217, 239)
	orange := core.ColorFromRGB(253, 151, 31)
	comment := core.ColorFromRGB(117, 113, 94)

	bg := core.ColorFromRGB(39, 40, 34)
	return &Theme{
		Name:       "Monokai",
		Background: bg,
		Foreground: core.ColorFromRGB(248, 248, 242),
		Gutter:     core.NewStyle(core.ColorFromRGB(144, 144, 138)).WithBackground(bg),
		StatusLine: core.NewStyle(core.ColorFromRGB(248, 248, 242)).WithBackground(core.ColorFromRGB(73, 72, 62)),
		Scopes: map[string]core.Style{
			"comment":             core.NewStyle(comment).Italic(),
			"string":              core.NewStyle(yellow),
			"string.escape":       core.NewStyle(purple),
			"number":              core.NewStyle(purple),
			"keyword":             core.NewStyle(pink),
			"keyword.declaration": core.NewStyle(blue).Italic(),
			"operator":            core.NewStyle(pink),
			"constant":            core.NewStyle(purple),
			"function":            core.NewStyle(green),
			"function.builtin":    core.NewStyle(blue),
			"type":                core.NewStyle(blue).Italic(),
			"variable.property":   core.NewStyle(orange),
			"meta":                core.NewStyle(green),
			"invalid":             core.NewStyle(core.ColorFromRGB(248, 248, 240)).WithBackground(pink),
			"markup.heading":      core.NewStyle(green).Bold(),
			"markup.bold":         core.NewStyle(orange).Bold(),
			"markup.italic":       core.NewStyle(yellow).Italic(),
			"markup.strike":       core.NewStyle(comment).WithAttributes(core.AttrStrikethrough),
			"markup.code":         core.NewStyle(purple),
			"markup.quote":        core.NewStyle(comment),
			"markup.list":         core.NewStyle(pink),
			"markup.link":         core.NewStyle(blue).Underline(),
		},
	}
}

// DraculaTheme returns a Dracula-inspired theme.
func DraculaTheme() *Theme {
	pink := core.ColorFromRGB(255, 121, 198)
	green := core.ColorFromRGB(80, 250, 123)
	yellow := core.ColorFromRGB(241, 250, 140)
	purple := core.ColorFromRGB(189, 147, 249)
	cyan := core.ColorFromRGB(139, 233, 253)
	orange := core.ColorFromRGB(255, 184, 108)
	comment := core.ColorFromRGB(98, 114, 164)

	bg := core.ColorFromRGB(40, 42, 54)
	return &Theme{
		Name:       "Dracula",
		Background: bg,
		Foreground: core.ColorFromRGB(248, 248, 242),
		Gutter:     core.NewStyle(comment).WithBackground(bg),
		StatusLine: core.NewStyle(core.ColorFromRGB(248, 248, 242)).WithBackground(core.ColorFromRGB(68, 71, 90)),
		Scopes: map[string]core.Style{
			"comment":           core.NewStyle(comment),
			"string":            core.NewStyle(yellow),
			"number":            core.NewStyle(purple),
			"keyword":           core.NewStyle(pink),
			"operator":          core.NewStyle(pink),
			"constant":          core.NewStyle(purple),
			"function":          core.NewStyle(green),
			"type":              core.NewStyle(cyan).Italic(),
			"variable.property": core.NewStyle(cyan),
			"meta":              core.NewStyle(green),
			"invalid":           core.NewStyle(core.ColorFromRGB(255, 85, 85)),
			"markup.heading":    core.NewStyle(purple).Bold(),
			"markup.bold":       core.NewStyle(orange).Bold(),
			"markup.italic":     core.NewStyle(yellow).Italic(),
			"markup.strike":     core.DefaultStyle().WithAttributes(core.AttrStrikethrough),
			"markup.code":       core.NewStyle(green),
			"markup.quote":      core.NewStyle(yellow).Italic(),
			"markup.list":       core.NewStyle(cyan),
			"markup.link":       core.NewStyle(cyan).Underline(),
		},
	}
}

// LightTheme returns a light theme.
func LightTheme() *Theme {
	blue := core.ColorFromRGB(0, 0, 255)
	green := core.ColorFromRGB(0, 128, 0)
	red := core.ColorFromRGB(163, 21, 21)
	teal := core.ColorFromRGB(38, 127, 153)
	brown := core.ColorFromRGB(121, 94, 38)
	purple := core.ColorFromRGB(175, 0, 219)

	bg := core.ColorFromRGB(255, 255, 255)
	return &Theme{
		Name:       "Light",
		Background: bg,
		Foreground: core.ColorFromRGB(0, 0, 0),
		Gutter:     core.NewStyle(core.ColorFromRGB(35, 120, 147)).WithBackground(bg),
		StatusLine: core.NewStyle(bg).WithBackground(core.ColorFromRGB(0, 122, 204)),
		Scopes: map[string]core.Style{
			"comment":         core.NewStyle(green).Italic(),
			"string":          core.NewStyle(red),
			"number":          core.NewStyle(core.ColorFromRGB(9, 134, 88)),
			"keyword":         core.NewStyle(blue),
			"keyword.control": core.NewStyle(purple),
			"constant":        core.NewStyle(blue),
			"function":        core.NewStyle(brown),
			"type":            core.NewStyle(teal),
			"variable":        core.NewStyle(core.ColorFromRGB(0, 16, 128)),
			"invalid":         core.NewStyle(core.ColorFromRGB(205, 49, 49)),
			"markup.heading":  core.NewStyle(core.ColorFromRGB(128, 0, 0)).Bold(),
			"markup.bold":     core.DefaultStyle().Bold(),
			"markup.italic":   core.DefaultStyle().Italic(),
			"markup.strike":   core.DefaultStyle().WithAttributes(core.AttrStrikethrough),
			"markup.code":     core.NewStyle(red),
			"markup.link":     core.NewStyle(teal).Underline(),
		},
	}
}

// ThemeRegistry manages available themes. Names are matched
// case-insensitively.
type ThemeRegistry struct {
	mu      sync.RWMutex
	themes  map[string]*Theme
	current *Theme
}

// NewThemeRegistry creates a new theme registry with built-in themes.
func NewThemeRegistry() *ThemeRegistry {
	r := &ThemeRegistry{
		themes: make(map[string]*Theme),
	}

	r.Register(DefaultTheme())
	r.Register(MonokaiTheme())
	r.Register(DraculaTheme())
	r.Register(LightTheme())

	r.current = r.themes[themeKey("Default Dark")]
	return r
}

func themeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Register adds a theme to the registry, replacing any theme of the same
// name.
func (r *ThemeRegistry) Register(theme *Theme) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.themes[themeKey(theme.Name)] = theme
}

// Get returns a theme by name.
func (r *ThemeRegistry) Get(name string) (*Theme, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.themes[themeKey(name)]
	return t, ok
}

// Current returns the current theme.
func (r *ThemeRegistry) Current() *Theme {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// SetCurrent sets the current theme by name.
func (r *ThemeRegistry) SetCurrent(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.themes[themeKey(name)]; ok {
		r.current = t
		return true
	}
	return false
}

// Names returns all registered theme names, sorted.
func (r *ThemeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.themes))
	for _, t := range r.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}

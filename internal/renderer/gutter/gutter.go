// Package gutter renders the line-number column to the left of a code view.
package gutter

import (
	"strconv"
	"sync"

	"github.com/dshills/tuikit/internal/renderer/backend"
	"github.com/dshills/tuikit/internal/renderer/core"
)

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display. With it off the gutter
	// has zero width.
	ShowLineNumbers bool

	// LineNumberWidth is the fixed width for line numbers (0 = auto).
	LineNumberWidth int

	// MinLineNumberWidth is the minimum width for auto-calculated widths.
	MinLineNumberWidth int

	// RelativeLineNumbers shows distances from the current line instead of
	// absolute numbers. The current line keeps its absolute number.
	RelativeLineNumbers bool
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: 3,
	}
}

// Gutter lays out and draws line numbers.
type Gutter struct {
	mu sync.RWMutex

	config      Config
	width       int
	lineCount   int
	currentLine int
}

// New creates a new gutter with the given configuration.
func New(config Config) *Gutter {
	return &Gutter{
		config: config,
		width:  calculateWidth(config, 1),
	}
}

// Width returns the gutter width including the trailing separator.
func (g *Gutter) Width() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.width
}

// Config returns the current configuration.
func (g *Gutter) Config() Config {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.config
}

// SetConfig updates the gutter configuration.
func (g *Gutter) SetConfig(config Config) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.config = config
	g.width = calculateWidth(config, g.lineCount)
}

// SetLineCount updates the total line count, which drives the width.
func (g *Gutter) SetLineCount(count int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lineCount = count
	g.width = calculateWidth(g.config, count)
}

// SetCurrentLine sets the line relative numbers are measured from.
func (g *Gutter) SetCurrentLine(line int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.currentLine = line
}

// Label returns the gutter text for a 0-indexed line, padded to Width.
// Lines past the end of the text show '~'.
func (g *Gutter) Label(line int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.label(line)
}

func (g *Gutter) label(line int) string {
	if g.width == 0 {
		return ""
	}
	numWidth := g.width - 1

	var s string
	switch {
	case line < 0 || line >= g.lineCount:
		s = "~"
	case g.config.RelativeLineNumbers && line != g.currentLine:
		s = strconv.Itoa(absDiff(line, g.currentLine))
	default:
		s = strconv.Itoa(line + 1)
	}
	if len(s) > numWidth {
		s = s[len(s)-numWidth:]
	}
	return PadLeft(s, numWidth) + " "
}

// Draw renders the gutter into rect, starting at line top. The current line
// is drawn with current, every other row with style.
func (g *Gutter) Draw(b backend.Backend, rect core.ScreenRect, top int, style, current core.Style) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if rect.IsEmpty() || g.width == 0 {
		return
	}
	for row := 0; row < rect.Height(); row++ {
		line := top + row
		st := style
		if line == g.currentLine && line < g.lineCount {
			st = current
		}
		x := rect.Left
		for _, r := range g.label(line) {
			if x >= rect.Right {
				break
			}
			b.SetCell(x, rect.Top+row, core.NewStyledCell(r, st))
			x++
		}
		for ; x < rect.Right; x++ {
			b.SetCell(x, rect.Top+row, core.NewStyledCell(' ', st))
		}
	}
}

// calculateWidth returns the total gutter width for a line count.
func calculateWidth(config Config, lineCount int) int {
	if !config.ShowLineNumbers {
		return 0
	}
	width := config.LineNumberWidth
	if width <= 0 {
		width = max(countDigits(lineCount), config.MinLineNumberWidth)
	}
	// separator
	return width + 1
}

// countDigits returns the number of digits needed to display n.
func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

// PadLeft pads s with spaces on the left to width.
func PadLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	buf := make([]byte, width)
	pad := width - len(s)
	for i := 0; i < pad; i++ {
		buf[i] = ' '
	}
	copy(buf[pad:], s)
	return string(buf)
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

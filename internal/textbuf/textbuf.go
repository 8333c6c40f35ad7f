// Package textbuf provides the synchronous text store behind a code view.
//
// A Buffer holds the current text and an index of line boundaries so that
// plain-text, line-count and line-geometry queries answer instantly,
// independent of any highlighting work in flight.
package textbuf

import (
	"strings"
	"sync"

	"github.com/rivo/uniseg"
)

// DefaultTabWidth is the display width of a tab when none is configured.
const DefaultTabWidth = 4

// LineInfo describes the line geometry of the stored text.
type LineInfo struct {
	// LineStarts holds the byte offset where each line begins.
	LineStarts []int

	// LineWidths holds the display width of each line in terminal cells,
	// excluding the line terminator.
	LineWidths []int

	// LineSources maps each line to the logical source line it renders.
	// Without wrapping this is the identity mapping.
	LineSources []int

	// MaxWidth is the widest entry in LineWidths.
	MaxWidth int
}

// Buffer is a thread-safe text store with a line index.
type Buffer struct {
	mu       sync.RWMutex
	text     string
	starts   []int
	widths   []int
	maxWidth int
	tabWidth int
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithTabWidth sets the display width used for tab characters.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// New creates an empty buffer.
func New(opts ...Option) *Buffer {
	b := &Buffer{tabWidth: DefaultTabWidth}
	for _, opt := range opts {
		opt(b)
	}
	b.reindex()
	return b
}

// SetText replaces the stored text and rebuilds the line index.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = s
	b.reindex()
}

// PlainText returns the stored text.
func (b *Buffer) PlainText() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the length of the stored text in bytes.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// LineCount returns the number of lines. Empty text has one empty line, and
// a trailing newline starts a new, empty line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.starts)
}

// LineInfo returns a copy of the line geometry.
func (b *Buffer) LineInfo() LineInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	info := LineInfo{
		LineStarts:  make([]int, len(b.starts)),
		LineWidths:  make([]int, len(b.widths)),
		LineSources: make([]int, len(b.starts)),
		MaxWidth:    b.maxWidth,
	}
	copy(info.LineStarts, b.starts)
	copy(info.LineWidths, b.widths)
	for i := range info.LineSources {
		info.LineSources[i] = i
	}
	return info
}

// Line returns the text of line n without its terminator.
func (b *Buffer) Line(n int) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if n < 0 || n >= len(b.starts) {
		return "", false
	}
	return b.lineLocked(n), true
}

// LineAt returns the line containing the byte offset. Offsets past the end
// resolve to the last line.
func (b *Buffer) LineAt(offset int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	lo, hi := 0, len(b.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if b.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// TabWidth returns the configured tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

func (b *Buffer) lineLocked(n int) string {
	start := b.starts[n]
	end := len(b.text)
	if n+1 < len(b.starts) {
		end = b.starts[n+1] - 1 // drop '\n'
	}
	return strings.TrimSuffix(b.text[start:end], "\r")
}

// reindex rebuilds line starts and widths. Caller must hold the write lock
// or own the buffer exclusively.
func (b *Buffer) reindex() {
	count := strings.Count(b.text, "\n") + 1
	b.starts = make([]int, 0, count)
	b.starts = append(b.starts, 0)
	for i := 0; i < len(b.text); i++ {
		if b.text[i] == '\n' {
			b.starts = append(b.starts, i+1)
		}
	}

	b.widths = make([]int, len(b.starts))
	b.maxWidth = 0
	for i := range b.starts {
		w := DisplayWidth(b.lineLocked(i), b.tabWidth)
		b.widths[i] = w
		if w > b.maxWidth {
			b.maxWidth = w
		}
	}
}

// DisplayWidth returns the number of terminal cells s occupies, expanding
// tabs to the next multiple of tabWidth.
func DisplayWidth(s string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	if !strings.Contains(s, "\t") {
		return uniseg.StringWidth(s)
	}

	width := 0
	for _, seg := range strings.SplitAfter(s, "\t") {
		if strings.HasSuffix(seg, "\t") {
			width += uniseg.StringWidth(seg[:len(seg)-1])
			width += tabWidth - width%tabWidth
			continue
		}
		width += uniseg.StringWidth(seg)
	}
	return width
}

// Package view draws a code view controller's presentation into a backend.
//
// A View owns the layout (gutter, text area, status line) and the scroll
// position. It never mutates the controller: every Draw reads the current
// presentation and renders it as-is.
package view

import (
	"sync"

	"github.com/rivo/uniseg"

	"github.com/dshills/tuikit/internal/codeview"
	"github.com/dshills/tuikit/internal/renderer/backend"
	"github.com/dshills/tuikit/internal/renderer/core"
	"github.com/dshills/tuikit/internal/renderer/gutter"
	"github.com/dshills/tuikit/internal/renderer/highlight"
	"github.com/dshills/tuikit/internal/renderer/statusline"
	"github.com/dshills/tuikit/internal/renderer/viewport"
	"github.com/dshills/tuikit/internal/textbuf"
)

// Source is the part of a controller a view reads.
type Source interface {
	Presentation() codeview.Presentation
	IsHighlighting() bool
	Language() string
}

// View renders a Source.
type View struct {
	mu sync.Mutex

	src    Source
	theme  *highlight.Theme
	name   string
	status bool

	text  *textbuf.Buffer // line index of the presented text
	shown string

	viewport *viewport.Viewport
	gutter   *gutter.Gutter
	line     *statusline.StatusLine
}

// Option configures a View.
type Option func(*View)

// WithTheme sets the color theme.
func WithTheme(theme *highlight.Theme) Option {
	return func(v *View) {
		if theme != nil {
			v.theme = theme
		}
	}
}

// WithGutter sets the gutter configuration.
func WithGutter(config gutter.Config) Option {
	return func(v *View) {
		v.gutter.SetConfig(config)
	}
}

// WithStatusLine enables or disables the status line.
func WithStatusLine(enabled bool) Option {
	return func(v *View) {
		v.status = enabled
	}
}

// WithTabWidth sets the display width of a tab.
func WithTabWidth(width int) Option {
	return func(v *View) {
		v.text = textbuf.New(textbuf.WithTabWidth(width))
	}
}

// WithName sets the name shown in the status line.
func WithName(name string) Option {
	return func(v *View) {
		v.name = name
	}
}

// New creates a view of src.
func New(src Source, opts ...Option) *View {
	v := &View{
		src:      src,
		theme:    highlight.DefaultTheme(),
		status:   true,
		text:     textbuf.New(),
		viewport: viewport.NewViewport(1, 1),
		gutter:   gutter.New(gutter.DefaultConfig()),
		line:     statusline.New(),
	}
	for _, opt := range opts {
		opt(v)
	}
	v.line.SetName(v.name)
	return v
}

// Viewport returns the scroll state. Scrolling takes effect on the next
// Draw.
func (v *View) Viewport() *viewport.Viewport {
	return v.viewport
}

// StatusLine returns the status line.
func (v *View) StatusLine() *statusline.StatusLine {
	return v.line
}

// SetTheme replaces the color theme.
func (v *View) SetTheme(theme *highlight.Theme) {
	if theme == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.theme = theme
}

// Theme returns the current theme.
func (v *View) Theme() *highlight.Theme {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.theme
}

// Draw renders the current presentation into b. It does not call Show.
func (v *View) Draw(b backend.Backend) {
	v.mu.Lock()
	defer v.mu.Unlock()

	p := v.src.Presentation()
	blank := p.Kind == codeview.PresentBlank
	if !blank && p.Text != v.shown {
		v.text.SetText(p.Text)
		v.shown = p.Text
	}

	width, height := b.Size()
	area := core.RectFromSize(0, 0, height, width)
	statusRows := 0
	if v.status {
		statusRows = 1
	}
	body, statusRect := area.SplitBottom(statusRows)

	lineCount := v.text.LineCount()
	if blank {
		lineCount = 0
	}
	v.gutter.SetLineCount(lineCount)
	gutterRect, textRect := body.SplitLeft(v.gutter.Width())

	info := v.text.LineInfo()
	v.viewport.Resize(textRect.Width(), textRect.Height())
	if !blank {
		v.viewport.SetContentSize(lineCount, info.MaxWidth)
	}
	top := v.viewport.TopLine()

	base := v.theme.Base()
	b.Fill(textRect, core.NewStyledCell(' ', base))

	v.gutter.SetCurrentLine(top)
	v.gutter.Draw(b, gutterRect, top, v.theme.Gutter, v.theme.Gutter.Bold())

	if !blank {
		v.drawText(b, textRect, top, p, info)
	}

	if v.status {
		v.updateStatus(p, top, lineCount)
		v.line.Render(b, statusRect, v.theme.StatusLine)
	}
}

// drawText draws the visible lines of p into rect.
func (v *View) drawText(b backend.Backend, rect core.ScreenRect, top int, p codeview.Presentation, info textbuf.LineInfo) {
	if rect.IsEmpty() {
		return
	}
	lineCount := len(info.LineStarts)
	last := min(top+rect.Height(), lineCount)
	if top >= last {
		return
	}

	var styles *styleMap
	if p.Kind == codeview.PresentStyled {
		from := info.LineStarts[top]
		to := len(p.Text)
		if last < lineCount {
			to = info.LineStarts[last]
		}
		styles = newStyleMap(v.theme, p, from, to)
	}

	left := v.viewport.LeftColumn()
	tabWidth := v.text.TabWidth()
	base := v.theme.Base()

	for line := top; line < last; line++ {
		text, _ := v.text.Line(line)
		start := info.LineStarts[line]
		y := rect.Top + line - top

		col := 0
		g := uniseg.NewGraphemes(text)
		for g.Next() {
			if col-left >= rect.Width() {
				break
			}
			from, _ := g.Positions()
			style := base
			if styles != nil {
				style = styles.at(start + from)
			}

			runes := g.Runes()
			w := g.Width()
			if runes[0] == '\t' {
				w = tabWidth - col%tabWidth
				for i := 0; i < w; i++ {
					v.put(b, rect, left, col+i, y, core.NewStyledCell(' ', style))
				}
				col += w
				continue
			}
			if w == 0 {
				continue
			}
			if col < left || col+w-left > rect.Width() {
				// Clipped wide cluster: pad its visible cells.
				for i := 0; i < w; i++ {
					v.put(b, rect, left, col+i, y, core.NewStyledCell(' ', style))
				}
				col += w
				continue
			}
			cell := core.Cell{Rune: runes[0], Width: w, Style: style}
			if len(runes) > 1 {
				cell.Combining = runes[1:]
			}
			v.put(b, rect, left, col, y, cell)
			for i := 1; i < w; i++ {
				v.put(b, rect, left, col+i, y, core.ContinuationCell(style))
			}
			col += w
		}
	}
}

// put sets the cell at text column col, shifted by the horizontal scroll.
func (v *View) put(b backend.Backend, rect core.ScreenRect, left, col, y int, cell core.Cell) {
	x := col - left
	if x < 0 || x >= rect.Width() {
		return
	}
	b.SetCell(rect.Left+x, y, cell)
}

func (v *View) updateStatus(p codeview.Presentation, top, lineCount int) {
	v.line.SetLanguage(v.src.Language())

	state := ""
	switch {
	case v.src.IsHighlighting():
		state = "highlighting"
	case p.Interim:
		state = "cached"
	}
	v.line.SetState(state)
	v.line.SetPosition(top, lineCount, v.viewport.ScrollPercent())

	switch {
	case p.Diagnostic == "":
		v.line.ClearMessage()
	case p.Kind == codeview.PresentStyled:
		v.line.SetMessage(p.Diagnostic, statusline.MessageWarning)
	default:
		v.line.SetMessage(p.Diagnostic, statusline.MessageError)
	}
}

package view

import (
	"github.com/dshills/tuikit/internal/codeview"
	"github.com/dshills/tuikit/internal/renderer/core"
	"github.com/dshills/tuikit/internal/renderer/highlight"
)

// styleMap resolves a style for each byte in [from, to) of a styled
// presentation. Later spans win where spans overlap.
type styleMap struct {
	base   core.Style
	from   int
	styles []core.Style
	set    []bool
}

func newStyleMap(theme *highlight.Theme, p codeview.Presentation, from, to int) *styleMap {
	m := &styleMap{
		base:   theme.Base(),
		from:   from,
		styles: make([]core.Style, to-from),
		set:    make([]bool, to-from),
	}
	for _, sp := range p.Spans {
		start, end := max(sp.Start, from), min(sp.End, to)
		if start >= end || sp.Scope == "" {
			continue
		}
		style := theme.StyleForScope(sp.Scope)
		for i := start; i < end; i++ {
			m.styles[i-from] = style
			m.set[i-from] = true
		}
	}
	return m
}

func (m *styleMap) at(offset int) core.Style {
	i := offset - m.from
	if i < 0 || i >= len(m.styles) || !m.set[i] {
		return m.base
	}
	return m.styles[i]
}

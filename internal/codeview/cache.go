package codeview

import "github.com/dshills/tuikit/internal/syntax"

// HighlightCache is the last successful highlight, kept while streaming so
// it can stand in for a pending one.
type HighlightCache struct {
	Generation uint64
	Language   string
	Spans      []syntax.Span
}

// spanCache holds at most one HighlightCache entry.
type spanCache struct {
	entry *HighlightCache
}

// store replaces the cached entry.
func (c *spanCache) store(gen uint64, language string, spans []syntax.Span) {
	c.entry = &HighlightCache{Generation: gen, Language: language, Spans: spans}
}

// clear drops the cached entry.
func (c *spanCache) clear() {
	c.entry = nil
}

// lookup returns the cached spans clamped to contentLen when the entry was
// produced for language.
func (c *spanCache) lookup(language string, contentLen int) ([]syntax.Span, bool) {
	if c.entry == nil || c.entry.Language != language {
		return nil, false
	}
	return syntax.Clamp(c.entry.Spans, contentLen), true
}

// snapshot returns a copy of the entry, or nil.
func (c *spanCache) snapshot() *HighlightCache {
	if c.entry == nil {
		return nil
	}
	cp := *c.entry
	cp.Spans = append([]syntax.Span(nil), c.entry.Spans...)
	return &cp
}

package codeview

import (
	"sort"
	"strings"

	"github.com/dshills/tuikit/internal/syntax"
)

type concealRegion struct {
	start, end  int
	replacement string
}

// Conceal hides concealable spans from text.
//
// Each concealable span's bytes are replaced by its Replacement. The
// remaining spans are remapped onto the new text: spans inside a concealed
// region are dropped, spans crossing a region are truncated to the visible
// part. A concealed span with a non-empty replacement keeps its scope over
// the replacement text. Overlapping concealable spans are resolved in start
// order; later ones that overlap an earlier region are ignored.
func Conceal(text string, spans []syntax.Span) (string, []syntax.Span) {
	regions := concealRegions(text, spans)
	if len(regions) == 0 {
		return text, spans
	}

	var sb strings.Builder
	sb.Grow(len(text))
	prev := 0
	for _, r := range regions {
		sb.WriteString(text[prev:r.start])
		sb.WriteString(r.replacement)
		prev = r.end
	}
	sb.WriteString(text[prev:])

	out := make([]syntax.Span, 0, len(spans))
	for _, s := range spans {
		if s.Conceal {
			continue
		}
		start := mapOffset(regions, s.Start, false)
		end := mapOffset(regions, s.End, true)
		if end <= start {
			continue
		}
		s.Start, s.End = start, end
		out = append(out, s)
	}
	for _, r := range regions {
		if r.replacement == "" {
			continue
		}
		start := mapOffset(regions, r.start, false)
		out = append(out, syntax.Span{Start: start, End: start + len(r.replacement), Scope: r.scopeOf(spans)})
	}
	syntax.Sort(out)
	return sb.String(), out
}

func (r concealRegion) scopeOf(spans []syntax.Span) string {
	for _, s := range spans {
		if s.Conceal && s.Start == r.start && s.End == r.end {
			return s.Scope
		}
	}
	return ""
}

func concealRegions(text string, spans []syntax.Span) []concealRegion {
	var regions []concealRegion
	for _, s := range syntax.Clamp(spans, len(text)) {
		if s.Conceal {
			regions = append(regions, concealRegion{start: s.Start, end: s.End, replacement: s.Replacement})
		}
	}
	sort.SliceStable(regions, func(i, j int) bool { return regions[i].start < regions[j].start })

	kept := regions[:0]
	lastEnd := -1
	for _, r := range regions {
		if r.start < lastEnd {
			continue
		}
		kept = append(kept, r)
		lastEnd = r.end
	}
	return kept
}

// mapOffset translates an offset in the original text to the concealed
// text. An offset inside a concealed region maps to the region's edge:
// after the replacement for starts, before it for ends.
func mapOffset(regions []concealRegion, off int, isEnd bool) int {
	delta := 0
	for _, r := range regions {
		if off >= r.end {
			delta += (r.end - r.start) - len(r.replacement)
			continue
		}
		if off > r.start {
			if isEnd {
				return r.start - delta
			}
			return r.start - delta + len(r.replacement)
		}
		break
	}
	return off - delta
}

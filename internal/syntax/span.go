// Package syntax defines the values exchanged between a code view and the
// highlighters that style it: byte-addressed spans, the loosely shaped result
// a highlighter reports, and the tagged outcome the view acts on.
package syntax

import (
	"fmt"
	"sort"
)

// Span is a styled region of text.
//
// Start and End are UTF-8 byte offsets into the highlighted content; End is
// exclusive. Scope is a dotted TextMate-style scope name such as
// "keyword.control" or "markup.bold".
type Span struct {
	Start int
	End   int
	Scope string

	// Conceal marks the span as markup that may be hidden at presentation
	// time. When concealed, the span's text is replaced with Replacement
	// (usually empty).
	Conceal     bool
	Replacement string
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	if s.End <= s.Start {
		return 0
	}
	return s.End - s.Start
}

// Empty reports whether the span covers no bytes.
func (s Span) Empty() bool {
	return s.End <= s.Start
}

// Contains reports whether the byte offset lies inside the span.
func (s Span) Contains(off int) bool {
	return off >= s.Start && off < s.End
}

func (s Span) String() string {
	if s.Conceal {
		return fmt.Sprintf("[%d,%d) %s conceal=%q", s.Start, s.End, s.Scope, s.Replacement)
	}
	return fmt.Sprintf("[%d,%d) %s", s.Start, s.End, s.Scope)
}

// Clamp returns the spans restricted to [0, length).
//
// Spans lying entirely outside the range are dropped and spans that overlap
// its edges are truncated. The input slice is never modified, so cached span
// slices can be clamped against new content without copying them first.
func Clamp(spans []Span, length int) []Span {
	if len(spans) == 0 || length <= 0 {
		return nil
	}
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.End <= 0 || s.Start >= length || s.Empty() {
			continue
		}
		if s.Start < 0 {
			s.Start = 0
		}
		if s.End > length {
			s.End = length
		}
		out = append(out, s)
	}
	return out
}

// Sort orders spans by start offset, then by end offset, in place.
func Sort(spans []Span) {
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Start != spans[j].Start {
			return spans[i].Start < spans[j].Start
		}
		return spans[i].End < spans[j].End
	})
}

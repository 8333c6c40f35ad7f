package codeview

import (
	"fmt"

	"github.com/dshills/tuikit/internal/syntax"
)

// PresentationKind identifies what the drawing phase should do.
type PresentationKind uint8

const (
	// PresentBlank draws nothing.
	PresentBlank PresentationKind = iota
	// PresentUnstyled draws the text without highlighting.
	PresentUnstyled
	// PresentStyled draws the text with highlight spans.
	PresentStyled
)

// String returns the name of the kind.
func (k PresentationKind) String() string {
	switch k {
	case PresentBlank:
		return "blank"
	case PresentUnstyled:
		return "unstyled"
	case PresentStyled:
		return "styled"
	default:
		return "unknown"
	}
}

// Presentation is what a view actually draws. It is derived from the
// controller's state on every read and never stored.
type Presentation struct {
	Kind  PresentationKind
	Text  string
	Spans []syntax.Span

	// Diagnostic carries a warning or failure message from the highlighter
	// that produced this presentation, if any.
	Diagnostic string

	// Interim is set when Spans come from the streaming cache rather than
	// from a highlight of Text.
	Interim bool
}

// Blank returns a presentation that draws nothing.
func Blank() Presentation {
	return Presentation{Kind: PresentBlank}
}

// Unstyled returns a presentation of plain text.
func Unstyled(text string) Presentation {
	return Presentation{Kind: PresentUnstyled, Text: text}
}

// Styled returns a presentation of highlighted text.
func Styled(text string, spans []syntax.Span) Presentation {
	return Presentation{Kind: PresentStyled, Text: text, Spans: spans}
}

func (p Presentation) String() string {
	switch p.Kind {
	case PresentStyled:
		return fmt.Sprintf("Styled(%q, %d spans)", p.Text, len(p.Spans))
	case PresentUnstyled:
		return fmt.Sprintf("Unstyled(%q)", p.Text)
	default:
		return "Blank"
	}
}

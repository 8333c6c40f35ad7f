package codeview

import "github.com/dshills/tuikit/internal/textbuf"

// ContentState is the configuration a code view is asked to display.
type ContentState struct {
	Content  string
	Language string // empty means no language

	Conceal                 bool
	DrawUnstyledBeforeReady bool
	Streaming               bool
}

// highlightable reports whether the state needs a highlighter at all.
func (s ContentState) highlightable() bool {
	return s.Content != "" && s.Language != ""
}

// Request is the snapshot sent to the highlighter. It is taken when the
// flush runs, not when the triggering setter was called.
type Request struct {
	Generation uint64
	Content    string
	Language   string
}

// TextStore holds the text behind a view and answers geometry queries
// synchronously. textbuf.Buffer is the standard implementation.
type TextStore interface {
	SetText(s string)
	PlainText() string
	LineCount() int
	LineInfo() textbuf.LineInfo
}

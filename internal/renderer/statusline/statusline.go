// Package statusline renders the one-row status bar under a code view.
package statusline

import (
	"strconv"
	"sync"

	"github.com/dshills/tuikit/internal/renderer/backend"
	"github.com/dshills/tuikit/internal/renderer/core"
)

// MessageType indicates the type of status message.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageWarning
	MessageError
)

// StatusLine holds what the status bar shows.
type StatusLine struct {
	mu sync.RWMutex

	name     string // Source name (empty for scratch)
	language string
	state    string // Highlighting state, e.g. "highlighting"

	topLine    int // First visible line (0-indexed)
	totalLines int
	percent    int // Scroll percentage (0-100)

	message     string
	messageType MessageType
}

// New creates an empty status line.
func New() *StatusLine {
	return &StatusLine{}
}

// SetName sets the displayed source name.
func (s *StatusLine) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

// SetLanguage sets the displayed language.
func (s *StatusLine) SetLanguage(language string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = language
}

// SetState sets the highlighting state label.
func (s *StatusLine) SetState(state string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// SetPosition sets the scroll position shown on the right.
func (s *StatusLine) SetPosition(topLine, totalLines, percent int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topLine = topLine
	s.totalLines = totalLines
	s.percent = percent
}

// SetMessage sets the status message.
func (s *StatusLine) SetMessage(msg string, msgType MessageType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
	s.messageType = msgType
}

// ClearMessage clears the status message.
func (s *StatusLine) ClearMessage() {
	s.SetMessage("", MessageNone)
}

// Message returns the current message and its type.
func (s *StatusLine) Message() (string, MessageType) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.message, s.messageType
}

// Render draws the status bar into the first row of rect.
func (s *StatusLine) Render(b backend.Backend, rect core.ScreenRect, style core.Style) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rect.IsEmpty() {
		return
	}
	row := rect.Top
	b.Fill(core.ScreenRect{Top: row, Left: rect.Left, Bottom: row + 1, Right: rect.Right},
		core.NewStyledCell(' ', style))

	pos := s.formatPosition()
	posStart := rect.Right - len(pos) - 1
	limit := rect.Right
	if posStart > rect.Left {
		limit = posStart - 1
	}

	name := s.name
	if name == "" {
		name = "[No Name]"
	}
	col := drawText(b, rect.Left, row, limit, " "+name+" ", style.Bold())
	if s.language != "" {
		col = drawText(b, col, row, limit, "["+s.language+"] ", style)
	}
	if s.state != "" {
		col = drawText(b, col, row, limit, s.state+" ", style.WithAttributes(core.AttrDim))
	}
	if s.message != "" {
		drawText(b, col, row, limit, s.message, s.messageStyle(style))
	}

	if posStart > rect.Left {
		drawText(b, posStart, row, rect.Right, pos, style)
	}
}

func (s *StatusLine) messageStyle(base core.Style) core.Style {
	switch s.messageType {
	case MessageError:
		return base.Merge(core.NewStyle(core.ColorFromRGB(244, 71, 71))).Bold()
	case MessageWarning:
		return base.Merge(core.NewStyle(core.ColorFromRGB(229, 192, 123)))
	default:
		return base
	}
}

// formatPosition formats the position info for the right side.
func (s *StatusLine) formatPosition() string {
	// Format: "Ln 12/340 | 3%"
	total := max(s.totalLines, 1)
	line := min(s.topLine+1, total)

	result := "Ln " + strconv.Itoa(line) + "/" + strconv.Itoa(total)
	switch {
	case s.topLine == 0 && s.percent >= 100:
		result += " | All"
	case s.topLine == 0:
		result += " | Top"
	case s.percent >= 100:
		result += " | Bot"
	default:
		result += " | " + strconv.Itoa(s.percent) + "%"
	}
	return result
}

// drawText draws s from column x up to limit and returns the column after
// the last cell written.
func drawText(b backend.Backend, x, y, limit int, s string, style core.Style) int {
	for _, r := range s {
		w := core.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		b.SetCell(x, y, core.NewStyledCell(r, style))
		for i := 1; i < w; i++ {
			b.SetCell(x+i, y, core.ContinuationCell(style))
		}
		x += w
	}
	return x
}

// Package viewport tracks which part of the text a view shows.
package viewport

import "sync"

// Viewport represents the visible window onto a block of lines. The top
// line is clamped so the last page stays full, and the left column so the
// widest line stays reachable.
type Viewport struct {
	mu sync.RWMutex

	// Position in the text
	topLine    int
	leftColumn int

	// Size in screen cells
	width  int
	height int

	// Content limits
	lineCount    int
	contentWidth int
}

// NewViewport creates a viewport with the given size.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// BottomLine returns the last visible line that exists.
func (v *Viewport) BottomLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.bottomLine()
}

func (v *Viewport) bottomLine() int {
	bottom := v.topLine + v.height - 1
	if v.lineCount > 0 && bottom > v.lineCount-1 {
		bottom = v.lineCount - 1
	}
	return bottom
}

// LeftColumn returns the first visible column.
func (v *Viewport) LeftColumn() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.leftColumn
}

// Resize updates the viewport size and re-clamps the scroll position.
func (v *Viewport) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width = max(width, 1)
	v.height = max(height, 1)
	v.clamp()
}

// SetContentSize records the number of lines and the widest line, and
// re-clamps the scroll position.
func (v *Viewport) SetContentSize(lineCount, width int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lineCount = max(lineCount, 0)
	v.contentWidth = max(width, 0)
	v.clamp()
}

// LineCount returns the number of lines last set with SetContentSize.
func (v *Viewport) LineCount() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.lineCount
}

// VisibleLineRange returns the visible lines as [start, end).
func (v *Viewport) VisibleLineRange() (start, end int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine, v.bottomLine() + 1
}

// IsLineVisible reports whether line is in the visible range.
func (v *Viewport) IsLineVisible(line int) bool {
	start, end := v.VisibleLineRange()
	return line >= start && line < end
}

// ScrollTo shows line at the top.
func (v *Viewport) ScrollTo(line int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = line
	v.clamp()
}

// ScrollBy scrolls by a delta number of lines.
func (v *Viewport) ScrollBy(deltaLines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine += deltaLines
	v.clamp()
}

// ScrollHorizontalBy scrolls horizontally by a delta.
func (v *Viewport) ScrollHorizontalBy(deltaCols int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.leftColumn += deltaCols
	v.clamp()
}

// PageUp scrolls up by one page, keeping two lines of overlap.
func (v *Viewport) PageUp() {
	v.ScrollBy(-v.pageSize())
}

// PageDown scrolls down by one page, keeping two lines of overlap.
func (v *Viewport) PageDown() {
	v.ScrollBy(v.pageSize())
}

// HalfPageUp scrolls up by half a page.
func (v *Viewport) HalfPageUp() {
	v.ScrollBy(-max(v.Height()/2, 1))
}

// HalfPageDown scrolls down by half a page.
func (v *Viewport) HalfPageDown() {
	v.ScrollBy(max(v.Height()/2, 1))
}

// ScrollToTop scrolls to the first line.
func (v *Viewport) ScrollToTop() {
	v.ScrollTo(0)
}

// ScrollToBottom scrolls so the last line is on the bottom row.
func (v *Viewport) ScrollToBottom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.topLine = v.lineCount
	v.clamp()
}

// ScrollPercent returns how far down the text the bottom of the view is,
// from 0 to 100.
func (v *Viewport) ScrollPercent() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	maxTop := v.maxTop()
	if maxTop == 0 {
		return 100
	}
	return v.topLine * 100 / maxTop
}

func (v *Viewport) pageSize() int {
	return max(v.Height()-2, 1)
}

func (v *Viewport) maxTop() int {
	return max(v.lineCount-v.height, 0)
}

// clamp keeps the scroll position in range. Caller must hold the write lock.
func (v *Viewport) clamp() {
	v.topLine = min(max(v.topLine, 0), v.maxTop())
	v.leftColumn = min(max(v.leftColumn, 0), max(v.contentWidth-v.width, 0))
}

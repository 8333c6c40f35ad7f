package viewport

import (
	"testing"
)

func TestNewViewport(t *testing.T) {
	v := NewViewport(80, 24)

	if v.Width() != 80 {
		t.Errorf("expected width 80, got %d", v.Width())
	}
	if v.Height() != 24 {
		t.Errorf("expected height 24, got %d", v.Height())
	}
	if v.TopLine() != 0 {
		t.Errorf("expected top line 0, got %d", v.TopLine())
	}
	if v.LeftColumn() != 0 {
		t.Errorf("expected left column 0, got %d", v.LeftColumn())
	}
}

func TestNewViewportMinimumSize(t *testing.T) {
	v := NewViewport(0, -3)
	if v.Width() != 1 || v.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", v.Width(), v.Height())
	}
}

func TestViewportResize(t *testing.T) {
	v := NewViewport(80, 24)
	v.SetContentSize(100, 80)
	v.ScrollTo(76)
	v.Resize(120, 40)

	if v.Width() != 120 {
		t.Errorf("expected width 120, got %d", v.Width())
	}
	if v.Height() != 40 {
		t.Errorf("expected height 40, got %d", v.Height())
	}
	if v.TopLine() != 60 {
		t.Errorf("growing the view should pull the top back to 60, got %d", v.TopLine())
	}
}

func TestViewportVisibleLineRange(t *testing.T) {
	v := NewViewport(80, 24)
	v.SetContentSize(100, 0)

	start, end := v.VisibleLineRange()
	if start != 0 || end != 24 {
		t.Errorf("expected range [0, 24), got [%d, %d)", start, end)
	}

	v.ScrollTo(50)
	start, end = v.VisibleLineRange()
	if start != 50 || end != 74 {
		t.Errorf("expected range [50, 74), got [%d, %d)", start, end)
	}
}

func TestViewportShortContent(t *testing.T) {
	v := NewViewport(80, 24)
	v.SetContentSize(5, 0)

	start, end := v.VisibleLineRange()
	if start != 0 || end != 5 {
		t.Errorf("expected range [0, 5), got [%d, %d)", start, end)
	}
	v.ScrollBy(10)
	if v.TopLine() != 0 {
		t.Errorf("short content should not scroll, top = %d", v.TopLine())
	}
	if v.ScrollPercent() != 100 {
		t.Errorf("ScrollPercent() = %d, want 100", v.ScrollPercent())
	}
}

func TestViewportIsLineVisible(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetContentSize(100, 0)
	v.ScrollTo(20)

	tests := []struct {
		line int
		want bool
	}{
		{19, false},
		{20, true},
		{29, true},
		{30, false},
	}
	for _, tt := range tests {
		if got := v.IsLineVisible(tt.line); got != tt.want {
			t.Errorf("IsLineVisible(%d) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestViewportScrollBy(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetContentSize(100, 0)

	tests := []struct {
		name  string
		delta int
		want  int
	}{
		{"down", 5, 5},
		{"up", -2, 3},
		{"past top", -50, 0},
		{"past bottom", 500, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v.ScrollBy(tt.delta)
			if got := v.TopLine(); got != tt.want {
				t.Errorf("TopLine() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestViewportScrollHorizontal(t *testing.T) {
	v := NewViewport(20, 10)
	v.SetContentSize(5, 50)

	v.ScrollHorizontalBy(10)
	if got := v.LeftColumn(); got != 10 {
		t.Errorf("LeftColumn() = %d, want 10", got)
	}
	v.ScrollHorizontalBy(100)
	if got := v.LeftColumn(); got != 30 {
		t.Errorf("LeftColumn() = %d, want 30", got)
	}
	v.ScrollHorizontalBy(-100)
	if got := v.LeftColumn(); got != 0 {
		t.Errorf("LeftColumn() = %d, want 0", got)
	}
}

func TestViewportPageUpDown(t *testing.T) {
	v := NewViewport(80, 20)
	v.SetContentSize(100, 0)

	v.PageDown()
	if got := v.TopLine(); got != 18 {
		t.Errorf("after PageDown expected 18, got %d", got)
	}
	v.PageUp()
	if got := v.TopLine(); got != 0 {
		t.Errorf("after PageUp expected 0, got %d", got)
	}
}

func TestViewportHalfPageUpDown(t *testing.T) {
	v := NewViewport(80, 20)
	v.SetContentSize(100, 0)

	v.HalfPageDown()
	if got := v.TopLine(); got != 10 {
		t.Errorf("after HalfPageDown expected 10, got %d", got)
	}
	v.HalfPageUp()
	if got := v.TopLine(); got != 0 {
		t.Errorf("after HalfPageUp expected 0, got %d", got)
	}
}

func TestViewportScrollToTopBottom(t *testing.T) {
	v := NewViewport(80, 20)
	v.SetContentSize(100, 0)

	v.ScrollToBottom()
	if got := v.TopLine(); got != 80 {
		t.Errorf("after ScrollToBottom expected 80, got %d", got)
	}
	if got := v.BottomLine(); got != 99 {
		t.Errorf("BottomLine() = %d, want 99", got)
	}
	if got := v.ScrollPercent(); got != 100 {
		t.Errorf("ScrollPercent() = %d, want 100", got)
	}

	v.ScrollToTop()
	if got := v.TopLine(); got != 0 {
		t.Errorf("after ScrollToTop expected 0, got %d", got)
	}
	if got := v.ScrollPercent(); got != 0 {
		t.Errorf("ScrollPercent() = %d, want 0", got)
	}
}

func TestViewportShrinkingContent(t *testing.T) {
	v := NewViewport(80, 10)
	v.SetContentSize(100, 0)
	v.ScrollTo(80)

	v.SetContentSize(30, 0)
	if got := v.TopLine(); got != 20 {
		t.Errorf("TopLine() = %d, want 20", got)
	}
	if got := v.LineCount(); got != 30 {
		t.Errorf("LineCount() = %d, want 30", got)
	}
}

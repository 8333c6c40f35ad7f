package gutter

import (
	"sync"
	"testing"

	"github.com/dshills/tuikit/internal/renderer/backend"
	"github.com/dshills/tuikit/internal/renderer/core"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.ShowLineNumbers {
		t.Error("ShowLineNumbers should be true by default")
	}
	if cfg.RelativeLineNumbers {
		t.Error("RelativeLineNumbers should be false by default")
	}
	if cfg.MinLineNumberWidth != 3 {
		t.Errorf("expected MinLineNumberWidth 3, got %d", cfg.MinLineNumberWidth)
	}
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		name      string
		config    Config
		lineCount int
		want      int
	}{
		{"initial", DefaultConfig(), 1, 4},
		{"small", DefaultConfig(), 10, 4},
		{"four digits", DefaultConfig(), 1000, 5},
		{"six digits", DefaultConfig(), 100000, 7},
		{"fixed", Config{ShowLineNumbers: true, LineNumberWidth: 6}, 10, 7},
		{"hidden", Config{}, 1000, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.config)
			g.SetLineCount(tt.lineCount)
			if got := g.Width(); got != tt.want {
				t.Errorf("Width() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestGutterLabel(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(20)

	tests := []struct {
		line int
		want string
	}{
		{0, "  1 "},
		{9, " 10 "},
		{19, " 20 "},
		{20, "  ~ "},
		{-1, "  ~ "},
	}
	for _, tt := range tests {
		if got := g.Label(tt.line); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestGutterRelativeLineNumbers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RelativeLineNumbers = true
	g := New(cfg)
	g.SetLineCount(100)
	g.SetCurrentLine(10)

	tests := []struct {
		line int
		want string
	}{
		{10, " 11 "},
		{9, "  1 "},
		{11, "  1 "},
		{0, " 10 "},
		{50, " 40 "},
	}
	for _, tt := range tests {
		if got := g.Label(tt.line); got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestGutterLabelTruncates(t *testing.T) {
	g := New(Config{ShowLineNumbers: true, LineNumberWidth: 2})
	g.SetLineCount(1000)
	if got := g.Label(122); got != "23 " {
		t.Errorf("Label(122) = %q, want %q", got, "23 ")
	}
}

func TestGutterHiddenLabel(t *testing.T) {
	g := New(Config{})
	g.SetLineCount(5)
	if got := g.Label(0); got != "" {
		t.Errorf("Label(0) = %q, want empty", got)
	}
}

func TestGutterSetConfig(t *testing.T) {
	g := New(DefaultConfig())
	g.SetLineCount(50)

	g.SetConfig(Config{ShowLineNumbers: true, LineNumberWidth: 5})
	if got := g.Config().LineNumberWidth; got != 5 {
		t.Errorf("LineNumberWidth = %d, want 5", got)
	}
	if got := g.Width(); got != 6 {
		t.Errorf("Width() = %d, want 6", got)
	}
}

func TestGutterDraw(t *testing.T) {
	b := backend.NewMemory(10, 4)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	g := New(DefaultConfig())
	g.SetLineCount(3)
	g.SetCurrentLine(1)

	normal := core.NewStyle(core.ColorFromRGB(100, 100, 100))
	current := core.NewStyle(core.ColorFromRGB(255, 255, 255))
	g.Draw(b, core.RectFromSize(0, 0, 4, g.Width()), 0, normal, current)

	want := []string{"  1", "  2", "  3", "  ~"}
	for y, w := range want {
		if got := b.Row(y); got != w {
			t.Errorf("row %d = %q, want %q", y, got, w)
		}
	}
	if !b.GetCell(2, 1).Style.Equals(current) {
		t.Error("current line should use the current style")
	}
	if !b.GetCell(2, 0).Style.Equals(normal) {
		t.Error("other lines should use the normal style")
	}
	if !b.GetCell(2, 3).Style.Equals(normal) {
		t.Error("filler rows should use the normal style")
	}
}

func TestGutterDrawScrolled(t *testing.T) {
	b := backend.NewMemory(10, 2)
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	g := New(DefaultConfig())
	g.SetLineCount(200)
	g.Draw(b, core.RectFromSize(0, 0, 2, g.Width()), 98, core.DefaultStyle(), core.DefaultStyle())

	if got := b.Row(0); got != " 99" {
		t.Errorf("row 0 = %q", got)
	}
	if got := b.Row(1); got != "100" {
		t.Errorf("row 1 = %q", got)
	}
}

func TestPadLeft(t *testing.T) {
	tests := []struct {
		s     string
		width int
		want  string
	}{
		{"1", 3, "  1"},
		{"123", 3, "123"},
		{"1234", 3, "1234"},
		{"", 2, "  "},
	}
	for _, tt := range tests {
		if got := PadLeft(tt.s, tt.width); got != tt.want {
			t.Errorf("PadLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.want)
		}
	}
}

func TestGutterConcurrency(t *testing.T) {
	g := New(DefaultConfig())
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				g.SetLineCount(n*100 + j)
				g.SetCurrentLine(j)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = g.Width()
				_ = g.Label(j)
			}
		}()
	}
	wg.Wait()
}

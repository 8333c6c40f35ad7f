package core

import (
	"testing"
)

func TestColorFromHex(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b uint8
		wantErr bool
	}{
		{"#FF8040", 255, 128, 64, false},
		{"#ff8040", 255, 128, 64, false},
		{"FF8040", 255, 128, 64, false},
		{"#FFF", 255, 255, 255, false}, // Short form
		{"#000", 0, 0, 0, false},
		{"invalid", 0, 0, 0, true},
		{"#GGG", 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := ColorFromHex(tt.hex)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.hex)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.R != tt.r || c.G != tt.g || c.B != tt.b {
				t.Errorf("expected (%d,%d,%d), got (%d,%d,%d)", tt.r, tt.g, tt.b, c.R, c.G, c.B)
			}
		})
	}
}

func TestColorEquals(t *testing.T) {
	tests := []struct {
		name string
		a, b Color
		want bool
	}{
		{"default", ColorDefault, ColorDefault, true},
		{"default vs rgb", ColorDefault, ColorFromRGB(0, 0, 0), false},
		{"rgb", ColorFromRGB(1, 2, 3), ColorFromRGB(1, 2, 3), true},
		{"rgb differs", ColorFromRGB(1, 2, 3), ColorFromRGB(1, 2, 4), false},
		{"indexed ignores gb", Color{R: 4, G: 9, Indexed: true}, ColorFromIndex(4), true},
		{"indexed vs rgb", ColorFromIndex(4), ColorFromRGB(4, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equals(tt.b); got != tt.want {
				t.Errorf("Equals = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestColorString(t *testing.T) {
	if got := ColorDefault.String(); got != "default" {
		t.Errorf("expected default, got %q", got)
	}
	if got := ColorFromIndex(7).String(); got != "idx(7)" {
		t.Errorf("expected idx(7), got %q", got)
	}
	if got := ColorFromRGB(255, 0, 16).String(); got != "#FF0010" {
		t.Errorf("expected #FF0010, got %q", got)
	}
}

func TestColorBlend(t *testing.T) {
	black := ColorFromRGB(0, 0, 0)
	white := ColorFromRGB(255, 255, 255)

	if got := black.Blend(white, 0); !got.Equals(black) {
		t.Errorf("Blend(0) = %v, want black", got)
	}
	if got := black.Blend(white, 1); !got.Equals(white) {
		t.Errorf("Blend(1) = %v, want white", got)
	}
	mid := black.Blend(white, 0.5)
	if mid.R < 64 || mid.R > 192 || absDiff(mid.R, mid.G) > 1 || absDiff(mid.G, mid.B) > 1 {
		t.Errorf("Blend(0.5) = %v, want a mid gray", mid)
	}

	if got := ColorFromIndex(3).Blend(white, 0.2); !got.Equals(ColorFromIndex(3)) {
		t.Errorf("indexed Blend(0.2) = %v, want idx(3)", got)
	}
	if got := ColorDefault.Blend(white, 0.8); !got.Equals(white) {
		t.Errorf("default Blend(0.8) = %v, want white", got)
	}
}

func TestColorLightenDarken(t *testing.T) {
	c := ColorFromRGB(100, 100, 100)
	if l := c.Lighten(0.5); l.R <= c.R {
		t.Errorf("Lighten did not lighten: %v", l)
	}
	if d := c.Darken(0.5); d.R >= c.R {
		t.Errorf("Darken did not darken: %v", d)
	}
}

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		in      string
		want    Attribute
		wantErr bool
	}{
		{"", AttrNone, false},
		{"none", AttrNone, false},
		{"bold", AttrBold, false},
		{"Bold Italic", AttrBold | AttrItalic, false},
		{"underline,strike", AttrUnderline | AttrStrikethrough, false},
		{"dim|reverse", AttrDim | AttrReverse, false},
		{"blinking", AttrNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAttributes(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStyleMerge(t *testing.T) {
	base := NewStyle(ColorFromRGB(1, 1, 1)).WithBackground(ColorFromRGB(2, 2, 2)).Bold()
	over := Style{Foreground: ColorFromRGB(9, 9, 9), Background: ColorDefault, Attributes: AttrItalic}

	got := base.Merge(over)
	want := Style{
		Foreground: ColorFromRGB(9, 9, 9),
		Background: ColorFromRGB(2, 2, 2),
		Attributes: AttrBold | AttrItalic,
	}
	if !got.Equals(want) {
		t.Errorf("Merge = %+v, want %+v", got, want)
	}
}

func TestStyleAttributes(t *testing.T) {
	s := DefaultStyle().Bold().Italic().Underline()
	for _, a := range []Attribute{AttrBold, AttrItalic, AttrUnderline} {
		if !s.Attributes.Has(a) {
			t.Errorf("missing attribute %d", a)
		}
	}
	if s.Attributes.Has(AttrDim) {
		t.Error("unexpected dim")
	}
}

func TestCells(t *testing.T) {
	empty := EmptyCell()
	if empty.Rune != ' ' || empty.Width != 1 {
		t.Errorf("EmptyCell = %+v", empty)
	}

	wide := NewStyledCell('世', DefaultStyle())
	if wide.Width != 2 {
		t.Errorf("wide cell width = %d, want 2", wide.Width)
	}
	accent := Cell{Rune: 'e', Combining: []rune{'\u0301'}, Width: 1, Style: DefaultStyle()}
	if got := accent.Text(); got != "e\u0301" {
		t.Errorf("Text() = %q", got)
	}
	if accent.Equals(NewStyledCell('e', DefaultStyle())) {
		t.Error("cell with a combining mark equals the bare rune")
	}
	cont := ContinuationCell(DefaultStyle())
	if !cont.IsContinuation() {
		t.Error("ContinuationCell is not a continuation")
	}
	if cont.Equals(empty) {
		t.Error("continuation equals empty cell")
	}
}

func TestRuneWidth(t *testing.T) {
	tests := []struct {
		r    rune
		want int
	}{
		{'a', 1},
		{'\t', 0},
		{0x7F, 0},
		{'世', 2},
		{'é', 1},
	}
	for _, tt := range tests {
		if got := RuneWidth(tt.r); got != tt.want {
			t.Errorf("RuneWidth(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestScreenRect(t *testing.T) {
	r := RectFromSize(1, 2, 10, 20)
	if r.Width() != 20 || r.Height() != 10 {
		t.Errorf("size = %dx%d, want 20x10", r.Width(), r.Height())
	}
	if r.IsEmpty() {
		t.Error("non-empty rect reported empty")
	}
	if !(ScreenRect{Top: 3, Bottom: 3, Left: 0, Right: 5}).IsEmpty() {
		t.Error("zero-height rect not empty")
	}

	left, rest := r.SplitLeft(4)
	if left.Width() != 4 || rest.Width() != 16 || rest.Left != 6 {
		t.Errorf("SplitLeft = %+v, %+v", left, rest)
	}
	left, rest = r.SplitLeft(100)
	if left.Width() != 20 || !rest.IsEmpty() {
		t.Errorf("SplitLeft(100) = %+v, %+v", left, rest)
	}

	top, bottom := r.SplitBottom(1)
	if top.Height() != 9 || bottom.Height() != 1 || bottom.Top != 10 {
		t.Errorf("SplitBottom = %+v, %+v", top, bottom)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

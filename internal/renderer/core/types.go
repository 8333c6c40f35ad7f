// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer and backend.
package core

import (
	"fmt"
	"slices"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// Attribute represents text attributes (bold, italic, etc.).
type Attribute uint16

// Text attribute flags.
const (
	AttrNone          Attribute = 0
	AttrBold          Attribute = 1 << iota
	AttrDim                     // Faint/dim text
	AttrItalic                  // Italic text
	AttrUnderline               // Underlined text
	AttrReverse                 // Reverse video (swap fg/bg)
	AttrStrikethrough           // Strikethrough text
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// ParseAttributes parses names such as "bold" or "italic underline".
// Names may be separated by spaces, commas or pipes.
func ParseAttributes(s string) (Attribute, error) {
	var attrs Attribute
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == ' ' || r == ',' || r == '|'
	})
	for _, f := range fields {
		switch f {
		case "bold":
			attrs |= AttrBold
		case "dim", "faint":
			attrs |= AttrDim
		case "italic":
			attrs |= AttrItalic
		case "underline":
			attrs |= AttrUnderline
		case "reverse":
			attrs |= AttrReverse
		case "strikethrough", "strike":
			attrs |= AttrStrikethrough
		case "none":
		default:
			return AttrNone, fmt.Errorf("unknown attribute: %s", f)
		}
	}
	return attrs, nil
}

// Color represents a color value.
// Supports true color (RGB) and terminal palette colors.
type Color struct {
	R, G, B uint8
	// If Indexed is true, R contains the palette index (0-255).
	Indexed bool
	// Default indicates this is the terminal's default color.
	Default bool
}

// ColorDefault represents the terminal's default color.
var ColorDefault = Color{Default: true}

// ColorFromRGB creates a true color from RGB components.
func ColorFromRGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ColorFromIndex creates an indexed palette color.
func ColorFromIndex(index uint8) Color {
	return Color{R: index, Indexed: true}
}

// ColorFromHex creates a color from a hex string such as "#ff8040" or "f84".
func ColorFromHex(hex string) (Color, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return fromColorful(c), nil
}

func fromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{R: r, G: g, B: b}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// IsDefault returns true if this is the default/transparent color.
func (c Color) IsDefault() bool {
	return c.Default
}

// Equals returns true if two colors are equal.
func (c Color) Equals(other Color) bool {
	if c.Default || other.Default {
		return c.Default == other.Default
	}
	if c.Indexed != other.Indexed {
		return false
	}
	if c.Indexed {
		return c.R == other.R
	}
	return c.R == other.R && c.G == other.G && c.B == other.B
}

// String returns a string representation of the color.
func (c Color) String() string {
	if c.IsDefault() {
		return "default"
	}
	if c.Indexed {
		return fmt.Sprintf("idx(%d)", c.R)
	}
	return c.ToHex()
}

// ToHex returns the hex representation of a true color.
func (c Color) ToHex() string {
	if c.Indexed || c.Default {
		return ""
	}
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Blend mixes two true colors in Lab space. amount 0 returns c, 1 returns
// other. Indexed and default colors are not blended; the nearer one wins.
func (c Color) Blend(other Color, amount float64) Color {
	if c.Indexed || other.Indexed || c.Default || other.Default {
		if amount < 0.5 {
			return c
		}
		return other
	}
	return fromColorful(c.colorful().BlendLab(other.colorful(), amount))
}

// Lighten moves the color toward white.
func (c Color) Lighten(amount float64) Color {
	return c.Blend(ColorFromRGB(255, 255, 255), amount)
}

// Darken moves the color toward black.
func (c Color) Darken(amount float64) Color {
	return c.Blend(ColorFromRGB(0, 0, 0), amount)
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{Foreground: ColorDefault, Background: ColorDefault}
}

// NewStyle creates a style with the given foreground color.
func NewStyle(fg Color) Style {
	return Style{Foreground: fg, Background: ColorDefault}
}

// WithBackground returns a new style with the given background color.
func (s Style) WithBackground(bg Color) Style {
	s.Background = bg
	return s
}

// WithAttributes returns a new style with the given attributes added.
func (s Style) WithAttributes(attrs Attribute) Style {
	s.Attributes |= attrs
	return s
}

// Bold returns a bold version of the style.
func (s Style) Bold() Style {
	return s.WithAttributes(AttrBold)
}

// Italic returns an italic version of the style.
func (s Style) Italic() Style {
	return s.WithAttributes(AttrItalic)
}

// Underline returns an underlined version of the style.
func (s Style) Underline() Style {
	return s.WithAttributes(AttrUnderline)
}

// Merge overlays other onto s. Default colors in other leave s unchanged;
// attributes are combined.
func (s Style) Merge(other Style) Style {
	if !other.Foreground.IsDefault() {
		s.Foreground = other.Foreground
	}
	if !other.Background.IsDefault() {
		s.Background = other.Background
	}
	s.Attributes |= other.Attributes
	return s
}

// Equals returns true if two styles are identical.
func (s Style) Equals(other Style) bool {
	return s.Foreground.Equals(other.Foreground) &&
		s.Background.Equals(other.Background) &&
		s.Attributes == other.Attributes
}

// Cell represents a single terminal cell.
type Cell struct {
	// Rune is the character to display.
	Rune rune

	// Combining holds the runes that follow Rune in the same grapheme
	// cluster, such as combining accents.
	Combining []rune

	// Width is the display width of this cell. A continuation cell of a
	// wide character has width 0.
	Width int

	// Style is the visual style for this cell.
	Style Style
}

// EmptyCell returns an empty cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Width: 1, Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Width: RuneWidth(r), Style: style}
}

// ContinuationCell returns the placeholder that follows a wide character.
func ContinuationCell(style Style) Cell {
	return Cell{Style: style}
}

// IsContinuation returns true if this is a continuation cell.
func (c Cell) IsContinuation() bool {
	return c.Width == 0 && c.Rune == 0
}

// Equals returns true if two cells are identical.
func (c Cell) Equals(other Cell) bool {
	return c.Rune == other.Rune &&
		slices.Equal(c.Combining, other.Combining) &&
		c.Width == other.Width &&
		c.Style.Equals(other.Style)
}

// Text returns the cell's grapheme cluster.
func (c Cell) Text() string {
	if len(c.Combining) == 0 {
		return string(c.Rune)
	}
	return string(c.Rune) + string(c.Combining)
}

// RuneWidth returns the display width of a rune.
func RuneWidth(r rune) int {
	if r < 32 || r == 0x7F {
		return 0
	}
	return uniseg.StringWidth(string(r))
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// SplitLeft cuts a column band of width w off the left edge. The band is
// clipped to the rectangle.
func (r ScreenRect) SplitLeft(w int) (left, rest ScreenRect) {
	w = max(0, min(w, r.Width()))
	left = ScreenRect{Top: r.Top, Left: r.Left, Bottom: r.Bottom, Right: r.Left + w}
	rest = ScreenRect{Top: r.Top, Left: r.Left + w, Bottom: r.Bottom, Right: r.Right}
	return left, rest
}

// SplitBottom cuts a row band of height h off the bottom edge.
func (r ScreenRect) SplitBottom(h int) (rest, bottom ScreenRect) {
	h = max(0, min(h, r.Height()))
	rest = ScreenRect{Top: r.Top, Left: r.Left, Bottom: r.Bottom - h, Right: r.Right}
	bottom = ScreenRect{Top: r.Bottom - h, Left: r.Left, Bottom: r.Bottom, Right: r.Right}
	return rest, bottom
}

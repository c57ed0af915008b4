package bbast

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Decoration is a text decoration. Only one is active at a time.
type Decoration uint8

const (
	DecorationNone Decoration = iota
	DecorationUnderline
	DecorationStrikethrough
)

// String returns the decoration name.
func (d Decoration) String() string {
	switch d {
	case DecorationUnderline:
		return "underline"
	case DecorationStrikethrough:
		return "strikethrough"
	default:
		return "none"
	}
}

// Color is an 8-bit-per-channel ARGB color.
type Color struct {
	A, R, G, B uint8
}

// Opaque returns an opaque color with the given channels.
func Opaque(r, g, b uint8) Color {
	return Color{A: 0xFF, R: r, G: g, B: b}
}

// Hex formats the color as #rrggbb, or #aarrggbb when not fully opaque.
func (c Color) Hex() string {
	rgb := colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
	if c.A == 0xFF {
		return rgb
	}
	return fmt.Sprintf("#%02x%s", c.A, strings.TrimPrefix(rgb, "#"))
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// Style is the snapshot of formatting attributes applied to a Run.
// A nil pointer field means the attribute is unset.
type Style struct {
	FontSize   *float64
	Bold       bool
	Italic     bool
	Decoration Decoration
	Foreground *Color
	Background *Color
}

// IsZero reports whether no attribute is set.
func (s *Style) IsZero() bool {
	if s == nil {
		return true
	}
	return s.FontSize == nil && !s.Bold && !s.Italic &&
		s.Decoration == DecorationNone && s.Foreground == nil && s.Background == nil
}

// Clone returns a deep copy of the style.
func (s *Style) Clone() *Style {
	if s == nil {
		return nil
	}
	out := *s
	if s.FontSize != nil {
		size := *s.FontSize
		out.FontSize = &size
	}
	if s.Foreground != nil {
		fg := *s.Foreground
		out.Foreground = &fg
	}
	if s.Background != nil {
		bg := *s.Background
		out.Background = &bg
	}
	return &out
}

// Attributes returns the set attributes as ordered key/value pairs.
// Used by the textual renderers.
func (s *Style) Attributes() [][2]string {
	if s.IsZero() {
		return nil
	}
	var attrs [][2]string
	if s.Bold {
		attrs = append(attrs, [2]string{"bold", "true"})
	}
	if s.Italic {
		attrs = append(attrs, [2]string{"italic", "true"})
	}
	if s.Decoration != DecorationNone {
		attrs = append(attrs, [2]string{"decoration", s.Decoration.String()})
	}
	if s.FontSize != nil {
		attrs = append(attrs, [2]string{"size", fmt.Sprintf("%g", *s.FontSize)})
	}
	if s.Foreground != nil {
		attrs = append(attrs, [2]string{"foreground", s.Foreground.Hex()})
	}
	if s.Background != nil {
		attrs = append(attrs, [2]string{"background", s.Background.Hex()})
	}
	return attrs
}

package composer

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an opaque RGB color. The zero value is black.
type Color struct {
	R, G, B uint8
}

// DefaultColor is the active color after a selection is released.
var DefaultColor = Color{}

func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor accepts "#rrggbb" and "#rgb", with or without the leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as lowercase "#rrggbb".
func (c Color) Hex() string {
	return c.colorful().Hex()
}

// RGBA implements image/color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// Lightness returns the CIE L* of the color in [0, 1].
func (c Color) Lightness() float64 {
	l, _, _ := c.colorful().Lab()
	return l
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

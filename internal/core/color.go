package core

import "fmt"

// Color is a straight-alpha RGBA color.
// The terminal platform renders it as truecolor and degrades as the
// terminal profile requires.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// RGBA returns a color with the given alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Palette shared by the game and the platform layer.
var (
	ColorBlack  = RGB(0, 0, 0)
	ColorWhite  = RGB(255, 255, 255)
	ColorGray   = RGB(128, 128, 128)
	ColorOrange = RGB(255, 165, 0)
	ColorYellow = RGB(255, 223, 0)
	ColorCream  = RGB(255, 255, 220)
)

// WithAlpha returns the color with its alpha replaced.
func (c Color) WithAlpha(a uint8) Color {
	c.A = a
	return c
}

// Over composites c on top of an opaque base color.
func (c Color) Over(base Color) Color {
	if c.A == 255 {
		return c
	}
	if c.A == 0 {
		return base
	}
	a := float64(c.A) / 255
	mix := func(top, bottom uint8) uint8 {
		return uint8(float64(top)*a + float64(bottom)*(1-a) + 0.5)
	}
	return RGB(mix(c.R, base.R), mix(c.G, base.G), mix(c.B, base.B))
}

// Mix blends two colors channel-wise; t=0 yields c, t=1 yields o.
func (c Color) Mix(o Color, t float64) Color {
	t = ClampF(t, 0, 1)
	ch := func(a, b uint8) uint8 {
		return uint8(Lerp(float64(a), float64(b), t) + 0.5)
	}
	return Color{R: ch(c.R, o.R), G: ch(c.G, o.G), B: ch(c.B, o.B), A: ch(c.A, o.A)}
}

// Hex returns the "#rrggbb" form used by lipgloss.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ClampChannel clamps an int to the 0..255 channel range.
func ClampChannel(v int) uint8 {
	return uint8(Clamp(v, 0, 255))
}

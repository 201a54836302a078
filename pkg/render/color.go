package render

import (
	"image/color"
	"math"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack   = color.RGBA{0, 0, 0, 255}
	ColorWhite   = color.RGBA{255, 255, 255, 255}
	ColorRed     = color.RGBA{255, 0, 0, 255}
	ColorGreen   = color.RGBA{0, 255, 0, 255}
	ColorBlue    = color.RGBA{0, 0, 255, 255}
	ColorYellow  = color.RGBA{255, 255, 0, 255}
	ColorCyan    = color.RGBA{0, 255, 255, 255}
	ColorMagenta = color.RGBA{255, 0, 255, 255}
	ColorGray    = color.RGBA{128, 128, 128, 255}
)

// RGB creates a color from RGB values.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// RGBA creates a color from RGBA values.
func RGBA(r, g, b, a uint8) Color {
	return color.RGBA{r, g, b, a}
}

// FloatColor is a color with components normalized to [0, 1].
type FloatColor struct {
	R, G, B, A float64
}

// ToFloat converts an 8-bit color to normalized form.
func ToFloat(c Color) FloatColor {
	return FloatColor{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
		A: float64(c.A) / 255,
	}
}

// FromFloat converts a normalized color to 8-bit form, clamping each
// component to [0, 1] and rounding to the nearest level.
func FromFloat(f FloatColor) Color {
	return color.RGBA{
		R: toByte(f.R),
		G: toByte(f.G),
		B: toByte(f.B),
		A: toByte(f.A),
	}
}

func toByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Floor(v*255 + 0.5))
}

// lerp interpolates linearly between a and b in normalized space.
func (a FloatColor) lerp(b FloatColor, t float64) FloatColor {
	return FloatColor{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// blend mixes c over bg: weight 1 is pure c, weight 0 is pure bg.
// Alpha stays opaque.
func blend(c, bg FloatColor, weight float64) FloatColor {
	return FloatColor{
		R: bg.R + (c.R-bg.R)*weight,
		G: bg.G + (c.G-bg.G)*weight,
		B: bg.B + (c.B-bg.B)*weight,
		A: 1,
	}
}

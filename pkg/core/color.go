package core

import (
	"fmt"
	"math"
)

// Color is an RGBA color with float channels nominally in [0, 1].
// Channels are never driven below zero by Subtract or Scale; the upper
// bound is only enforced when converting to 8-bit output.
type Color struct {
	R, G, B, A float64
}

var (
	White       = Color{1, 1, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Transparent = Color{0, 0, 0, 0}
)

// NewColor creates a new Color
func NewColor(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Add returns the channel-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B, c.A + other.A}
}

// Subtract returns the channel-wise difference, clamped at zero
func (c Color) Subtract(other Color) Color {
	return Color{
		R: math.Max(c.R-other.R, 0),
		G: math.Max(c.G-other.G, 0),
		B: math.Max(c.B-other.B, 0),
		A: math.Max(c.A-other.A, 0),
	}
}

// Scale multiplies every channel by s, clamped at zero
func (c Color) Scale(s float64) Color {
	return Color{
		R: math.Max(c.R*s, 0),
		G: math.Max(c.G*s, 0),
		B: math.Max(c.B*s, 0),
		A: math.Max(c.A*s, 0),
	}
}

// Divide returns the color scaled by 1/s
func (c Color) Divide(s float64) Color {
	return c.Scale(1 / s)
}

// Inverse returns the complementary color, keeping alpha
func (c Color) Inverse() Color {
	return Color{1 - c.R, 1 - c.G, 1 - c.B, c.A}
}

// Mix multiplies colors channel by channel, starting from White
func Mix(colors ...Color) Color {
	result := White
	for _, c := range colors {
		result = Color{result.R * c.R, result.G * c.G, result.B * c.B, result.A * c.A}
	}
	return result
}

// Average returns the channel-wise mean, or Transparent for no colors
func Average(colors ...Color) Color {
	if len(colors) == 0 {
		return Transparent
	}

	sum := Transparent
	for _, c := range colors {
		sum = sum.Add(c)
	}
	n := float64(len(colors))
	return Color{sum.R / n, sum.G / n, sum.B / n, sum.A / n}
}

// RGB8 converts to 8-bit channels: channel*255 capped at 255 and truncated
func (c Color) RGB8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	v = math.Min(v*255, 255)
	if !(v > 0) {
		return 0
	}
	return uint8(v)
}

// PPM formats the color as a plain PPM "R G B" triple
func (c Color) PPM() string {
	r, g, b := c.RGB8()
	return fmt.Sprintf("%d %d %d", r, g, b)
}

// String implements fmt.Stringer
func (c Color) String() string {
	return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
}

package math

import "golang.org/x/exp/constraints"

// Clamp returns the value `f` clamped to the range [low, high].
// It works for any numeric type (integers and floats).
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

// NewColourRGBA8 converts 8-bit sRGB-ish channel values to a Colour.
func NewColourRGBA8(r, g, b, a uint8) Colour {
	return Colour{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}
}

// Add brightens c by delta on every colour channel, clamped to [0, 1]. Alpha is kept.
func (c Colour) Add(delta float32) Colour {
	return Colour{
		R: Clamp(c.R+delta, 0, 1),
		G: Clamp(c.G+delta, 0, 1),
		B: Clamp(c.B+delta, 0, 1),
		A: c.A,
	}
}

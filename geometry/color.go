package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Color is an RGBA color with every channel in [0.0, 1.0].
//
// There is no default color: vertices and faces without color carry a nil *Color.
type Color struct {
	R float32
	G float32
	B float32
	A float32
}

// NewColor creates a Color, rejecting channels outside of [0.0, 1.0].
func NewColor(r, g, b, a float32) (Color, error) {
	if !inUnitRange(r) || !inUnitRange(g) || !inUnitRange(b) || !inUnitRange(a) {
		return Color{}, fmt.Errorf("%w: values must be between 0.0 and 1.0, got (%v, %v, %v, %v)", ErrColorRange, r, g, b, a)
	}

	return Color{R: r, G: g, B: b, A: a}, nil
}

// ColorFromFloats creates a Color from 3 or 4 float channels. A missing alpha is opaque (1.0).
func ColorFromFloats(values []float32) (Color, error) {
	if len(values) < 3 || len(values) > 4 {
		return Color{}, fmt.Errorf("%w (actual: %d)", ErrColorArity, len(values))
	}

	alpha := float32(1.0)
	if len(values) == 4 {
		alpha = values[3]
	}

	return NewColor(values[0], values[1], values[2], alpha)
}

// ColorFromBytes creates a Color from 3 or 4 channels in the 0-255 domain.
// Each channel is divided by 255; a missing alpha is 255.
func ColorFromBytes(values []uint8) (Color, error) {
	if len(values) < 3 || len(values) > 4 {
		return Color{}, fmt.Errorf("%w (actual: %d)", ErrColorArity, len(values))
	}

	alpha := uint8(255)
	if len(values) == 4 {
		alpha = values[3]
	}

	return NewColor(
		float32(values[0])/255,
		float32(values[1])/255,
		float32(values[2])/255,
		float32(alpha)/255,
	)
}

// Bytes converts the color to four channels in the 0-255 domain, rounding to the nearest integer.
// Converting back with ColorFromBytes differs by at most 1/255 per channel.
func (c Color) Bytes() ([]uint8, error) {
	if !inUnitRange(c.R) || !inUnitRange(c.G) || !inUnitRange(c.B) || !inUnitRange(c.A) {
		return nil, fmt.Errorf("%w: values must be between 0.0 and 1.0, got %+v", ErrColorRange, c)
	}

	return []uint8{toByte(c.R), toByte(c.G), toByte(c.B), toByte(c.A)}, nil
}

// Floats returns the channels as a slice in r, g, b, a order.
func (c Color) Floats() []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

// Vec4 returns the color as a mathgl vector.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

func inUnitRange(v float32) bool {
	return v >= 0 && v <= 1
}

func toByte(v float32) uint8 {
	return uint8(math.Round(float64(float32(v * 255))))
}

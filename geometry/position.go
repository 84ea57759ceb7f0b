package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Position is a point in 3D space. Coordinates are unconstrained.
type Position struct {
	X float32
	Y float32
	Z float32
}

// NewPosition creates a Position from its coordinates.
func NewPosition(x, y, z float32) Position {
	return Position{X: x, Y: y, Z: z}
}

// PositionFromFloats creates a Position from exactly three coordinates.
func PositionFromFloats(values []float32) (Position, error) {
	if len(values) != 3 {
		return Position{}, fmt.Errorf("%w (actual: %d)", ErrPositionArity, len(values))
	}

	return NewPosition(values[0], values[1], values[2]), nil
}

// PositionFromVec3 creates a Position from a mathgl vector.
func PositionFromVec3(v mgl32.Vec3) Position {
	return NewPosition(v.X(), v.Y(), v.Z())
}

// Vec3 returns the position as a mathgl vector.
func (p Position) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{p.X, p.Y, p.Z}
}

// Floats returns the coordinates as a slice in x, y, z order.
func (p Position) Floats() []float32 {
	return []float32{p.X, p.Y, p.Z}
}

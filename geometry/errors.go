package geometry

import "errors"

// Sentinel errors returned by the geometry constructors.
var (
	// ErrPositionArity indicates a position was built from a number of values other than three.
	ErrPositionArity = errors.New("position requires exactly 3 values")
	// ErrColorArity indicates a color was built from fewer than three or more than four channels.
	ErrColorArity = errors.New("color requires 3 or 4 channels")
	// ErrColorRange indicates a color channel was outside of [0.0, 1.0].
	ErrColorRange = errors.New("color channel out of range")
)

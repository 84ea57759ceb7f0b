package parser

import (
	"math"
	"strconv"

	"github.com/shibukawa/offmesh/geometry"
)

// parseUnsigned parses a non-negative decimal integer that fits into an int.
func parseUnsigned(s string) (int, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}

	if v > math.MaxInt {
		return 0, &strconv.NumError{Func: "ParseUint", Num: s, Err: strconv.ErrRange}
	}

	return int(v), nil
}

func parseFloat32(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}

	return float32(v), nil
}

func parseByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, err
	}

	return uint8(v), nil
}

// parsePosition converts exactly three coordinate tokens.
func parsePosition(lineIndex int, parts []string) (geometry.Position, error) {
	if len(parts) != 3 {
		return geometry.Position{}, newError(InvalidVertexPosition, lineIndex, nil,
			"invalid number of coordinates given (expected: 3, actual: %d)", len(parts))
	}

	coords := make([]float32, 0, 3)
	for _, part := range parts {
		v, err := parseFloat32(part)
		if err != nil {
			return geometry.Position{}, newError(InvalidVertexPosition, lineIndex, err,
				"failed to parse coordinate %q as number", part)
		}

		coords = append(coords, v)
	}

	position, err := geometry.PositionFromFloats(coords)
	if err != nil {
		return geometry.Position{}, newError(InvalidVertexPosition, lineIndex, err, "%v", err)
	}

	return position, nil
}

// parseColor converts color tokens according to format. Integer formats go through the
// byte domain, float formats are read as reals.
func parseColor(lineIndex int, parts []string, format ColorFormat) (*geometry.Color, error) {
	if len(parts) != format.ChannelCount() {
		return nil, newError(InvalidColor, lineIndex, nil,
			"invalid number of color elements given (expected: %d, actual: %d)", format.ChannelCount(), len(parts))
	}

	var (
		color geometry.Color
		err   error
	)

	if format.IsFloat() {
		channels := make([]float32, 0, len(parts))
		for _, part := range parts {
			v, perr := parseFloat32(part)
			if perr != nil {
				return nil, newError(InvalidColor, lineIndex, perr, "failed to parse color %q as float", part)
			}

			channels = append(channels, v)
		}

		color, err = geometry.ColorFromFloats(channels)
	} else {
		channels := make([]uint8, 0, len(parts))
		for _, part := range parts {
			v, perr := parseByte(part)
			if perr != nil {
				return nil, newError(InvalidColor, lineIndex, perr, "failed to parse color %q as integer 0-255", part)
			}

			channels = append(channels, v)
		}

		color, err = geometry.ColorFromBytes(channels)
	}

	if err != nil {
		return nil, newError(InvalidColor, lineIndex, err, "%v", err)
	}

	return &color, nil
}

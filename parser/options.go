package parser

import (
	"fmt"
	"math"
	"strings"
)

// ColorFormat controls how trailing color tokens of vertex and face lines are read.
type ColorFormat int

const (
	// RGBFloat reads three channels in [0.0, 1.0].
	RGBFloat ColorFormat = iota
	// RGBAFloat reads four channels in [0.0, 1.0].
	RGBAFloat
	// RGBInteger reads three channels in [0, 255].
	RGBInteger
	// RGBAInteger reads four channels in [0, 255].
	RGBAInteger
)

// DefaultColorFormat is the color format used by DefaultOptions.
const DefaultColorFormat = RGBAFloat

var colorFormatNames = map[ColorFormat]string{
	RGBFloat:    "RGBFloat",
	RGBAFloat:   "RGBAFloat",
	RGBInteger:  "RGBInteger",
	RGBAInteger: "RGBAInteger",
}

// ColorFormats lists every color format.
var ColorFormats = []ColorFormat{RGBFloat, RGBAFloat, RGBInteger, RGBAInteger}

// ParseColorFormat resolves a color format by name. Matching ignores case,
// underscores and dashes, so "RGBAFloat", "rgba_float" and "rgba-float" are equal.
func ParseColorFormat(name string) (ColorFormat, error) {
	normalized := strings.NewReplacer("_", "", "-", "").Replace(strings.TrimSpace(name))
	for _, format := range ColorFormats {
		if strings.EqualFold(normalized, colorFormatNames[format]) {
			return format, nil
		}
	}

	return 0, fmt.Errorf("%w: '%s': must be one of RGBFloat, RGBAFloat, RGBInteger, RGBAInteger", ErrUnknownColorFormat, name)
}

// String returns the name of the color format.
func (f ColorFormat) String() string {
	if name, ok := colorFormatNames[f]; ok {
		return name
	}

	return fmt.Sprintf("ColorFormat(%d)", int(f))
}

// IsFloat reports whether channels are reals in [0.0, 1.0].
func (f ColorFormat) IsFloat() bool {
	return f == RGBFloat || f == RGBAFloat
}

// IsInteger reports whether channels are integers in [0, 255].
func (f ColorFormat) IsInteger() bool {
	return !f.IsFloat()
}

// HasAlpha reports whether the format carries an alpha channel.
func (f ColorFormat) HasAlpha() bool {
	return f == RGBAFloat || f == RGBAInteger
}

// ChannelCount returns the number of color tokens expected on a line.
func (f ColorFormat) ChannelCount() int {
	if f.HasAlpha() {
		return 4
	}

	return 3
}

// Limits bounds the resources a parse may consume. Counts above a limit abort
// parsing with LimitExceeded before anything is allocated for them.
type Limits struct {
	// VertexCount is the maximum number of vertices a document may declare.
	VertexCount int `yaml:"vertex_count"`
	// FaceCount is the maximum number of faces a document may declare.
	FaceCount int `yaml:"face_count"`
	// FaceVertexCount is the maximum number of vertices a single face may declare.
	FaceVertexCount int `yaml:"face_vertex_count"`
}

// Default limit values.
const (
	DefaultVertexCountLimit     = 2048
	DefaultFaceCountLimit       = 4096
	DefaultFaceVertexCountLimit = 64
)

var (
	// MaxLimits disables every limit.
	MaxLimits = Limits{VertexCount: math.MaxInt, FaceCount: math.MaxInt, FaceVertexCount: math.MaxInt}
	// MinLimits only accepts documents without vertices and faces.
	MinLimits = Limits{}
)

// DefaultLimits returns limits that fit ordinary models while bounding hostile input.
func DefaultLimits() Limits {
	return Limits{
		VertexCount:     DefaultVertexCountLimit,
		FaceCount:       DefaultFaceCountLimit,
		FaceVertexCount: DefaultFaceVertexCountLimit,
	}
}

// Options controls how a document is interpreted.
type Options struct {
	ColorFormat ColorFormat
	Limits      Limits
}

// DefaultOptions returns RGBAFloat colors with DefaultLimits.
func DefaultOptions() Options {
	return Options{
		ColorFormat: DefaultColorFormat,
		Limits:      DefaultLimits(),
	}
}

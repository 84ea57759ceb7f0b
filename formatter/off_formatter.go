package formatter

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/shibukawa/offmesh/geometry"
	"github.com/shibukawa/offmesh/parser"
	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places used for coordinates and float colors.
const DefaultPrecision = 6

// OFFFormatter writes meshes as canonical OFF documents
type OFFFormatter struct {
	precision   int32
	colorFormat parser.ColorFormat
}

// FormatterOptions configures an OFFFormatter
type FormatterOptions func(*OFFFormatter)

// WithPrecision sets the number of decimal places. Trailing zeros are always trimmed.
func WithPrecision(precision int) FormatterOptions {
	return func(f *OFFFormatter) {
		f.precision = int32(max(precision, 0))
	}
}

// WithColorFormat sets how colors are written. RGB formats drop the alpha channel.
func WithColorFormat(format parser.ColorFormat) FormatterOptions {
	return func(f *OFFFormatter) {
		f.colorFormat = format
	}
}

// NewOFFFormatter creates a new OFF formatter
func NewOFFFormatter(opts ...FormatterOptions) *OFFFormatter {
	f := &OFFFormatter{
		precision:   DefaultPrecision,
		colorFormat: parser.DefaultColorFormat,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// ColorFormat returns the color format the formatter writes.
func (f *OFFFormatter) ColorFormat() parser.ColorFormat {
	return f.colorFormat
}

// Format renders mesh as an OFF document.
//
// The header carries mesh.EdgeCount() as edge count. The output parses back to
// the same mesh when read with the formatter's color format, up to the
// configured precision.
func (f *OFFFormatter) Format(mesh *geometry.Mesh) (string, error) {
	var sb strings.Builder

	sb.WriteString(parser.Header)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "%d %d %d\n", mesh.VertexCount(), mesh.FaceCount(), mesh.EdgeCount())

	for i, vertex := range mesh.Vertices {
		fields := make([]string, 0, 7)
		for _, v := range vertex.Position.Floats() {
			fields = append(fields, f.formatFloat(v))
		}

		colors, err := f.formatColor(vertex.Color)
		if err != nil {
			return "", fmt.Errorf("vertex %d: %w", i, err)
		}

		sb.WriteString(strings.Join(append(fields, colors...), " "))
		sb.WriteString("\n")
	}

	for i, face := range mesh.Faces {
		fields := make([]string, 0, len(face.Vertices)+5)
		fields = append(fields, strconv.Itoa(len(face.Vertices)))

		for _, index := range face.Vertices {
			fields = append(fields, strconv.Itoa(index))
		}

		colors, err := f.formatColor(face.Color)
		if err != nil {
			return "", fmt.Errorf("face %d: %w", i, err)
		}

		sb.WriteString(strings.Join(append(fields, colors...), " "))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// FormatText parses an OFF document and formats it again.
func (f *OFFFormatter) FormatText(text string, options parser.Options) (string, error) {
	mesh, err := parser.Parse(text, options)
	if err != nil {
		return "", err
	}

	return f.Format(mesh)
}

// FormatFromReader formats an OFF document from a reader and writes to a writer
func (f *OFFFormatter) FormatFromReader(reader io.Reader, writer io.Writer, options parser.Options) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.FormatText(string(input), options)
	if err != nil {
		return fmt.Errorf("failed to format OFF document: %w", err)
	}

	_, err = io.WriteString(writer, formatted)

	return err
}

func (f *OFFFormatter) formatColor(color *geometry.Color) ([]string, error) {
	if color == nil {
		return nil, nil
	}

	channels := f.colorFormat.ChannelCount()

	if f.colorFormat.IsInteger() {
		bytes, err := color.Bytes()
		if err != nil {
			return nil, err
		}

		fields := make([]string, 0, channels)
		for _, b := range bytes[:channels] {
			fields = append(fields, strconv.Itoa(int(b)))
		}

		return fields, nil
	}

	fields := make([]string, 0, channels)
	for _, v := range color.Floats()[:channels] {
		fields = append(fields, f.formatFloat(v))
	}

	return fields, nil
}

// formatFloat renders v rounded to the configured precision without trailing zeros.
func (f *OFFFormatter) formatFloat(v float32) string {
	if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	}

	d := decimal.NewFromFloat32(v).Round(f.precision)
	if d.IsZero() {
		return "0"
	}

	return d.String()
}

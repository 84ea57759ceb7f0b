package parser

import (
	"github.com/shibukawa/offmesh/geometry"
	"github.com/shibukawa/offmesh/tokenizer"
)

// Header is the token every OFF document starts with.
const Header = "OFF"

// maxPreallocation caps the capacity reserved from declared counts. Larger
// documents still parse; their slices grow while appending.
const maxPreallocation = 1 << 16

// Parse parses an OFF document into a mesh.
//
// The document is read in a single pass through the stages
// header, counts, vertices and faces. The first failure aborts parsing and is
// returned as an *Error; no partial mesh is returned. Logical lines after the
// declared faces are ignored.
//
// Parse has no shared state and is safe to call concurrently.
func Parse(text string, options Options) (*geometry.Mesh, error) {
	return newDocumentParser(text, options).parse()
}

// documentParser holds the cursor and accumulator of a single Parse call.
type documentParser struct {
	lines         *tokenizer.LineSource
	prevLineIndex int
	options       Options

	vertexCount int
	faceCount   int
	mesh        *geometry.Mesh
}

func newDocumentParser(text string, options Options) *documentParser {
	return &documentParser{
		lines:   tokenizer.NewLineSource(text),
		options: options,
		mesh:    &geometry.Mesh{},
	}
}

func (p *documentParser) parse() (*geometry.Mesh, error) {
	if err := p.parseHeader(); err != nil {
		return nil, err
	}

	if err := p.parseCounts(); err != nil {
		return nil, err
	}

	if err := p.parseVertices(); err != nil {
		return nil, err
	}

	if err := p.parseFaces(); err != nil {
		return nil, err
	}

	return p.mesh, nil
}

func (p *documentParser) nextLine() (tokenizer.Line, bool) {
	line, ok := p.lines.Next()
	if ok {
		p.prevLineIndex = line.Index
	}

	return line, ok
}

// missing reports the line after the last consumed one.
func (p *documentParser) missing(what string) error {
	return newError(Missing, p.prevLineIndex+1, nil, "expected %s", what)
}

func (p *documentParser) parseHeader() error {
	line, ok := p.nextLine()
	if !ok {
		return &Error{Kind: Empty, LineIndex: 0}
	}

	if line.Content != Header {
		return newError(InvalidHeader, line.Index, nil, "first non-comment line should be `%s`", Header)
	}

	return nil
}

func (p *documentParser) parseCounts() error {
	line, ok := p.nextLine()
	if !ok {
		return p.missing("counts")
	}

	parts := line.Fields()
	if len(parts) < 2 || len(parts) > 3 {
		return newError(InvalidCounts, line.Index, nil,
			"invalid amount of counts present (expected: 2-3, actual: %d)", len(parts))
	}

	counts := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := parseUnsigned(part)
		if err != nil {
			return newError(InvalidCounts, line.Index, err, "failed to parse count %q as number", part)
		}

		counts = append(counts, n)
	}

	// The edge count, counts[2], is accepted but never checked against the faces.
	p.vertexCount, p.faceCount = counts[0], counts[1]

	limits := p.options.Limits
	if p.vertexCount > limits.VertexCount {
		return p.limitExceeded(line.Index, VertexCountLimit, limits.VertexCount, p.vertexCount)
	}

	if p.faceCount > limits.FaceCount {
		return p.limitExceeded(line.Index, FaceCountLimit, limits.FaceCount, p.faceCount)
	}

	return nil
}

func (p *documentParser) limitExceeded(lineIndex int, limit Limit, configured, actual int) error {
	cause := &LimitError{Limit: limit, Configured: configured, Actual: actual}
	return newError(LimitExceeded, lineIndex, cause, "%s", cause.Error())
}

func (p *documentParser) parseVertices() error {
	p.mesh.Vertices = make([]geometry.Vertex, 0, min(p.vertexCount, maxPreallocation))

	for range p.vertexCount {
		line, ok := p.nextLine()
		if !ok {
			return p.missing("vertex definition")
		}

		vertex, err := p.parseVertex(line)
		if err != nil {
			return err
		}

		p.mesh.Vertices = append(p.mesh.Vertices, vertex)
	}

	return nil
}

func (p *documentParser) parseVertex(line tokenizer.Line) (geometry.Vertex, error) {
	parts := line.Fields()
	if len(parts) < 3 {
		return geometry.Vertex{}, newError(InvalidVertexPosition, line.Index, nil,
			"not enough parts for position (expected: >= 3, actual: %d)", len(parts))
	}

	channels := p.options.ColorFormat.ChannelCount()
	if trailing := len(parts) - 3; trailing != 0 && trailing != channels {
		return geometry.Vertex{}, newError(InvalidVertexPosition, line.Index, nil,
			"invalid number of values after position (expected: 0 or %d, actual: %d)", channels, trailing)
	}

	position, err := parsePosition(line.Index, parts[:3])
	if err != nil {
		return geometry.Vertex{}, err
	}

	var color *geometry.Color
	if len(parts) > 3 {
		color, err = parseColor(line.Index, parts[3:], p.options.ColorFormat)
		if err != nil {
			return geometry.Vertex{}, err
		}
	}

	return geometry.NewVertex(position, color), nil
}

func (p *documentParser) parseFaces() error {
	p.mesh.Faces = make([]geometry.Face, 0, min(p.faceCount, maxPreallocation))

	for range p.faceCount {
		line, ok := p.nextLine()
		if !ok {
			return p.missing("face definition")
		}

		face, err := p.parseFace(line)
		if err != nil {
			return err
		}

		p.mesh.Faces = append(p.mesh.Faces, face)
	}

	return nil
}

func (p *documentParser) parseFace(line tokenizer.Line) (geometry.Face, error) {
	parts := line.Fields()
	if len(parts) < 4 {
		return geometry.Face{}, newError(InvalidFace, line.Index, nil,
			"not enough arguments, at least three vertex indices required (e.g. `3 1 2 3`), %d arguments given", len(parts))
	}

	vertexCount, err := parseUnsigned(parts[0])
	if err != nil {
		return geometry.Face{}, newError(InvalidFace, line.Index, err,
			"failed to parse vertex count %q of face", parts[0])
	}

	limit := p.options.Limits.FaceVertexCount
	if vertexCount > limit {
		return geometry.Face{}, p.limitExceeded(line.Index, FaceVertexCountLimit, limit, vertexCount)
	}

	if vertexCount < 3 {
		return geometry.Face{}, newError(InvalidFace, line.Index, nil,
			"a face requires at least 3 vertices (actual: %d)", vertexCount)
	}

	parts = parts[1:]

	vertices, err := p.parseFaceIndices(line.Index, vertexCount, parts)
	if err != nil {
		return geometry.Face{}, err
	}

	parts = parts[vertexCount:]

	var color *geometry.Color
	if len(parts) > 0 {
		color, err = parseColor(line.Index, parts, p.options.ColorFormat)
		if err != nil {
			return geometry.Face{}, err
		}
	}

	return geometry.NewFace(vertices, color), nil
}

func (p *documentParser) parseFaceIndices(lineIndex, vertexCount int, parts []string) ([]int, error) {
	if len(parts) < vertexCount {
		return nil, newError(InvalidFaceIndex, lineIndex, nil,
			"invalid number of face indices given (expected: %d, actual: %d)", vertexCount, len(parts))
	}

	vertices := make([]int, 0, vertexCount)
	for _, part := range parts[:vertexCount] {
		index, err := parseUnsigned(part)
		if err != nil {
			return nil, newError(InvalidFaceIndex, lineIndex, err, "failed to parse vertex index %q as number", part)
		}

		if index >= p.vertexCount {
			return nil, newError(InvalidFaceIndex, lineIndex, nil,
				"vertex index %d out of range (vertex count: %d)", index, p.vertexCount)
		}

		vertices = append(vertices, index)
	}

	return vertices, nil
}

package geometry

import "github.com/go-gl/mathgl/mgl32"

// Vertex is a mesh vertex. Color is nil when the vertex line carried no color.
type Vertex struct {
	Position Position
	Color    *Color
}

// NewVertex creates a Vertex.
func NewVertex(position Position, color *Color) Vertex {
	return Vertex{Position: position, Color: color}
}

// Face is a polygon referencing vertices of its mesh by index, in winding order.
// Color is nil when the face line carried no color.
type Face struct {
	Vertices []int
	Color    *Color
}

// NewFace creates a Face.
func NewFace(vertices []int, color *Color) Face {
	return Face{Vertices: vertices, Color: color}
}

// Indices returns the vertex indices of the face.
func (f Face) Indices() []int {
	return f.Vertices
}

// Mesh is an ordered list of vertices and an ordered list of faces referencing them.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// FaceCount returns the number of faces.
func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

// EdgeCount returns the sum over all faces of the face vertex count minus one.
//
// This mirrors the count commonly written to the OFF header and is not the number
// of distinct edges of the mesh.
func (m *Mesh) EdgeCount() int {
	count := 0
	for _, face := range m.Faces {
		if len(face.Vertices) > 0 {
			count += len(face.Vertices) - 1
		}
	}

	return count
}

// Bounds returns the axis aligned bounding box of all vertex positions.
// ok is false for a mesh without vertices.
func (m *Mesh) Bounds() (minimum, maximum mgl32.Vec3, ok bool) {
	if len(m.Vertices) == 0 {
		return mgl32.Vec3{}, mgl32.Vec3{}, false
	}

	minimum = m.Vertices[0].Position.Vec3()
	maximum = minimum

	for _, vertex := range m.Vertices[1:] {
		p := vertex.Position.Vec3()
		for axis := range 3 {
			minimum[axis] = min(minimum[axis], p[axis])
			maximum[axis] = max(maximum[axis], p[axis])
		}
	}

	return minimum, maximum, true
}

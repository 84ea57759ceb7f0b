package exporter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/shibukawa/offmesh/geometry"
)

// X3D profile and version written to the root element.
const (
	X3DProfile = "Interchange"
	X3DVersion = "3.3"
)

// X3D exports mesh as an X3D scene holding a single IndexedFaceSet.
//
// Colors are written as ColorRGBA. Face colors are used when every face is
// colored, otherwise vertex colors when every vertex is colored. Partial
// coloring cannot be expressed and is dropped.
func X3D(mesh *geometry.Mesh) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("X3D")
	root.CreateAttr("profile", X3DProfile)
	root.CreateAttr("version", X3DVersion)

	shape := root.CreateElement("Scene").CreateElement("Shape")

	faceSet := shape.CreateElement("IndexedFaceSet")
	faceSet.CreateAttr("solid", "false")
	faceSet.CreateAttr("coordIndex", coordIndex(mesh.Faces))

	var colors []*geometry.Color

	switch {
	case mesh.FaceCount() > 0 && allFacesColored(mesh.Faces):
		faceSet.CreateAttr("colorPerVertex", "false")

		for _, face := range mesh.Faces {
			colors = append(colors, face.Color)
		}
	case mesh.VertexCount() > 0 && allVerticesColored(mesh.Vertices):
		faceSet.CreateAttr("colorPerVertex", "true")

		for _, vertex := range mesh.Vertices {
			colors = append(colors, vertex.Color)
		}
	}

	points := make([]string, 0, mesh.VertexCount())
	for _, vertex := range mesh.Vertices {
		points = append(points, joinFloats(vertex.Position.Floats()))
	}

	faceSet.CreateElement("Coordinate").CreateAttr("point", strings.Join(points, ", "))

	if len(colors) > 0 {
		values := make([]string, 0, len(colors))
		for _, color := range colors {
			values = append(values, joinFloats(color.Floats()))
		}

		faceSet.CreateElement("ColorRGBA").CreateAttr("color", strings.Join(values, ", "))
	}

	doc.Indent(2)

	data, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to write X3D document: %w", err)
	}

	return data, nil
}

// coordIndex lists the vertex indices of every face, each face terminated by -1.
func coordIndex(faces []geometry.Face) string {
	parts := make([]string, 0, len(faces))
	for _, face := range faces {
		indices := make([]string, 0, len(face.Vertices)+1)
		for _, index := range face.Vertices {
			indices = append(indices, strconv.Itoa(index))
		}

		parts = append(parts, strings.Join(append(indices, "-1"), " "))
	}

	return strings.Join(parts, " ")
}

func allFacesColored(faces []geometry.Face) bool {
	for _, face := range faces {
		if face.Color == nil {
			return false
		}
	}

	return true
}

func allVerticesColored(vertices []geometry.Vertex) bool {
	for _, vertex := range vertices {
		if vertex.Color == nil {
			return false
		}
	}

	return true
}

func joinFloats(values []float32) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.FormatFloat(float64(v), 'g', -1, 32))
	}

	return strings.Join(parts, " ")
}

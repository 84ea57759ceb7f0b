// Package exporter converts meshes into interchange formats.
package exporter

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/offmesh/geometry"
)

// ErrUnknownFormat is returned by Export for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown export format")

// Format names accepted by Export
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatX3D  = "x3d"
)

// Formats lists every supported export format
var Formats = []string{FormatYAML, FormatJSON, FormatX3D}

// MeshDocument is the serialized form of a mesh shared by the YAML and JSON exports.
type MeshDocument struct {
	VertexCount int              `json:"vertex_count" yaml:"vertex_count"`
	FaceCount   int              `json:"face_count" yaml:"face_count"`
	EdgeCount   int              `json:"edge_count" yaml:"edge_count"`
	Vertices    []VertexDocument `json:"vertices" yaml:"vertices"`
	Faces       []FaceDocument   `json:"faces" yaml:"faces"`
}

// VertexDocument is a serialized vertex. Color is omitted for uncolored vertices.
type VertexDocument struct {
	Position []float32 `json:"position" yaml:"position,flow"`
	Color    []float32 `json:"color,omitempty" yaml:"color,omitempty,flow"`
}

// FaceDocument is a serialized face. Color is omitted for uncolored faces.
type FaceDocument struct {
	Vertices []int     `json:"vertices" yaml:"vertices,flow"`
	Color    []float32 `json:"color,omitempty" yaml:"color,omitempty,flow"`
}

// NewMeshDocument builds the serialized form of mesh.
func NewMeshDocument(mesh *geometry.Mesh) MeshDocument {
	doc := MeshDocument{
		VertexCount: mesh.VertexCount(),
		FaceCount:   mesh.FaceCount(),
		EdgeCount:   mesh.EdgeCount(),
		Vertices:    make([]VertexDocument, 0, mesh.VertexCount()),
		Faces:       make([]FaceDocument, 0, mesh.FaceCount()),
	}

	for _, vertex := range mesh.Vertices {
		doc.Vertices = append(doc.Vertices, VertexDocument{
			Position: vertex.Position.Floats(),
			Color:    colorFloats(vertex.Color),
		})
	}

	for _, face := range mesh.Faces {
		doc.Faces = append(doc.Faces, FaceDocument{
			Vertices: face.Indices(),
			Color:    colorFloats(face.Color),
		})
	}

	return doc
}

func colorFloats(color *geometry.Color) []float32 {
	if color == nil {
		return nil
	}

	return color.Floats()
}

// YAML exports mesh as a YAML document.
func YAML(mesh *geometry.Mesh) ([]byte, error) {
	data, err := yaml.Marshal(NewMeshDocument(mesh))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mesh as YAML: %w", err)
	}

	return data, nil
}

// JSON exports mesh as an indented JSON document.
func JSON(mesh *geometry.Mesh) ([]byte, error) {
	data, err := json.MarshalIndent(NewMeshDocument(mesh), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal mesh as JSON: %w", err)
	}

	return append(data, '\n'), nil
}

// Export exports mesh in the named format.
func Export(mesh *geometry.Mesh, format string) ([]byte, error) {
	switch format {
	case FormatYAML:
		return YAML(mesh)
	case FormatJSON:
		return JSON(mesh)
	case FormatX3D:
		return X3D(mesh)
	default:
		return nil, fmt.Errorf("%w: '%s': must be one of yaml, json, x3d", ErrUnknownFormat, format)
	}
}

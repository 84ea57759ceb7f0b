package meshrule

import "github.com/shibukawa/offmesh/geometry"

// Stats summarizes a mesh for rule evaluation.
type Stats struct {
	VertexCount     int
	FaceCount       int
	EdgeCount       int
	ColoredVertices int
	ColoredFaces    int
	// MaxFaceVertices is zero for a mesh without faces.
	MaxFaceVertices int
}

// StatsOf computes the statistics of mesh.
func StatsOf(mesh *geometry.Mesh) Stats {
	stats := Stats{
		VertexCount: mesh.VertexCount(),
		FaceCount:   mesh.FaceCount(),
		EdgeCount:   mesh.EdgeCount(),
	}

	for _, vertex := range mesh.Vertices {
		if vertex.Color != nil {
			stats.ColoredVertices++
		}
	}

	for _, face := range mesh.Faces {
		if face.Color != nil {
			stats.ColoredFaces++
		}

		stats.MaxFaceVertices = max(stats.MaxFaceVertices, len(face.Vertices))
	}

	return stats
}

// Activation returns the CEL variables of the statistics.
func (s Stats) Activation() map[string]any {
	return map[string]any{
		VarVertexCount:     int64(s.VertexCount),
		VarFaceCount:       int64(s.FaceCount),
		VarEdgeCount:       int64(s.EdgeCount),
		VarColoredVertices: int64(s.ColoredVertices),
		VarColoredFaces:    int64(s.ColoredFaces),
		VarMaxFaceVertices: int64(s.MaxFaceVertices),
	}
}

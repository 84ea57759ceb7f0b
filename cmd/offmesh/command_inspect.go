package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/shibukawa/offmesh/meshrule"
)

// InspectCmd represents the inspect command
type InspectCmd struct {
	Files []string `arg:"" help:"OFF or Markdown files to inspect" type:"path"`
}

// Run executes the inspect command
func (cmd *InspectCmd) Run(ctx *Context) error {
	_, options, err := parserOptions(ctx)
	if err != nil {
		return err
	}

	if ctx.Verbose {
		color.Blue("Inspecting %d file(s) as %s", len(cmd.Files), options.ColorFormat)
	}

	for _, file := range cmd.Files {
		meshes, err := loadMeshes(file, options)
		if err != nil {
			return err
		}

		for _, loaded := range meshes {
			writeInspection(ctx.Stdout, loaded)
		}
	}

	return nil
}

func writeInspection(w io.Writer, loaded loadedMesh) {
	stats := meshrule.StatsOf(loaded.Mesh)

	fmt.Fprintf(w, "%s\n", loaded.Name)
	fmt.Fprintf(w, "  vertices: %d (colored: %d)\n", stats.VertexCount, stats.ColoredVertices)
	fmt.Fprintf(w, "  faces:    %d (colored: %d, max vertices: %d)\n", stats.FaceCount, stats.ColoredFaces, stats.MaxFaceVertices)
	fmt.Fprintf(w, "  edges:    %d\n", stats.EdgeCount)

	if minimum, maximum, ok := loaded.Mesh.Bounds(); ok {
		fmt.Fprintf(w, "  bounds:   %s - %s\n", formatVec3(minimum), formatVec3(maximum))
	}
}

func formatVec3(v mgl32.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

package main

import (
	"fmt"
	"strings"

	"github.com/shibukawa/offmesh"
	"github.com/shibukawa/offmesh/formatter"
	"github.com/shibukawa/offmesh/geometry"
	"github.com/shibukawa/offmesh/markdownparser"
	"github.com/shibukawa/offmesh/parser"
)

// loadedMesh is a mesh read from a file. Name is the path, with a `#<n>` suffix
// for the n-th OFF block of a Markdown file.
type loadedMesh struct {
	Name string
	Mesh *geometry.Mesh
}

// loadMeshes reads an OFF file, or every OFF block of a Markdown file.
func loadMeshes(path string, options parser.Options) ([]loadedMesh, error) {
	if formatter.IsMarkdownFile(path) {
		return loadMarkdownMeshes(path, options)
	}

	mesh, err := offmesh.ParseFile(path, options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return []loadedMesh{{Name: path, Mesh: mesh}}, nil
}

func loadMarkdownMeshes(path string, options parser.Options) ([]loadedMesh, error) {
	text, err := offmesh.ReadFile(path)
	if err != nil {
		return nil, err
	}

	doc, err := markdownparser.Parse(strings.NewReader(text))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	options, err = doc.ParserOptions(options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	meshes, err := doc.ParseAll(options)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	result := make([]loadedMesh, 0, len(meshes))
	for i, mesh := range meshes {
		result = append(result, loadedMesh{Name: fmt.Sprintf("%s#%d", path, i+1), Mesh: mesh})
	}

	return result, nil
}

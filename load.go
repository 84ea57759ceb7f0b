// Package offmesh reads meshes in the Object File Format (OFF).
//
// The parsing itself lives in the parser package; this package adds file access
// and the YAML configuration shared by the command line tool.
package offmesh

import (
	"fmt"
	"os"

	"github.com/shibukawa/offmesh/geometry"
	"github.com/shibukawa/offmesh/parser"
)

type (
	Mesh    = geometry.Mesh
	Options = parser.Options
)

// ReadFile reads a document into a string. Failures wrap ErrReadFile.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrReadFile, path, err)
	}

	return string(data), nil
}

// ParseFile reads and parses the OFF document at path.
//
// I/O failures wrap ErrReadFile; parse failures are returned as *parser.Error
// unchanged.
func ParseFile(path string, options Options) (*Mesh, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return parser.Parse(text, options)
}

// Parse parses an OFF document held in memory.
func Parse(text string, options Options) (*Mesh, error) {
	return parser.Parse(text, options)
}

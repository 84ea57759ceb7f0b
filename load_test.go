package offmesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/offmesh/parser"
	"github.com/shibukawa/offmesh/testdata"
)

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cube.off")
	err := os.WriteFile(path, []byte(testdata.MustReadOFF("cube.off")), 0644)
	assert.NoError(t, err)

	mesh, err := ParseFile(path, parser.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 8, mesh.VertexCount())
	assert.Equal(t, 6, mesh.FaceCount())
}

func TestParseFile_ReadFailure(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.off"), parser.DefaultOptions())
	assert.True(t, errors.Is(err, ErrReadFile))
	assert.True(t, errors.Is(err, os.ErrNotExist))

	_, ok := parser.AsError(err)
	assert.False(t, ok)
}

func TestParseFile_ParseFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.off")
	err := os.WriteFile(path, []byte("OFFX\n"), 0644)
	assert.NoError(t, err)

	_, err = ParseFile(path, parser.DefaultOptions())
	assert.False(t, errors.Is(err, ErrReadFile))

	perr, ok := parser.AsError(err)
	assert.True(t, ok)
	assert.Equal(t, parser.InvalidHeader, perr.Kind)
}

func TestParse(t *testing.T) {
	mesh, err := Parse("OFF\n0 0\n", parser.DefaultOptions())
	assert.NoError(t, err)
	assert.Equal(t, 0, mesh.VertexCount())
}

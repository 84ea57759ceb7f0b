package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/offmesh"
	"github.com/shibukawa/offmesh/parser"
	"github.com/shibukawa/offmesh/testdata"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer

	return &Context{
		Config: filepath.Join(t.TempDir(), "offmesh.yaml"),
		Quiet:  false,
		Stdin:  strings.NewReader(""),
		Stdout: &stdout,
	}, &stdout
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o644)
	assert.NoError(t, err)

	return path
}

func TestInspectCmd(t *testing.T) {
	ctx, stdout := newTestContext(t)
	cube := writeFile(t, t.TempDir(), "cube.off", testdata.MustReadOFF("cube.off"))

	cmd := &InspectCmd{Files: []string{cube}}
	err := cmd.Run(ctx)
	assert.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, cube+"\n")
	assert.Contains(t, output, "vertices: 8 (colored: 0)")
	assert.Contains(t, output, "faces:    6 (colored: 6, max vertices: 4)")
	assert.Contains(t, output, "edges:    18")
	assert.Contains(t, output, "bounds:   (-1.632993, -1.632993, -1.154701) - (1.632993, 1.632993, 1.154701)")
}

func TestInspectCmd_ParseError(t *testing.T) {
	ctx, _ := newTestContext(t)
	broken := writeFile(t, t.TempDir(), "broken.off", "OFF\n3 1\n1 0\n")

	err := (&InspectCmd{Files: []string{broken}}).Run(ctx)
	assert.True(t, errors.Is(err, parser.ErrInvalidVertexPosition))
	assert.Contains(t, err.Error(), "broken.off: InvalidVertexPosition @ ln:3")
}

func TestValidateCmd(t *testing.T) {
	dir := t.TempDir()
	cube := writeFile(t, dir, "cube.off", testdata.MustReadOFF("cube.off"))
	broken := writeFile(t, dir, "broken.off", "OFFX\n")
	missing := filepath.Join(dir, "missing.off")

	t.Run("valid file", func(t *testing.T) {
		ctx, stdout := newTestContext(t)

		err := (&ValidateCmd{Files: []string{cube}}).Run(ctx)
		assert.NoError(t, err)
		assert.Contains(t, stdout.String(), "✓ "+cube)
	})

	t.Run("invalid files", func(t *testing.T) {
		ctx, stdout := newTestContext(t)

		err := (&ValidateCmd{Files: []string{cube, broken, missing}}).Run(ctx)
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.Contains(t, err.Error(), "2 of 3 file(s) failed")

		output := stdout.String()
		assert.Contains(t, output, "✓ "+cube)
		assert.Contains(t, output, "InvalidHeader @ ln:1")
		assert.Contains(t, output, "failed to read file")
	})

	t.Run("rules from flags", func(t *testing.T) {
		ctx, stdout := newTestContext(t)

		err := (&ValidateCmd{Files: []string{cube}, Rules: []string{"max_face_vertices == 3"}}).Run(ctx)
		assert.True(t, errors.Is(err, ErrValidationFailed))
		assert.Contains(t, stdout.String(), `rule "max_face_vertices == 3" is not satisfied`)
	})

	t.Run("rules from config", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		writeFile(t, filepath.Dir(ctx.Config), "offmesh.yaml", "rules:\n  - \"colored_vertices > 0\"\n")

		err := (&ValidateCmd{Files: []string{cube}}).Run(ctx)
		assert.True(t, errors.Is(err, ErrValidationFailed))
	})

	t.Run("invalid rule", func(t *testing.T) {
		ctx, _ := newTestContext(t)

		err := (&ValidateCmd{Files: []string{cube}, Rules: []string{"face_count"}}).Run(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile rules")
	})

	t.Run("quiet", func(t *testing.T) {
		ctx, stdout := newTestContext(t)
		ctx.Quiet = true

		err := (&ValidateCmd{Files: []string{cube}}).Run(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "", stdout.String())
	})
}

func TestValidateCmd_ColorFormatOverride(t *testing.T) {
	wiki := writeFile(t, t.TempDir(), "wiki.off", testdata.MustReadOFF("wiki.off"))

	ctx, _ := newTestContext(t)
	err := (&ValidateCmd{Files: []string{wiki}}).Run(ctx)
	assert.True(t, errors.Is(err, ErrValidationFailed))

	ctx, _ = newTestContext(t)
	ctx.Overrides.ColorFormat = "RGBInteger"
	err = (&ValidateCmd{Files: []string{wiki}}).Run(ctx)
	assert.NoError(t, err)

	ctx, _ = newTestContext(t)
	ctx.Overrides.ColorFormat = "CMYK"
	err = (&ValidateCmd{Files: []string{wiki}}).Run(ctx)
	assert.True(t, errors.Is(err, parser.ErrUnknownColorFormat))
}

func TestValidateCmd_Markdown(t *testing.T) {
	dir := t.TempDir()
	doc := writeFile(t, dir, "shapes.md", `---
color_format: RGBInteger
---

# Shapes

`+"```off"+`
OFF
3 1
0 0 0
1 0 0
0 1 0
3 0 1 2 255 0 0
`+"```"+`

`+"```off"+`
OFF
0 0
`+"```"+`
`)

	ctx, stdout := newTestContext(t)
	err := (&ValidateCmd{Files: []string{doc}}).Run(ctx)
	assert.NoError(t, err)
	assert.Contains(t, stdout.String(), "✓ "+doc+"#1")
	assert.Contains(t, stdout.String(), "✓ "+doc+"#2")

	broken := writeFile(t, dir, "broken.md", "# Broken\n\n```off\nOFF\n3 1\n1 0\n```\n")

	ctx, stdout = newTestContext(t)
	err = (&ValidateCmd{Files: []string{broken}}).Run(ctx)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, stdout.String(), "InvalidVertexPosition @ ln:6")

	empty := writeFile(t, dir, "empty.md", "# Nothing\n")

	ctx, stdout = newTestContext(t)
	err = (&ValidateCmd{Files: []string{empty}}).Run(ctx)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Contains(t, stdout.String(), "no OFF code block found")
}

func TestFormatCmd(t *testing.T) {
	input := "OFF # triangle\n3 1\n0.500000 0 0\n0 1.0 0\n\n0 0 1\n3 0 1 2\n"
	expected := "OFF\n3 1 2\n0.5 0 0\n0 1 0\n0 0 1\n3 0 1 2\n"

	t.Run("stdin", func(t *testing.T) {
		ctx, stdout := newTestContext(t)
		ctx.Stdin = strings.NewReader(input)

		err := (&FormatCmd{Precision: -1}).Run(ctx)
		assert.NoError(t, err)
		assert.Equal(t, expected, stdout.String())
	})

	t.Run("write in place", func(t *testing.T) {
		ctx, stdout := newTestContext(t)
		path := writeFile(t, t.TempDir(), "triangle.off", input)

		err := (&FormatCmd{Input: path, Write: true, Precision: -1}).Run(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "", stdout.String())

		data, err := os.ReadFile(path)
		assert.NoError(t, err)
		assert.Equal(t, expected, string(data))
	})

	t.Run("output file", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		dir := t.TempDir()
		path := writeFile(t, dir, "triangle.off", input)
		output := filepath.Join(dir, "formatted.off")

		err := (&FormatCmd{Input: path, Output: output, Precision: -1}).Run(ctx)
		assert.NoError(t, err)

		data, err := os.ReadFile(output)
		assert.NoError(t, err)
		assert.Equal(t, expected, string(data))
	})

	t.Run("check", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		dir := t.TempDir()
		formatted := writeFile(t, dir, "formatted.off", expected)
		unformatted := writeFile(t, dir, "unformatted.off", input)

		err := (&FormatCmd{Input: formatted, Check: true, Precision: -1}).Run(ctx)
		assert.NoError(t, err)

		err = (&FormatCmd{Input: unformatted, Check: true, Precision: -1}).Run(ctx)
		assert.True(t, errors.Is(err, ErrFileNotFormatted))
	})

	t.Run("directory", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		dir := t.TempDir()
		first := writeFile(t, dir, "a.off", input)
		second := writeFile(t, dir, "b.md", "# Mesh\n\n```off\n"+input+"```\n")
		other := writeFile(t, dir, "notes.txt", input)

		err := (&FormatCmd{Input: dir, Write: true, Precision: -1}).Run(ctx)
		assert.NoError(t, err)

		data, err := os.ReadFile(first)
		assert.NoError(t, err)
		assert.Equal(t, expected, string(data))

		data, err = os.ReadFile(second)
		assert.NoError(t, err)
		assert.Equal(t, "# Mesh\n\n```off\n"+expected+"```\n", string(data))

		data, err = os.ReadFile(other)
		assert.NoError(t, err)
		assert.Equal(t, input, string(data))
	})

	t.Run("precision and color format from config", func(t *testing.T) {
		ctx, stdout := newTestContext(t)
		writeFile(t, filepath.Dir(ctx.Config), "offmesh.yaml", "color_format: RGBAFloat\nformat:\n  precision: 2\n  color_format: RGBInteger\n")
		ctx.Stdin = strings.NewReader("OFF\n1 0\n0.123456 1 2 1 0 0 1\n")

		err := (&FormatCmd{Precision: -1}).Run(ctx)
		assert.NoError(t, err)
		assert.Equal(t, "OFF\n1 0 0\n0.12 1 2 255 0 0\n", stdout.String())
	})

	t.Run("parse error", func(t *testing.T) {
		ctx, _ := newTestContext(t)
		ctx.Stdin = strings.NewReader("OFFX\n")

		err := (&FormatCmd{Precision: -1}).Run(ctx)
		assert.True(t, errors.Is(err, parser.ErrInvalidHeader))
	})
}

func TestDumpCmd(t *testing.T) {
	dir := t.TempDir()
	cube := writeFile(t, dir, "cube.off", testdata.MustReadOFF("cube.off"))

	t.Run("json to stdout", func(t *testing.T) {
		ctx, stdout := newTestContext(t)

		err := (&DumpCmd{File: cube, Format: "json", Block: 1}).Run(ctx)
		assert.NoError(t, err)
		assert.Contains(t, stdout.String(), `"vertex_count": 8`)
	})

	t.Run("x3d to file", func(t *testing.T) {
		ctx, stdout := newTestContext(t)
		output := filepath.Join(dir, "cube.x3d")

		err := (&DumpCmd{File: cube, Format: "x3d", Output: output, Block: 1}).Run(ctx)
		assert.NoError(t, err)
		assert.Contains(t, stdout.String(), "Exported "+cube+" to "+output)

		data, err := os.ReadFile(output)
		assert.NoError(t, err)
		assert.Contains(t, string(data), "<IndexedFaceSet")
	})

	t.Run("block out of range", func(t *testing.T) {
		ctx, _ := newTestContext(t)

		err := (&DumpCmd{File: cube, Format: "yaml", Block: 2}).Run(ctx)
		assert.True(t, errors.Is(err, ErrBlockOutOfRange))
	})
}

func TestVersionCmd(t *testing.T) {
	ctx, stdout := newTestContext(t)

	err := (&VersionCmd{}).Run(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "offmesh v"+Version+"\n", stdout.String())
}

func TestApplyOverrides(t *testing.T) {
	config := offmesh.DefaultConfig()

	applyOverrides(config, Overrides{ColorFormat: "RGBInteger", MaxVertices: 10, MaxFaceVertices: 3})

	assert.Equal(t, "RGBInteger", config.ColorFormat)
	assert.Equal(t, "RGBInteger", config.Format.ColorFormat)
	assert.Equal(t, parser.Limits{
		VertexCount:     10,
		FaceCount:       parser.DefaultFaceCountLimit,
		FaceVertexCount: 3,
	}, config.Limits)

	config = offmesh.DefaultConfig()
	config.Format.ColorFormat = "RGBFloat"

	applyOverrides(config, Overrides{ColorFormat: "RGBInteger"})
	assert.Equal(t, "RGBFloat", config.Format.ColorFormat)
}

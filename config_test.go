package offmesh

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/shibukawa/offmesh/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "offmesh.yaml")
	err := os.WriteFile(configPath, []byte(content), 0644)
	assert.NoError(t, err)

	return configPath
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	config, err := LoadConfig("non-existent-file.yaml")
	assert.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	options, err := config.ParserOptions()
	assert.NoError(t, err)
	assert.Equal(t, parser.DefaultOptions(), options)
}

func TestLoadConfig_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
color_format: rgb_integer
limits:
  vertex_count: 10
  face_count: 20
format:
  precision: 3
rules:
  - "face_count > 0"
  - "max_face_vertices <= 4"
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)

	assert.Equal(t, &Config{
		ColorFormat: "rgb_integer",
		Limits:      parser.Limits{VertexCount: 10, FaceCount: 20, FaceVertexCount: parser.DefaultFaceVertexCountLimit},
		Format:      FormatConfig{Precision: 3, ColorFormat: "rgb_integer"},
		Rules:       []string{"face_count > 0", "max_face_vertices <= 4"},
	}, config)

	options, err := config.ParserOptions()
	assert.NoError(t, err)
	assert.Equal(t, parser.RGBInteger, options.ColorFormat)
	assert.Equal(t, 10, options.Limits.VertexCount)

	output, err := config.OutputColorFormat()
	assert.NoError(t, err)
	assert.Equal(t, parser.RGBInteger, output)
}

func TestLoadConfig_StrictMode_UnknownKeys(t *testing.T) {
	configPath := writeConfig(t, `
color_format: RGBAFloat
limits:
  vertex_count: 10
  edge_count: 5
`)

	_, err := LoadConfig(configPath)
	assert.Error(t, err, "expected error for unknown keys in strict mode")
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfig_ExpandsEnvironment(t *testing.T) {
	t.Setenv("OFFMESH_TEST_COLOR_FORMAT", "RGBInteger")
	t.Setenv("OFFMESH_TEST_OUTPUT_FORMAT", "float")

	configPath := writeConfig(t, `
color_format: ${OFFMESH_TEST_COLOR_FORMAT}
format:
  color_format: RGBA$OFFMESH_TEST_OUTPUT_FORMAT
`)

	config, err := LoadConfig(configPath)
	assert.NoError(t, err)
	assert.Equal(t, "RGBInteger", config.ColorFormat)
	assert.Equal(t, "RGBAfloat", config.Format.ColorFormat)

	output, err := config.OutputColorFormat()
	assert.NoError(t, err)
	assert.Equal(t, parser.RGBAFloat, output)
}

func TestLoadConfig_ValidationFailure(t *testing.T) {
	configPath := writeConfig(t, "color_format: HSV\n")

	_, err := LoadConfig(configPath)
	assert.True(t, errors.Is(err, ErrConfigValidation))
	assert.True(t, errors.Is(err, parser.ErrUnknownColorFormat))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:   "empty config",
			config: Config{},
		},
		{
			name:    "unknown color format",
			config:  Config{ColorFormat: "cmyk"},
			wantErr: "color_format",
		},
		{
			name:    "unknown output color format",
			config:  Config{Format: FormatConfig{ColorFormat: "cmyk"}},
			wantErr: "format.color_format",
		},
		{
			name:    "negative vertex limit",
			config:  Config{Limits: parser.Limits{VertexCount: -1}},
			wantErr: "limits.vertex_count must be non-negative",
		},
		{
			name:    "negative face limit",
			config:  Config{Limits: parser.Limits{FaceCount: -1}},
			wantErr: "limits.face_count must be non-negative",
		},
		{
			name:    "negative face vertex limit",
			config:  Config{Limits: parser.Limits{FaceVertexCount: -1}},
			wantErr: "limits.face_vertex_count must be non-negative",
		},
		{
			name:    "precision too large",
			config:  Config{Format: FormatConfig{Precision: 12}},
			wantErr: "format.precision must be between 0 and 9",
		},
		{
			name:    "empty rule",
			config:  Config{Rules: []string{"face_count > 0", ""}},
			wantErr: "rules[1]: expression is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfig(&tt.config)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, ErrConfigValidation))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	config := &Config{
		Limits: parser.Limits{FaceCount: 1},
		Format: FormatConfig{ColorFormat: "RGBInteger"},
	}

	applyDefaults(config)

	assert.Equal(t, "RGBAFloat", config.ColorFormat)
	assert.Equal(t, parser.Limits{
		VertexCount:     parser.DefaultVertexCountLimit,
		FaceCount:       1,
		FaceVertexCount: parser.DefaultFaceVertexCountLimit,
	}, config.Limits)
	assert.Equal(t, DefaultPrecision, config.Format.Precision)
	assert.Equal(t, "RGBInteger", config.Format.ColorFormat)
	assert.Equal(t, 0, len(config.Rules))
}

func TestConfig_ParserOptionsRejectsUnknownFormat(t *testing.T) {
	config := &Config{ColorFormat: "grayscale"}

	_, err := config.ParserOptions()
	assert.True(t, errors.Is(err, parser.ErrUnknownColorFormat))
}

package main

import (
	"fmt"

	"github.com/shibukawa/offmesh"
	"github.com/shibukawa/offmesh/parser"
)

// LoadConfig loads the configuration file and applies the global flag overrides.
func LoadConfig(ctx *Context) (*offmesh.Config, error) {
	config, err := offmesh.LoadConfig(ctx.Config)
	if err != nil {
		return nil, err
	}

	applyOverrides(config, ctx.Overrides)

	// Flags bypass the file validation, so check the result again
	if _, err := config.ParserOptions(); err != nil {
		return nil, fmt.Errorf("invalid --color-format: %w", err)
	}

	return config, nil
}

func applyOverrides(config *offmesh.Config, overrides Overrides) {
	if overrides.ColorFormat != "" {
		// The output format follows the input format unless configured separately
		if config.Format.ColorFormat == config.ColorFormat {
			config.Format.ColorFormat = overrides.ColorFormat
		}

		config.ColorFormat = overrides.ColorFormat
	}

	if overrides.MaxVertices > 0 {
		config.Limits.VertexCount = overrides.MaxVertices
	}

	if overrides.MaxFaces > 0 {
		config.Limits.FaceCount = overrides.MaxFaces
	}

	if overrides.MaxFaceVertices > 0 {
		config.Limits.FaceVertexCount = overrides.MaxFaceVertices
	}
}

// parserOptions loads the configuration and returns the parser options of ctx.
func parserOptions(ctx *Context) (*offmesh.Config, parser.Options, error) {
	config, err := LoadConfig(ctx)
	if err != nil {
		return nil, parser.Options{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	options, err := config.ParserOptions()
	if err != nil {
		return nil, parser.Options{}, err
	}

	return config, options, nil
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/shibukawa/offmesh/meshrule"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Files []string `arg:"" help:"OFF or Markdown files to validate" type:"path"`
	Rules []string `short:"r" help:"Additional CEL rule every mesh must satisfy (e.g. 'face_count > 0')"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	config, options, err := parserOptions(ctx)
	if err != nil {
		return err
	}

	expressions := append(append([]string{}, config.Rules...), cmd.Rules...)

	rules, err := meshrule.Compile(expressions)
	if err != nil {
		return fmt.Errorf("failed to compile rules: %w", err)
	}

	if ctx.Verbose {
		color.Blue("Validating %d file(s) as %s with %d rule(s)", len(cmd.Files), options.ColorFormat, rules.Len())
	}

	failed := 0

	for _, file := range cmd.Files {
		meshes, err := loadMeshes(file, options)
		if err != nil {
			failed++

			if !ctx.Quiet {
				color.New(color.FgRed).Fprintf(ctx.Stdout, "✗ %v\n", err)
			}

			continue
		}

		fileFailed := false

		for _, loaded := range meshes {
			violations := rules.Check(loaded.Mesh)
			if len(violations) == 0 {
				if !ctx.Quiet {
					color.New(color.FgGreen).Fprintf(ctx.Stdout, "✓ %s\n", loaded.Name)
				}

				continue
			}

			fileFailed = true

			if !ctx.Quiet {
				for _, violation := range violations {
					color.New(color.FgRed).Fprintf(ctx.Stdout, "✗ %s: %v\n", loaded.Name, violation)
				}
			}
		}

		if fileFailed {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d file(s) failed", ErrValidationFailed, failed, len(cmd.Files))
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stdout, "Validation completed successfully\n")
	}

	return nil
}

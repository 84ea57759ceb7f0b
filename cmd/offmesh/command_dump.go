package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/offmesh/exporter"
)

// DumpCmd represents the dump command
type DumpCmd struct {
	File   string `arg:"" help:"OFF or Markdown file to export" type:"path"`
	Format string `short:"f" help:"Output format" default:"yaml" enum:"yaml,json,x3d"`
	Output string `short:"o" help:"Output file (default: stdout)"`
	Block  int    `short:"b" help:"One-based index of the OFF block of a Markdown file" default:"1"`
}

// Run executes the dump command
func (cmd *DumpCmd) Run(ctx *Context) error {
	_, options, err := parserOptions(ctx)
	if err != nil {
		return err
	}

	meshes, err := loadMeshes(cmd.File, options)
	if err != nil {
		return err
	}

	if cmd.Block < 1 || cmd.Block > len(meshes) {
		return fmt.Errorf("%w: %d (blocks: %d)", ErrBlockOutOfRange, cmd.Block, len(meshes))
	}

	loaded := meshes[cmd.Block-1]

	data, err := exporter.Export(loaded.Mesh, cmd.Format)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		_, err = ctx.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(cmd.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
	}

	if !ctx.Quiet {
		color.New(color.FgGreen).Fprintf(ctx.Stdout, "Exported %s to %s\n", loaded.Name, cmd.Output)
	}

	return nil
}

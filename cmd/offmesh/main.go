package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Version of the offmesh command
const Version = "0.1.0"

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool

	// Overrides holds option flags that take precedence over the configuration file.
	Overrides Overrides

	Stdin  io.Reader
	Stdout io.Writer
}

// Overrides are global flags overriding configuration values. Zero values keep the configuration.
type Overrides struct {
	ColorFormat     string `help:"Color format of vertex and face colors (RGBFloat, RGBAFloat, RGBInteger, RGBAInteger)" name:"color-format"`
	MaxVertices     int    `help:"Maximum number of vertices a document may declare" name:"max-vertices"`
	MaxFaces        int    `help:"Maximum number of faces a document may declare" name:"max-faces"`
	MaxFaceVertices int    `help:"Maximum number of vertices of a single face" name:"max-face-vertices"`
}

// CLI represents the command-line interface
var CLI struct {
	Config    string      `help:"Configuration file path" default:"offmesh.yaml"`
	Verbose   bool        `help:"Enable verbose output" short:"v"`
	Quiet     bool        `help:"Suppress output" short:"q"`
	Overrides Overrides   `embed:""`
	Inspect   InspectCmd  `cmd:"" help:"Show statistics of OFF meshes"`
	Validate  ValidateCmd `cmd:"" help:"Validate OFF files and OFF blocks in Markdown files"`
	Format    FormatCmd   `cmd:"" help:"Format OFF files and OFF blocks in Markdown files"`
	Dump      DumpCmd     `cmd:"" help:"Export a mesh as YAML, JSON or X3D"`
	Version   VersionCmd  `cmd:"" help:"Show version information"`
}

// VersionCmd represents the version command
type VersionCmd struct{}

// Run executes the version command
func (cmd *VersionCmd) Run(ctx *Context) error {
	fmt.Fprintf(ctx.Stdout, "offmesh v%s\n", Version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("offmesh"),
		kong.Description("Read, validate and convert meshes in the Object File Format (OFF)."),
	)

	appCtx := &Context{
		Config:    CLI.Config,
		Verbose:   CLI.Verbose,
		Quiet:     CLI.Quiet,
		Overrides: CLI.Overrides,
		Stdin:     os.Stdin,
		Stdout:    os.Stdout,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/shibukawa/offmesh/formatter"
	"github.com/shibukawa/offmesh/parser"
)

// FormatCmd represents the format command
type FormatCmd struct {
	Input     string `arg:"" optional:"" help:"Input file or directory (default: stdin)"`
	Output    string `short:"o" help:"Output file (default: stdout)"`
	Write     bool   `short:"w" help:"Write result to input file instead of stdout"`
	Check     bool   `short:"c" help:"Check if files are formatted (exit 1 if not)"`
	Diff      bool   `short:"d" help:"Show diff instead of rewriting files"`
	Precision int    `short:"p" help:"Decimal places of coordinates and float colors (default: format.precision)" default:"-1"`
}

// fileFormatter formats OFF documents and Markdown files with the configured options
type fileFormatter struct {
	off      *formatter.OFFFormatter
	markdown *formatter.MarkdownFormatter
	options  parser.Options
}

// Run executes the format command
func (cmd *FormatCmd) Run(ctx *Context) error {
	config, options, err := parserOptions(ctx)
	if err != nil {
		return err
	}

	outputFormat, err := config.OutputColorFormat()
	if err != nil {
		return err
	}

	precision := config.Format.Precision
	if cmd.Precision >= 0 {
		precision = cmd.Precision
	}

	offFormatter := formatter.NewOFFFormatter(
		formatter.WithPrecision(precision),
		formatter.WithColorFormat(outputFormat),
	)
	f := &fileFormatter{
		off:      offFormatter,
		markdown: formatter.NewMarkdownFormatter(offFormatter, options),
		options:  options,
	}

	if cmd.Input == "" {
		return cmd.formatFromReader(ctx, f, ctx.Stdin, ctx.Stdout, "<stdin>")
	}

	info, err := os.Stat(cmd.Input)
	if err != nil {
		return fmt.Errorf("failed to stat input: %w", err)
	}

	if info.IsDir() {
		return cmd.formatDirectory(ctx, f, cmd.Input)
	}

	return cmd.formatFile(ctx, f, cmd.Input)
}

// format formats input according to the kind of filename
func (f *fileFormatter) format(input, filename string) (string, error) {
	if formatter.IsMarkdownFile(filename) {
		formatted, err := f.markdown.Format(input)
		if err != nil {
			return "", fmt.Errorf("failed to format Markdown in %s: %w", filename, err)
		}

		// Markdown output has its trailing newlines trimmed
		return formatted + "\n", nil
	}

	formatted, err := f.off.FormatText(input, f.options)
	if err != nil {
		return "", fmt.Errorf("failed to format %s: %w", filename, err)
	}

	return formatted, nil
}

// formatFromReader formats a document from a reader and writes to a writer
func (cmd *FormatCmd) formatFromReader(ctx *Context, f *fileFormatter, reader io.Reader, writer io.Writer, filename string) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.format(string(input), filename)
	if err != nil {
		return err
	}

	if cmd.Check {
		if strings.TrimSpace(string(input)) != strings.TrimSpace(formatted) {
			if !ctx.Quiet {
				color.New(color.FgYellow).Fprintf(ctx.Stdout, "%s is not formatted\n", filename)
			}

			return fmt.Errorf("%w: %s", ErrFileNotFormatted, filename)
		}

		return nil
	}

	if cmd.Diff {
		writeDiff(ctx.Stdout, string(input), formatted, filename)
		return nil
	}

	if cmd.Output != "" {
		return os.WriteFile(cmd.Output, []byte(formatted), 0o644)
	}

	_, err = io.WriteString(writer, formatted)

	return err
}

// formatFile formats a single file
func (cmd *FormatCmd) formatFile(ctx *Context, f *fileFormatter, filename string) error {
	if !isMeshFile(filename) {
		if ctx.Verbose {
			color.Yellow("Skipping non-OFF file: %s", filename)
		}

		return nil
	}

	input, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if !cmd.Write || cmd.Check || cmd.Diff {
		return cmd.formatFromReader(ctx, f, strings.NewReader(string(input)), ctx.Stdout, filename)
	}

	formatted, err := f.format(string(input), filename)
	if err != nil {
		return err
	}

	if formatted == string(input) {
		return nil
	}

	// Write to a temporary file first so that a failure keeps the original
	tempFile, err := os.CreateTemp(filepath.Dir(filename), ".offmesh-format-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	_, err = tempFile.WriteString(formatted)
	if closeErr := tempFile.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := os.Rename(tempFile.Name(), filename); err != nil {
		os.Remove(tempFile.Name())
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}

	return nil
}

// formatDirectory formats all OFF and Markdown files in a directory recursively
func (cmd *FormatCmd) formatDirectory(ctx *Context, f *fileFormatter, dirPath string) error {
	var hasErrors bool

	err := filepath.WalkDir(dirPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !isMeshFile(path) {
			return nil
		}

		err = cmd.formatFile(ctx, f, path)
		if err != nil {
			if !ctx.Quiet {
				color.New(color.FgRed).Fprintf(ctx.Stdout, "Error formatting %s: %v\n", path, err)
			}

			hasErrors = true

			return nil
		}

		if cmd.Write && !cmd.Check && !cmd.Diff && ctx.Verbose {
			color.Green("Formatted: %s", path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk directory: %w", err)
	}

	if hasErrors {
		return ErrFormattingErrors
	}

	return nil
}

// isMeshFile checks if a file holds OFF documents
func isMeshFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".off") || formatter.IsMarkdownFile(filename)
}

// writeDiff writes a line-by-line difference between original and formatted content
func writeDiff(w io.Writer, original, formatted, filename string) {
	if strings.TrimSpace(original) == strings.TrimSpace(formatted) {
		return
	}

	fmt.Fprintf(w, "--- %s (original)\n", filename)
	fmt.Fprintf(w, "+++ %s (formatted)\n", filename)

	originalLines := strings.Split(original, "\n")
	formattedLines := strings.Split(formatted, "\n")

	for i := range max(len(originalLines), len(formattedLines)) {
		var origLine, formLine string

		if i < len(originalLines) {
			origLine = originalLines[i]
		}

		if i < len(formattedLines) {
			formLine = formattedLines[i]
		}

		if origLine != formLine {
			if origLine != "" {
				fmt.Fprintf(w, "-%s\n", origLine)
			}

			if formLine != "" {
				fmt.Fprintf(w, "+%s\n", formLine)
			}
		}
	}
}

// Help returns help text for the format command
func (cmd *FormatCmd) Help() string {
	return `Format OFF files and Markdown files with OFF code blocks.

The format command rewrites OFF documents in a canonical form: comments and blank
lines are removed, the header carries vertex, face and edge counts, coordinates are
rounded to the configured precision with trailing zeros trimmed, and colors are
written in the configured color format.

For Markdown files, it formats ` + "```off" + ` code blocks while preserving the rest
of the Markdown content. Blocks that fail to parse are left untouched.

Examples:
  # Format a single file and print to stdout
  offmesh format cube.off

  # Format a file in place
  offmesh format -w cube.off

  # Check if all files in a directory are formatted
  offmesh format -c ./models/

  # Format from stdin
  cat cube.off | offmesh format`
}

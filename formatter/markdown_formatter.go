package formatter

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shibukawa/offmesh/parser"
)

var (
	offBlockStartRe = regexp.MustCompile("^(\\s*)(`{3,})[ \\t]*(?i:off)\\s*$")
	codeBlockEndRe  = regexp.MustCompile("^(\\s*)(`{3,})\\s*$")
)

// MarkdownFormatter formats OFF code blocks within Markdown files
type MarkdownFormatter struct {
	offFormatter *OFFFormatter
	options      parser.Options
}

// NewMarkdownFormatter creates a new Markdown formatter. Blocks are read with options
// and written by offFormatter.
func NewMarkdownFormatter(offFormatter *OFFFormatter, options parser.Options) *MarkdownFormatter {
	return &MarkdownFormatter{
		offFormatter: offFormatter,
		options:      options,
	}
}

// Format formats OFF code blocks within a Markdown file.
// Blocks that fail to parse are kept as they are.
func (f *MarkdownFormatter) Format(markdown string) (string, error) {
	var (
		result       strings.Builder
		blockContent strings.Builder
		inOFFBlock   bool
		blockIndent  string
		blockFence   string
	)

	scanner := bufio.NewScanner(strings.NewReader(markdown))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		if !inOFFBlock {
			if match := offBlockStartRe.FindStringSubmatch(line); match != nil {
				inOFFBlock = true
				blockIndent = match[1]
				blockFence = match[2]
				blockContent.Reset()
			}

			result.WriteString(line)
			result.WriteString("\n")

			continue
		}

		if match := codeBlockEndRe.FindStringSubmatch(line); match != nil && len(match[2]) >= len(blockFence) {
			inOFFBlock = false

			f.writeBlock(&result, blockContent.String(), blockIndent)
			result.WriteString(line)
			result.WriteString("\n")

			continue
		}

		// Accumulate OFF content without the block indentation
		blockContent.WriteString(strings.TrimPrefix(line, blockIndent))
		blockContent.WriteString("\n")
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading markdown: %w", err)
	}

	// An unterminated block runs to the end of the document
	if inOFFBlock {
		f.writeBlock(&result, blockContent.String(), blockIndent)
	}

	return strings.TrimRight(result.String(), "\n"), nil
}

func (f *MarkdownFormatter) writeBlock(result *strings.Builder, content, indent string) {
	if strings.TrimSpace(content) == "" {
		return
	}

	formatted, err := f.offFormatter.FormatText(content, f.options)
	if err != nil {
		formatted = content
	}

	for _, line := range strings.Split(strings.TrimRight(formatted, "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			result.WriteString(indent)
			result.WriteString(line)
		}

		result.WriteString("\n")
	}
}

// FormatFromReader formats OFF code blocks from a reader and writes to a writer
func (f *MarkdownFormatter) FormatFromReader(reader io.Reader, writer io.Writer) error {
	input, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	formatted, err := f.Format(string(input))
	if err != nil {
		return fmt.Errorf("failed to format markdown: %w", err)
	}

	_, err = io.WriteString(writer, formatted)

	return err
}

// IsMarkdownFile checks if a file is a Markdown file
func IsMarkdownFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}

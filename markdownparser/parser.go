// Package markdownparser extracts OFF documents embedded in Markdown fenced code blocks.
package markdownparser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/offmesh/geometry"
	"github.com/shibukawa/offmesh/parser"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// BlockLanguage is the info string that marks a fenced code block as OFF.
const BlockLanguage = "off"

// Sentinel errors
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrNoOFFBlock         = errors.New("no OFF code block found")
)

// Document represents a parsed Markdown file
type Document struct {
	Metadata map[string]any
	// Title is the text of the first level 1 heading.
	Title  string
	Blocks []Block
}

// Block is the content of an OFF fenced code block.
type Block struct {
	// Heading is the text of the closest heading before the block.
	Heading string
	Content string
	// StartLine is the zero-based line of the Markdown file holding the first content line.
	StartLine int
}

// Parse reads a Markdown file and collects its front matter and OFF blocks.
func Parse(reader io.Reader) (*Document, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	frontMatter, body, err := parseFrontMatter(string(content))
	if err != nil {
		return nil, err
	}

	lineOffset := strings.Count(string(content[:len(content)-len(body)]), "\n")
	title, blocks := extractBlocks([]byte(body), lineOffset)

	return &Document{
		Metadata: frontMatter,
		Title:    title,
		Blocks:   blocks,
	}, nil
}

// ExtractBlocks returns every fenced code block whose info string is `off`, in document order.
func ExtractBlocks(content []byte) []Block {
	_, blocks := extractBlocks(content, 0)
	return blocks
}

// ParseAll parses every block of the document. The first failing block aborts.
func (d *Document) ParseAll(options parser.Options) ([]*geometry.Mesh, error) {
	if len(d.Blocks) == 0 {
		return nil, ErrNoOFFBlock
	}

	meshes := make([]*geometry.Mesh, 0, len(d.Blocks))
	for _, block := range d.Blocks {
		mesh, err := block.Parse(options)
		if err != nil {
			return nil, err
		}

		meshes = append(meshes, mesh)
	}

	return meshes, nil
}

// Parse parses the block. Line indices of a *parser.Error refer to the Markdown file.
func (b Block) Parse(options parser.Options) (*geometry.Mesh, error) {
	mesh, err := parser.Parse(b.Content, options)
	if err != nil {
		if perr, ok := parser.AsError(err); ok {
			rebased := *perr
			rebased.LineIndex += b.StartLine

			return nil, &rebased
		}

		return nil, err
	}

	return mesh, nil
}

func extractBlocks(content []byte, lineOffset int) (string, []Block) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)

	doc := md.Parser().Parse(text.NewReader(content))
	lines := newIndexToLine(content)

	var (
		title   string
		heading string
		blocks  []Block
	)

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading:
			heading = extractTextFromHeadingNode(node, content)
			if node.Level == 1 && title == "" {
				title = heading
			}

			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			if isOFFCodeBlock(node, content) {
				blocks = append(blocks, Block{
					Heading:   heading,
					Content:   extractCodeBlockContent(node, content),
					StartLine: lineOffset + codeBlockStartLine(node, lines),
				})
			}

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return title, blocks
}

// extractTextFromHeadingNode extracts text content from a heading AST node
func extractTextFromHeadingNode(heading ast.Node, content []byte) string {
	var result strings.Builder

	ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Text:
			segment := node.Segment
			result.Write(content[segment.Start:segment.Stop])
		case *ast.String:
			result.Write(node.Value)
		}

		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(result.String())
}

func isOFFCodeBlock(codeBlock *ast.FencedCodeBlock, content []byte) bool {
	if codeBlock.Info == nil {
		return false
	}

	return strings.EqualFold(string(codeBlock.Language(content)), BlockLanguage)
}

func extractCodeBlockContent(codeBlock *ast.FencedCodeBlock, content []byte) string {
	var result strings.Builder

	for i := range codeBlock.Lines().Len() {
		line := codeBlock.Lines().At(i)
		result.Write(line.Value(content))
	}

	return result.String()
}

// codeBlockStartLine returns the zero-based line of the first content line. Empty blocks
// report the line after the opening fence.
func codeBlockStartLine(codeBlock *ast.FencedCodeBlock, lines *indexToLine) int {
	if codeBlock.Lines().Len() > 0 {
		return lines.lineFor(codeBlock.Lines().At(0).Start)
	}

	return lines.lineFor(codeBlock.Info.Segment.Start) + 1
}

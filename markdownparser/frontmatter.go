package markdownparser

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/shibukawa/offmesh/parser"
)

// parseFrontMatter extracts YAML front matter from markdown content.
// The remaining content starts on the line of the closing delimiter.
func parseFrontMatter(content string) (map[string]any, string, error) {
	if !strings.HasPrefix(content, "---\n") {
		return make(map[string]any), content, nil
	}

	endIndex := strings.Index(content[4:], "\n---")
	if endIndex == -1 {
		return nil, "", ErrInvalidFrontMatter
	}

	endIndex += 4 // Adjust for the initial slice

	frontMatterContent := content[4:endIndex]
	remainingContent := content[endIndex+4:]

	var frontMatter map[string]any

	err := yaml.Unmarshal([]byte(frontMatterContent), &frontMatter)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	if frontMatter == nil {
		frontMatter = make(map[string]any)
	}

	return frontMatter, remainingContent, nil
}

// ParserOptions applies document level settings from the front matter to base.
//
//	---
//	color_format: RGBInteger
//	---
func (d *Document) ParserOptions(base parser.Options) (parser.Options, error) {
	raw, ok := d.Metadata["color_format"]
	if !ok || raw == nil {
		return base, nil
	}

	name, ok := raw.(string)
	if !ok {
		return base, fmt.Errorf("%w: color_format must be a string, got %T", ErrInvalidFrontMatter, raw)
	}

	format, err := parser.ParseColorFormat(name)
	if err != nil {
		return base, fmt.Errorf("%w: %w", ErrInvalidFrontMatter, err)
	}

	base.ColorFormat = format

	return base, nil
}

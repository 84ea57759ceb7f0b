package tokenizer

import "strings"

// CommentMarker starts a comment that runs to the end of the physical line.
const CommentMarker = '#'

// Line is a logical line of an OFF document.
type Line struct {
	// Index is the zero-based index of the physical line in the original text.
	Index int
	// Content is the line with its comment removed and surrounding whitespace trimmed.
	// It is never empty.
	Content string
}

// Fields splits logical line content into whitespace separated tokens.
func (l Line) Fields() []string {
	return Fields(l.Content)
}

// Fields splits content into whitespace separated tokens.
func Fields(content string) []string {
	return strings.Fields(content)
}

// stripComment removes everything from the first comment marker onward and trims the rest.
// Trimming happens after the cut so that `1 2 3 # note` becomes `1 2 3`.
func stripComment(raw string) string {
	if i := strings.IndexByte(raw, CommentMarker); i >= 0 {
		raw = raw[:i]
	}

	return strings.TrimSpace(raw)
}

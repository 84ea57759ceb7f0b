package tokenizer

import (
	"iter"
	"strings"
)

// LineIterator uses Go 1.23 iterator pattern
type LineIterator iter.Seq[Line]

// LineSource produces logical lines from OFF text.
//
// Comment-only and blank lines are skipped, so they never reach the parser, while
// Line.Index keeps pointing at the physical line for diagnostics. A LineSource is
// single-pass: once a line has been returned it cannot be read again, and a new
// LineSource has to be created to scan the text a second time.
type LineSource struct {
	input    string
	position int // byte offset of the next physical line
	index    int // index of the next physical line
}

// NewLineSource creates a new LineSource over input.
func NewLineSource(input string) *LineSource {
	return &LineSource{input: input}
}

// Next returns the next logical line. ok is false once the input is exhausted.
func (s *LineSource) Next() (line Line, ok bool) {
	for s.position < len(s.input) {
		raw := s.readPhysicalLine()
		index := s.index
		s.index++

		content := stripComment(raw)
		if content == "" {
			continue
		}

		return Line{Index: index, Content: content}, true
	}

	return Line{}, false
}

// Lines returns an iterator over the remaining logical lines.
// Iterating consumes the source.
func (s *LineSource) Lines() LineIterator {
	return func(yield func(Line) bool) {
		for {
			line, ok := s.Next()
			if !ok || !yield(line) {
				return
			}
		}
	}
}

// AllLines collects the remaining logical lines (for debugging)
func (s *LineSource) AllLines() []Line {
	lines := make([]Line, 0, 16)
	for line := range s.Lines() {
		lines = append(lines, line)
	}

	return lines
}

// readPhysicalLine returns the physical line at the current position and advances past its terminator.
// A trailing carriage return is dropped so CRLF documents behave like LF documents.
func (s *LineSource) readPhysicalLine() string {
	rest := s.input[s.position:]

	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		s.position = len(s.input)
	} else {
		rest = rest[:end]
		s.position += end + 1
	}

	return strings.TrimSuffix(rest, "\r")
}

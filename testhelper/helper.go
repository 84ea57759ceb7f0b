package testhelper

import (
	"regexp"
	"strings"
	"testing"
)

var leadingWhitespace = regexp.MustCompile(`^[ \t]+`)

// TrimIndent drops the first line of a raw string literal (usually empty) and removes
// the indentation of the second line from every line.
//
//	doc := testhelper.TrimIndent(t, `
//		OFF
//		0 0
//	`)
func TrimIndent(t *testing.T, src string) string {
	t.Helper()

	lines := strings.Split(src, "\n")
	if len(lines) < 2 {
		return src
	}

	indent := leadingWhitespace.FindString(lines[1])

	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, indent)
	}

	return strings.Join(lines[1:], "\n")
}

package pipeline

import (
	"regexp"
	"strings"
)

// LineTerminator is the canonical terminator written between lines.
const LineTerminator = "\r\n"

// crlfOrCR matches the terminators normalized to LF before splitting.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// Split breaks text into lines on CR, LF, or CRLF, discarding terminators.
// A trailing terminator does not produce an extra line of its own. One empty
// line is always appended to stand for the final terminator, so Join
// renders it back as a trailing CRLF. Empty text yields a single empty line.
func Split(text string) []string {
	normalized := crlfOrCR.ReplaceAllString(text, "\n")
	if normalized == "" {
		return []string{""}
	}
	lines := strings.Split(strings.TrimSuffix(normalized, "\n"), "\n")
	return append(lines, "")
}

// Join concatenates lines with LineTerminator between adjacent lines.
// No terminator is written after the last line.
func Join(lines []string) string {
	return strings.Join(lines, LineTerminator)
}

// cursor walks a line slice left to right with a bounds-checked lookahead.
type cursor struct {
	lines []string
	pos   int
}

func newCursor(lines []string) *cursor {
	return &cursor{lines: lines, pos: -1}
}

// next advances to the following line. It returns false past the end.
func (c *cursor) next() (string, bool) {
	if c.pos+1 >= len(c.lines) {
		return "", false
	}
	c.pos++
	return c.lines[c.pos], true
}

// peek returns the line after the current one without advancing.
func (c *cursor) peek() (string, bool) {
	if c.pos+1 >= len(c.lines) {
		return "", false
	}
	return c.lines[c.pos+1], true
}

package pipeline

import (
	"regexp"
	"strings"
	"unicode"
)

// Precompiled line patterns, shared by every call.
var (
	// One or more '#' then a space at the start of the line.
	headingPattern = regexp.MustCompile(`^#+ `)

	// Optional indentation, a quote marker, exactly one space, end of line.
	quoteEmptyPattern = regexp.MustCompile(`^[ \t]*> $`)

	// An odd run of trailing backslashes: the last one is a hard break,
	// the others are escaped literal backslashes.
	hardBreakPattern = regexp.MustCompile(`(?:^|[^\\])(?:\\\\)*\\$`)
)

// HardBreakMarker replaces a trailing backslash hard break.
const HardBreakMarker = "  "

// Rule is a single line-level rewrite stage.
type Rule struct {
	Name  string
	Apply func(lines []string) []string
}

// Rules returns the normalization stages in the order they must run.
func Rules() []Rule {
	return []Rule{
		{Name: "heading-blank-line", Apply: EnsureBlankAfterHeadings},
		{Name: "quote-trailing-space", Apply: TrimQuoteMarkers},
		{Name: "hard-break-marker", Apply: ConvertHardBreaks},
		{Name: "blank-line-collapse", Apply: CollapseBlankLines},
	}
}

// IsHeading reports whether line starts with one or more '#' and a space.
func IsHeading(line string) bool {
	return headingPattern.MatchString(line)
}

// IsQuoteEmpty reports whether line is a bare quote marker followed by a
// single space, optionally indented.
func IsQuoteEmpty(line string) bool {
	return quoteEmptyPattern.MatchString(line)
}

// IsHardBreak reports whether line ends with a backslash hard break.
func IsHardBreak(line string) bool {
	return hardBreakPattern.MatchString(line)
}

// EnsureBlankAfterHeadings inserts an empty line after every heading line
// whose next line is not empty. Inserted lines are not re-examined. A
// heading with no following line is left alone.
func EnsureBlankAfterHeadings(lines []string) []string {
	out := make([]string, 0, len(lines)+len(lines)/4)
	c := newCursor(lines)
	for line, ok := c.next(); ok; line, ok = c.next() {
		out = append(out, line)
		if !IsHeading(line) {
			continue
		}
		if following, ok := c.peek(); ok && following != "" {
			out = append(out, "")
		}
	}
	return out
}

// TrimQuoteMarkers strips trailing whitespace from quote-marker-only lines,
// leaving "> " as ">" and "  > " as "  >".
func TrimQuoteMarkers(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if IsQuoteEmpty(line) {
			line = strings.TrimRightFunc(line, unicode.IsSpace)
		}
		out[i] = line
	}
	return out
}

// ConvertHardBreaks replaces a trailing backslash with two spaces. Only the
// backslash is removed; whitespace before it is kept as is.
func ConvertHardBreaks(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if IsHardBreak(line) {
			line = strings.TrimSuffix(line, `\`) + HardBreakMarker
		}
		out[i] = line
	}
	return out
}

// CollapseBlankLines reduces every run of two or more empty lines to one.
func CollapseBlankLines(lines []string) []string {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, line := range lines {
		if line == "" {
			if prevBlank {
				continue
			}
			prevBlank = true
		} else {
			prevBlank = false
		}
		out = append(out, line)
	}
	return out
}

// Normalize runs every rule over text in order and returns the result
// joined with CRLF terminators.
func Normalize(text string) string {
	return Join(ApplyRules(Split(text), Rules()))
}

// ApplyRules runs rules over lines in the given order.
func ApplyRules(lines []string, rules []Rule) []string {
	for _, r := range rules {
		lines = r.Apply(lines)
	}
	return lines
}

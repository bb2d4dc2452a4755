package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int
	Text  string
}

// String renders the heading as an ATX line, e.g. "## Title".
func (h Heading) String() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// outlineParser is shared; goldmark parsers are safe for concurrent use.
var outlineParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
).Parser()

// Outline parses text as CommonMark (plus GFM) and returns its headings in
// document order. Nothing is rendered.
func Outline(src string) []Heading {
	source := []byte(crlfOrCR.ReplaceAllString(src, "\n"))
	doc := outlineParser.Parse(text.NewReader(source))

	var headings []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  strings.TrimSpace(inlineText(h, source)),
		})
		return ast.WalkSkipChildren, nil
	})
	return headings
}

// inlineText concatenates the literal text below n.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := c.(type) {
		case *ast.Text:
			buf.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				buf.WriteByte(' ')
			}
		case *ast.String:
			buf.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// CompareOutlines returns an error describing the first difference between
// two outlines, or nil when they match.
func CompareOutlines(before, after []Heading) error {
	if len(before) != len(after) {
		return fmt.Errorf("heading count changed from %d to %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			return fmt.Errorf("heading %d changed from %q to %q", i+1, before[i], after[i])
		}
	}
	return nil
}

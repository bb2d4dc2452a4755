// Package diffview renders unified diffs of formatting changes, optionally
// colorized for terminals.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/pmezard/go-difflib/difflib"
)

// Defaults for Options fields left zero.
const (
	DefaultContext   = 3
	DefaultStyle     = "monokai"
	DefaultFormatter = "terminal256"
)

// crMarker makes carriage returns visible so a terminator-only change
// still shows up as a difference.
const crMarker = "␍"

// Options controls diff rendering.
type Options struct {
	Context int    // lines of context, 0 = DefaultContext
	Color   bool   // colorize with chroma
	Style   string // chroma style, "" = DefaultStyle
}

// Unified returns a unified diff between before and after labeled with
// path. It returns "" when the texts are equal.
func Unified(path, before, after string, opts Options) (string, error) {
	if before == after {
		return "", nil
	}
	if opts.Context <= 0 {
		opts.Context = DefaultContext
	}

	d := difflib.UnifiedDiff{
		A:        difflib.SplitLines(showCR(before)),
		B:        difflib.SplitLines(showCR(after)),
		FromFile: path,
		ToFile:   path + " (formatted)",
		Context:  opts.Context,
	}
	out, err := difflib.GetUnifiedDiffString(d)
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return out, nil
}

// Write renders the diff to w, colorized when opts.Color is set.
func Write(w io.Writer, path, before, after string, opts Options) error {
	out, err := Unified(path, before, after, opts)
	if err != nil || out == "" {
		return err
	}
	if !opts.Color {
		_, err = io.WriteString(w, out)
		return err
	}
	style := opts.Style
	if style == "" {
		style = DefaultStyle
	}
	if err := quick.Highlight(w, out, "diff", DefaultFormatter, style); err != nil {
		return fmt.Errorf("highlight diff %s: %w", path, err)
	}
	return nil
}

func showCR(s string) string {
	return strings.ReplaceAll(s, "\r", crMarker)
}

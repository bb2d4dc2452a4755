package mdtidy

import (
	"context"
	"fmt"

	"github.com/alnah/go-mdtidy/internal/pipeline"
)

// LineTerminator separates lines in formatted output.
const LineTerminator = pipeline.LineTerminator

// Format normalizes one Markdown document. It never fails and does no I/O.
func Format(text string) string {
	return pipeline.Normalize(text)
}

// FormatBytes formats UTF-8 encoded content.
func FormatBytes(content []byte) []byte {
	return []byte(Format(string(content)))
}

// Changed reports whether formatting altered the text.
func Changed(before, after string) bool {
	return before != after
}

// Formatter formats one document, honoring cancellation.
type Formatter interface {
	Format(ctx context.Context, text string) (string, error)
}

// Compile-time interface implementation check.
var _ Formatter = LineFormatter{}

// LineFormatter is the default Formatter.
type LineFormatter struct {
	// Verify fails the format when the heading outline changes.
	Verify bool
}

// Format checks ctx, then formats text.
func (f LineFormatter) Format(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	out := Format(text)
	if f.Verify {
		if err := VerifyOutline(text, out); err != nil {
			return "", err
		}
	}
	return out, nil
}

// VerifyOutline returns ErrOutlineChanged when before and after do not
// parse to the same heading outline.
func VerifyOutline(before, after string) error {
	if err := pipeline.CompareOutlines(pipeline.Outline(before), pipeline.Outline(after)); err != nil {
		return fmt.Errorf("%w: %v", ErrOutlineChanged, err)
	}
	return nil
}

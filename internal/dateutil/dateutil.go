// Package dateutil parses calendar dates written with user-friendly layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for date parsing.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrInvalidDate       = errors.New("invalid date")
)

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormats are tried in order when no formats are configured.
var DefaultDateFormats = []string{"YYYY/MM/DD", "YYYY-MM-DD", "YYYY/M/D", "YYYY-M-D"}

// dateTokens maps user-friendly tokens to Go time layout components.
// Ordered by length descending for greedy matching.
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// ParseDateFormat converts a user-friendly format to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text inside brackets is
// copied literally, so "[Day] D" yields "Day 2".
func ParseDateFormat(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var layout strings.Builder
	layout.Grow(len(format) + 10)

	for rest := format; rest != ""; {
		if rest[0] == '[' {
			end := strings.IndexByte(rest[1:], ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			layout.WriteString(rest[1 : 1+end])
			rest = rest[end+2:]
			continue
		}

		n := 1
		literal := true
		for _, t := range dateTokens {
			if strings.HasPrefix(rest, t.token) {
				layout.WriteString(t.goFmt)
				n = len(t.token)
				literal = false
				break
			}
		}
		if literal {
			layout.WriteByte(rest[0])
		}
		rest = rest[n:]
	}

	return layout.String(), nil
}

// ParseDate parses value with the first matching format and returns the
// date at midnight in loc. Empty formats fall back to DefaultDateFormats;
// a nil loc means time.Local.
func ParseDate(value string, formats []string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	if len(formats) == 0 {
		formats = DefaultDateFormats
	}

	value = strings.TrimSpace(value)
	for _, f := range formats {
		layout, err := ParseDateFormat(f)
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.ParseInLocation(layout, value, loc)
		if err != nil {
			continue
		}
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidDate, value, strings.Join(formats, ", "))
}

// ValidateFormats checks that every format converts to a layout.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if _, err := ParseDateFormat(f); err != nil {
			return fmt.Errorf("%q: %w", f, err)
		}
	}
	return nil
}

// Package pipeline implements the Markdown normalization pipeline.
//
// A document is split into lines, rewritten by a fixed sequence of
// line-level rules, and joined back with CRLF terminators:
//   - a blank line after every heading
//   - no trailing whitespace on quote-marker-only lines
//   - two trailing spaces instead of a trailing backslash for hard breaks
//   - at most one blank line in a row
//
// Every rule is a pure function over a line slice. Rules never modify
// their input; they return a new slice. Order matters: the blank-line
// collapse must see the blank lines inserted after headings.
//
// Outline inspects heading structure with goldmark so callers can check
// that normalization left a document's outline untouched.
package pipeline

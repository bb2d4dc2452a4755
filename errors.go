package mdtidy

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyPath      = errors.New("path cannot be empty")
	ErrReadMarkdown   = errors.New("failed to read markdown file")
	ErrWriteMarkdown  = errors.New("failed to write markdown file")
	ErrInvalidUTF8    = errors.New("file is not valid UTF-8")
	ErrOutlineChanged = errors.New("heading outline changed")
)

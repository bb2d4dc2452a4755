package main

import (
	"errors"
	"os"

	mdtidy "github.com/alnah/go-mdtidy"
	"github.com/alnah/go-mdtidy/internal/config"
	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// Exit codes for the mdtidy CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Nothing failed; check found nothing to change
	ExitGeneral = 1 // General error, or check found files to reformat
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied, unreadable file
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrInvalidConfig) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrConflictingFlags) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, ErrNoTarget) ||
		errors.Is(err, ErrUnsupportedExtension) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdtidy.ErrReadMarkdown) ||
		errors.Is(err, mdtidy.ErrWriteMarkdown) ||
		errors.Is(err, fileutil.ErrNotDirectory) {
		return ExitIO
	}

	return ExitGeneral
}

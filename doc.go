// Package mdtidy normalizes Markdown documents line by line.
//
// # Quick Start
//
// Format is a pure function over the full text of one document:
//
//	out := mdtidy.Format("# Title\nbody\\\n")
//	// out == "# Title\r\n\r\nbody  \r\n"
//
// # Rules
//
// The rules run in a fixed order, each over the full output of the
// previous one:
//
//  1. A blank line is inserted after every ATX heading ("# ") that is
//     directly followed by a non-blank line.
//  2. A quote line holding only "> " loses its trailing space.
//  3. A trailing backslash hard break becomes two trailing spaces.
//  4. Runs of blank lines collapse to a single blank line.
//
// Output lines are always joined with CRLF. Formatting is idempotent:
// Format(Format(s)) == Format(s).
//
// # Files
//
// FormatFiles formats many files concurrently, writing back only the files
// whose content changed:
//
//	results, err := mdtidy.FormatFiles(ctx, paths, mdtidy.BatchOptions{
//	    Workers:   4,
//	    KeepGoing: true,
//	})
//
// With BatchOptions.DryRun nothing is written, which is how the check
// command reports files that would change.
//
// # Verification
//
// LineFormatter{Verify: true} parses the document before and after
// formatting and fails with ErrOutlineChanged if the heading outline
// differs.
package mdtidy

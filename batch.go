package mdtidy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// filePermissions applies only when a written file does not exist yet.
const filePermissions = 0o644

// FileResult holds the outcome of formatting one file.
type FileResult struct {
	Path     string
	Changed  bool
	Skipped  bool // not attempted because the run was canceled
	Err      error
	Duration time.Duration

	// Before and After are set only with BatchOptions.KeepText.
	Before string
	After  string
}

// BatchOptions controls FormatFiles.
type BatchOptions struct {
	Workers   int       // 0 = ResolveWorkers(0)
	KeepGoing bool      // keep formatting after a failure
	DryRun    bool      // compute results without writing
	KeepText  bool      // keep before/after text in results
	Formatter Formatter // nil = LineFormatter{}
	Logger    *slog.Logger
}

func (o BatchOptions) formatter() Formatter {
	if o.Formatter == nil {
		return LineFormatter{}
	}
	return o.Formatter
}

func (o BatchOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// FormatFiles formats paths concurrently and returns one result per path,
// in input order. Files are written only when their content changed.
//
// By default the first failure cancels the remaining work and is returned.
// With KeepGoing every file is attempted and all failures are joined.
func FormatFiles(ctx context.Context, paths []string, opts BatchOptions) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ResolveWorkers(opts.Workers))

	for i, path := range paths {
		if gctx.Err() != nil {
			for j := i; j < len(paths); j++ {
				results[j] = FileResult{Path: paths[j], Skipped: true}
			}
			break
		}

		g.Go(func() error {
			if gctx.Err() != nil {
				results[i] = FileResult{Path: path, Skipped: true}
				return nil
			}
			results[i] = FormatFile(gctx, path, opts)
			if opts.KeepGoing {
				return nil
			}
			return results[i].Err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return results, errors.Join(errs...)
}

// FormatFile formats a single file in place.
func FormatFile(ctx context.Context, path string, opts BatchOptions) FileResult {
	start := time.Now()
	result := FileResult{Path: path}

	if path == "" {
		result.Err = ErrEmptyPath
		return result
	}

	before, err := fileutil.ReadText(path)
	if err != nil {
		result.Err = fmt.Errorf("%w %s: %w", ErrReadMarkdown, path, err)
		result.Duration = time.Since(start)
		return result
	}
	if !utf8.ValidString(before) {
		result.Err = fmt.Errorf("%w %s: %w", ErrReadMarkdown, path, ErrInvalidUTF8)
		result.Duration = time.Since(start)
		return result
	}

	after, err := opts.formatter().Format(ctx, before)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		result.Skipped = true
		return result
	}
	if err != nil {
		result.Err = fmt.Errorf("%s: %w", path, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Changed = Changed(before, after)
	if opts.KeepText {
		result.Before, result.After = before, after
	}

	if result.Changed && !opts.DryRun {
		if err := fileutil.WriteText(path, after, filePermissions); err != nil {
			result.Err = fmt.Errorf("%w %s: %w", ErrWriteMarkdown, path, err)
			result.Duration = time.Since(start)
			return result
		}
	}

	result.Duration = time.Since(start)
	opts.logger().Debug("formatted",
		slog.String("path", path),
		slog.Bool("changed", result.Changed),
		slog.Bool("written", result.Changed && !opts.DryRun),
		slog.Duration("duration", result.Duration))
	return result
}

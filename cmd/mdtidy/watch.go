package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"syscall"

	mdtidy "github.com/alnah/go-mdtidy"
	"github.com/alnah/go-mdtidy/internal/fileutil"
	"github.com/alnah/go-mdtidy/internal/watch"
)

// errWatchLimit marks a watcher that ran out of inotify watches.
var errWatchLimit = errors.New("too many watched directories")

// runWatch formats the target directory once, then keeps formatting files
// as they change until the context is canceled.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRunFlags(cmdWatch, args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: watch takes at most one directory, got %d", ErrInvalidFlag, len(positional))
	}

	s, err := resolveSettings(flags, env)
	if err != nil {
		return err
	}
	// Watch reports failures as they happen and never stops on them.
	s.keepGoing = true

	root := s.cfg.TargetDir
	if len(positional) == 1 {
		root = positional[0]
	}
	if root == "" {
		return ErrNoTarget
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("target %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %s: %w", root, fileutil.ErrNotDirectory)
	}

	files, err := resolveTargets([]string{root}, s.cfg)
	if err != nil {
		return err
	}
	opts := batchOptions(s)
	results, err := mdtidy.FormatFiles(ctx, files, opts)
	printResults(results, false, s, env)
	if s.diff {
		if err := printDiffs(results, s, env); err != nil {
			return err
		}
	}
	if err != nil {
		s.logger.Warn("initial pass had failures", slog.String("error", err.Error()))
	}

	w := watch.New(root, s.cfg.Extensions, func(ctx context.Context, path string) error {
		r := mdtidy.FormatFile(ctx, path, opts)
		if r.Err != nil {
			return r.Err
		}
		if r.Changed && !s.quiet {
			fmt.Fprintf(env.Stdout, "Formatted %s\n", r.Path)
			if s.diff {
				return printDiffs([]mdtidy.FileResult{r}, s, env)
			}
		}
		return nil
	}, watch.WithLogger(s.logger))

	if err := w.Run(ctx); err != nil {
		if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EMFILE) {
			return fmt.Errorf("%w: %w", errWatchLimit, err)
		}
		return fmt.Errorf("watching %s: %w", root, err)
	}
	return nil
}

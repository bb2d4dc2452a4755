package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	mdtidy "github.com/alnah/go-mdtidy"
	"github.com/alnah/go-mdtidy/internal/config"
	"github.com/alnah/go-mdtidy/internal/diffview"
	"github.com/alnah/go-mdtidy/internal/fileutil"
)

// runFormat runs the format and check commands. check never writes and
// fails with ErrWouldChange when any file is not already formatted.
func runFormat(ctx context.Context, cmd string, args []string, env *Environment) error {
	flags, positional, err := parseRunFlags(cmd, args, env.Stderr)
	if err != nil {
		return err
	}

	s, err := resolveSettings(flags, env)
	if err != nil {
		return err
	}

	files, err := resolveTargets(positional, s.cfg)
	if err != nil {
		return err
	}

	check := cmd == cmdCheck
	opts := batchOptions(s)
	opts.DryRun = check

	s.logger.Info("formatting",
		slog.String("command", cmd),
		slog.Int("files", len(files)),
		slog.Int("workers", mdtidy.ResolveWorkers(s.workers)),
		slog.Bool("keep_going", s.keepGoing))

	results, runErr := mdtidy.FormatFiles(ctx, files, opts)

	changed := printResults(results, check, s, env)
	if s.diff {
		if err := printDiffs(results, s, env); err != nil {
			return err
		}
	}

	if runErr != nil {
		return runErr
	}
	if check && changed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrWouldChange, changed, len(files))
	}
	return nil
}

// batchOptions maps settings onto library options.
func batchOptions(s *runSettings) mdtidy.BatchOptions {
	return mdtidy.BatchOptions{
		Workers:   s.workers,
		KeepGoing: s.keepGoing,
		KeepText:  s.diff,
		Formatter: mdtidy.LineFormatter{Verify: s.verify},
		Logger:    s.logger,
	}
}

// resolveTargets expands positional arguments, or the configured target
// directory, into an ordered list of files. Directories are walked; a file
// argument must carry one of the configured extensions.
func resolveTargets(args []string, cfg *config.Config) ([]string, error) {
	roots := args
	if len(roots) == 0 {
		if cfg.TargetDir == "" {
			return nil, ErrNoTarget
		}
		roots = []string{cfg.TargetDir}
	}

	var files []string
	seen := make(map[string]bool)
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("target %s: %w", root, err)
		}

		if !info.IsDir() {
			if !fileutil.HasExtension(root, cfg.Extensions) {
				return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, root)
			}
			add(root)
			continue
		}

		found, err := fileutil.DiscoverMarkdown(root, cfg.Extensions)
		if err != nil {
			return nil, fmt.Errorf("discovering files in %s: %w", root, err)
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

// printResults writes one line per interesting result and a summary.
// Failures are left to the returned error. Returns the changed count.
func printResults(results []mdtidy.FileResult, check bool, s *runSettings, env *Environment) int {
	var changed, unchanged, failed, skipped int

	for _, r := range results {
		switch {
		case r.Skipped:
			skipped++
			continue
		case r.Err != nil:
			failed++
			continue
		case r.Changed:
			changed++
		default:
			unchanged++
		}

		if s.quiet {
			continue
		}
		printResult(r, check, s.verbose, env)
	}

	if !s.quiet && len(results) > 1 {
		verb := "formatted"
		if check {
			verb = "would reformat"
		}
		fmt.Fprintf(env.Stdout, "\n%d %s, %d unchanged, %d failed", changed, verb, unchanged, failed)
		if skipped > 0 {
			fmt.Fprintf(env.Stdout, ", %d skipped", skipped)
		}
		fmt.Fprintln(env.Stdout)
	}

	return changed
}

// printResult writes the line for a single successful result.
func printResult(r mdtidy.FileResult, check, verbose bool, env *Environment) {
	switch {
	case r.Changed && check:
		fmt.Fprintf(env.Stdout, "Would reformat %s\n", r.Path)
	case r.Changed && verbose:
		fmt.Fprintf(env.Stdout, "Formatted %s (%v)\n", r.Path, r.Duration.Round(time.Microsecond))
	case r.Changed:
		fmt.Fprintf(env.Stdout, "Formatted %s\n", r.Path)
	case verbose:
		fmt.Fprintf(env.Stdout, "Unchanged %s (%v)\n", r.Path, r.Duration.Round(time.Microsecond))
	}
}

// printDiffs writes a unified diff for every changed file.
func printDiffs(results []mdtidy.FileResult, s *runSettings, env *Environment) error {
	opts := diffview.Options{Color: s.color}
	for _, r := range results {
		if !r.Changed || r.Err != nil {
			continue
		}
		if err := diffview.Write(env.Stdout, r.Path, r.Before, r.After, opts); err != nil {
			return err
		}
	}
	return nil
}

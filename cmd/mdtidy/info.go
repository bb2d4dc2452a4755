package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alnah/go-mdtidy/internal/fileutil"
	"github.com/alnah/go-mdtidy/internal/metadata"
)

// runInfo prints the book metadata found in one file as YAML.
func runInfo(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInfoFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: info takes exactly one file, got %d", ErrInvalidFlag, len(positional))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, loadEnvConfig(), env)
	if err != nil {
		return err
	}
	logger := newLogger(env.Stderr, flags.common, cfg.Log)

	path := positional[0]
	text, err := fileutil.ReadText(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	rec, err := metadata.Parse(text, metadata.Options{
		DateFormats: cfg.Metadata.DateFormats,
		Location:    time.Local,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	if rec.IsZero() {
		logger.Info("no metadata found", slog.String("path", path))
		return nil
	}

	out, err := rec.YAML()
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	_, err = env.Stdout.Write(out)
	return err
}

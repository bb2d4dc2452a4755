package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// Color modes accepted by --color.
const (
	colorAuto   = "auto"
	colorAlways = "always"
	colorNever  = "never"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	quiet     bool
	verbose   bool
	logFormat string
}

// runFlags holds flags for format, check and watch.
type runFlags struct {
	common    commonFlags
	workers   int
	failFast  bool
	keepGoing bool
	diff      bool
	color     string
	verify    bool

	// set records which flags were given explicitly.
	set map[string]bool
}

// infoFlags holds flags for the info command.
type infoFlags struct {
	common commonFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show unchanged files, timing and debug logs")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: text, json")
}

// addRunFlags adds the flags shared by format, check and watch.
func addRunFlags(fs *flag.FlagSet, f *runFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.BoolVar(&f.failFast, "fail-fast", true, "stop at the first failing file")
	fs.BoolVar(&f.keepGoing, "keep-going", false, "format every file, report all failures")
	fs.BoolVar(&f.diff, "diff", false, "print a unified diff for each changed file")
	fs.StringVar(&f.color, "color", colorAuto, "colorize diffs: auto, always, never")
	fs.BoolVar(&f.verify, "verify", false, "fail if a file's heading outline changes")
}

// parseRunFlags parses flags for format, check and watch.
func parseRunFlags(name string, args []string, stderr io.Writer) (*runFlags, []string, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &runFlags{set: map[string]bool{}}

	addCommonFlags(fs, &f.common)
	addRunFlags(fs, f)

	fs.Usage = func() { printRunUsage(stderr, name) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	if err := f.validate(); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseInfoFlags parses info command flags.
func parseInfoFlags(args []string, stderr io.Writer) (*infoFlags, []string, error) {
	fs := flag.NewFlagSet(cmdInfo, flag.ContinueOnError)
	fs.SetOutput(stderr)
	f := &infoFlags{}

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printInfoUsage(stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, wrapParseError(err)
	}
	if err := validateLogFormat(f.common.logFormat); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// validate rejects contradictory or out-of-range flag values.
func (f *runFlags) validate() error {
	if f.set["fail-fast"] && f.set["keep-going"] && f.failFast == f.keepGoing {
		return fmt.Errorf("%w: --fail-fast and --keep-going", ErrConflictingFlags)
	}
	if f.common.quiet && f.common.verbose {
		return fmt.Errorf("%w: --quiet and --verbose", ErrConflictingFlags)
	}
	if f.workers < 0 {
		return fmt.Errorf("%w: --workers must be >= 0, got %d", ErrInvalidFlag, f.workers)
	}
	switch f.color {
	case colorAuto, colorAlways, colorNever:
	default:
		return fmt.Errorf("%w: --color must be auto, always or never, got %q", ErrInvalidFlag, f.color)
	}
	return validateLogFormat(f.common.logFormat)
}

// keepGoingOverride returns the explicit failure mode, if any flag set one.
func (f *runFlags) keepGoingOverride() (keepGoing, ok bool) {
	switch {
	case f.set["keep-going"]:
		return f.keepGoing, true
	case f.set["fail-fast"]:
		return !f.failFast, true
	default:
		return false, false
	}
}

func validateLogFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: --log-format must be text or json, got %q", ErrInvalidFlag, format)
	}
}

// wrapParseError marks flag parse failures as usage errors.
// flag.ErrHelp passes through so -h exits cleanly.
func wrapParseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}

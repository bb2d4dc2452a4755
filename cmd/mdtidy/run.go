package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	mdtidy "github.com/alnah/go-mdtidy"
	"github.com/alnah/go-mdtidy/internal/config"
	"github.com/alnah/go-mdtidy/internal/hints"
)

// Command names.
const (
	cmdFormat     = "format"
	cmdCheck      = "check"
	cmdInfo       = "info"
	cmdWatch      = "watch"
	cmdVersion    = "version"
	cmdHelp       = "help"
	cmdCompletion = "completion"
)

// Sentinel errors for CLI operations.
var (
	ErrNoTarget             = errors.New("no target specified")
	ErrUnsupportedExtension = errors.New("unsupported file extension")
	ErrInvalidFlag          = errors.New("invalid flag")
	ErrConflictingFlags     = errors.New("conflicting flags")
	ErrUnknownCommand       = errors.New("unknown command")
	ErrWouldChange          = errors.New("files would be reformatted")
)

// isCommand reports whether s names a command.
func isCommand(s string) bool {
	switch s {
	case cmdFormat, cmdCheck, cmdInfo, cmdWatch, cmdVersion, cmdHelp, cmdCompletion:
		return true
	}
	return false
}

// splitCommand returns the command and its arguments. Without a command
// name the arguments go to format, so "mdtidy notes/" formats notes/.
func splitCommand(args []string) (string, []string) {
	if len(args) == 0 {
		return cmdFormat, nil
	}
	switch {
	case isCommand(args[0]):
		return args[0], args[1:]
	case args[0] == "-h" || args[0] == "--help":
		return cmdHelp, args[1:]
	case args[0] == "--version":
		return cmdVersion, args[1:]
	case !strings.HasPrefix(args[0], "-") && !looksLikePath(args[0]):
		return args[0], args[1:]
	default:
		return cmdFormat, args
	}
}

// looksLikePath separates a mistyped command from a file or directory name.
func looksLikePath(s string) bool {
	if strings.ContainsAny(s, `/\.`) {
		return true
	}
	_, err := os.Stat(s)
	return err == nil
}

// runMain runs the CLI and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := splitCommand(args[1:])

	var err error
	switch cmd {
	case cmdFormat, cmdCheck:
		err = runFormat(ctx, cmd, rest, env)
	case cmdWatch:
		err = runWatch(ctx, rest, env)
	case cmdInfo:
		err = runInfo(ctx, rest, env)
	case cmdVersion:
		fmt.Fprintf(env.Stdout, "mdtidy %s\n", Version)
	case cmdHelp:
		err = runHelp(rest, env)
	case cmdCompletion:
		err = runCompletion(rest, env)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, env))
	}
	return exitCodeFor(err)
}

// hintFor returns an actionable hint for well-known failures.
func hintFor(err error, env *Environment) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.DefaultConfigName)
	case errors.Is(err, ErrNoTarget):
		return hints.ForNoTarget()
	case errors.Is(err, ErrUnsupportedExtension):
		exts := config.DefaultConfig().Extensions
		if env.Config != nil {
			exts = env.Config.Extensions
		}
		return hints.ForUnsupportedExtension(exts)
	case errors.Is(err, mdtidy.ErrInvalidUTF8):
		return hints.ForInvalidUTF8()
	case errors.Is(err, mdtidy.ErrOutlineChanged):
		return hints.ForOutlineChanged()
	case errors.Is(err, errWatchLimit):
		return hints.ForWatchLimit()
	default:
		return ""
	}
}

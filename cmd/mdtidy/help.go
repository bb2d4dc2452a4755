package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdtidy [command] [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  format     Normalize markdown files in place (default)")
	fmt.Fprintln(w, "  check      Report files that would change, write nothing")
	fmt.Fprintln(w, "  watch      Format, then reformat files as they change")
	fmt.Fprintln(w, "  info       Print the book metadata of a file as YAML")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdtidy help <command>' for details on a specific command.")
}

// printRunUsage prints usage for format, check and watch.
func printRunUsage(w io.Writer, cmd string) {
	switch cmd {
	case cmdCheck:
		fmt.Fprintln(w, "Usage: mdtidy check [flags] [dir|file...]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Report markdown files that are not formatted. Nothing is written.")
		fmt.Fprintln(w, "Exits 1 when at least one file would change.")
	case cmdWatch:
		fmt.Fprintln(w, "Usage: mdtidy watch [flags] [dir]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Format every file once, then reformat files as they are saved.")
		fmt.Fprintln(w, "Failures are logged and watching continues. Stop with Ctrl+C.")
	default:
		fmt.Fprintln(w, "Usage: mdtidy format [flags] [dir|file...]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Normalize markdown files in place. Files already formatted are not written.")
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  dir|file    Directories are walked for matching extensions")
	fmt.Fprintln(w, "              (optional if config has targetDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: settings)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --fail-fast           Stop at the first failing file (default)")
	fmt.Fprintln(w, "      --keep-going          Format every file, report all failures")
	fmt.Fprintln(w, "      --diff                Print a unified diff for each changed file")
	fmt.Fprintln(w, "      --color <mode>        Diff colors: auto, always, never")
	fmt.Fprintln(w, "      --verify              Fail if a heading outline changes")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show unchanged files, timing and debug logs")
	fmt.Fprintln(w, "      --log-format <fmt>    Log format: text, json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDTIDY_CONFIG, MDTIDY_TARGET_DIR, MDTIDY_WORKERS, MDTIDY_KEEP_GOING,")
	fmt.Fprintln(w, "  MDTIDY_LOG_LEVEL, MDTIDY_LOG_FORMAT")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  general error, or check found files to reformat")
	fmt.Fprintln(w, "  2  invalid flags or config, or no target given")
	fmt.Fprintln(w, "  3  file not found, unreadable or unwritable")
}

// printInfoUsage prints usage for the info command.
func printInfoUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdtidy info [flags] <file>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the book metadata of a markdown file as YAML.")
	fmt.Fprintln(w, "Reads YAML front matter first, then lines such as 'Title: ...',")
	fmt.Fprintln(w, "'ISBN-13: ...', 'Release Date: 2019/09/13' and cover images.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (date formats)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs")
	fmt.Fprintln(w, "      --log-format <fmt>    Log format: text, json")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case cmdFormat, cmdCheck, cmdWatch:
		printRunUsage(env.Stdout, args[0])
	case cmdInfo:
		printInfoUsage(env.Stdout)
	case cmdVersion:
		fmt.Fprintln(env.Stdout, "Usage: mdtidy version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case cmdCompletion:
		printCompletionUsage(env.Stdout)
	case cmdHelp:
		fmt.Fprintln(env.Stdout, "Usage: mdtidy help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool // accepts Markdown files or directories
}

// completionMeta holds the hints a FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
}

var flagCompletionMeta = map[string]completionMeta{
	"color":      {Values: []string{colorAuto, colorAlways, colorNever}},
	"log-format": {Values: []string{"text", "json"}},
	"config":     {FileGlob: "*.yaml,*.yml,*.toml"},
}

// buildRunFlagSet registers the format/check/watch flags on a fresh set.
func buildRunFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	f := &runFlags{}
	addCommonFlags(fs, &f.common)
	addRunFlags(fs, f)
	return fs
}

func buildInfoFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet(cmdInfo, flag.ContinueOnError)
	f := &infoFlags{}
	addCommonFlags(fs, &f.common)
	return fs
}

// extractFlagsFromFlagSet converts pflag definitions, enriched with
// flagCompletionMeta, into completion entries sorted by name.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			}
		}
		flags = append(flags, fd)
	})
	sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	return []commandDef{
		{Name: cmdFormat, Desc: "Normalize Markdown files in place", Flags: extractFlagsFromFlagSet(buildRunFlagSet(cmdFormat)), TakesFiles: true},
		{Name: cmdCheck, Desc: "Report files that would be reformatted", Flags: extractFlagsFromFlagSet(buildRunFlagSet(cmdCheck)), TakesFiles: true},
		{Name: cmdWatch, Desc: "Format files as they change", Flags: extractFlagsFromFlagSet(buildRunFlagSet(cmdWatch)), TakesFiles: true},
		{Name: cmdInfo, Desc: "Print book metadata of a note", Flags: extractFlagsFromFlagSet(buildInfoFlagSet()), TakesFiles: true},
		{Name: cmdVersion, Desc: "Show version information"},
		{Name: cmdHelp, Desc: "Show help for a command"},
		{Name: cmdCompletion, Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes a completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(getCommands())
	case ShellZsh:
		script = zshScript(getCommands())
	case ShellFish:
		script = fishScript(getCommands())
	case ShellPowerShell:
		script = powerShellScript(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func longFlags(flags []flagDef) string {
	out := make([]string, 0, len(flags))
	for _, f := range flags {
		out = append(out, "--"+f.Long)
	}
	return strings.Join(out, " ")
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for mdtidy\n")
	b.WriteString("_mdtidy_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\"))\n", commandNames(cmds))
	b.WriteString("        return\n    fi\n\n")

	b.WriteString("    case \"${prev}\" in\n")
	seen := map[string]bool{}
	for _, c := range cmds {
		for _, f := range c.Flags {
			if seen[f.Long] || (f.Type != flagEnum && f.Type != flagFile) {
				continue
			}
			seen[f.Long] = true
			fmt.Fprintf(&b, "        --%s)\n", f.Long)
			if f.Type == flagEnum {
				fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\"))\n", strings.Join(f.Values, " "))
			} else {
				b.WriteString("            COMPREPLY=($(compgen -f -- \"${cur}\"))\n")
			}
			b.WriteString("            return\n            ;;\n")
		}
	}
	b.WriteString("    esac\n\n")

	b.WriteString("    case \"${cmd}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W \"%s\" -- \"${cur}\") $(compgen -f -- \"${cur}\"))\n", longFlags(c.Flags))
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n}\n")
	b.WriteString("complete -F _mdtidy_completions mdtidy\n")
	return b.String()
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef mdtidy\n\n_mdtidy() {\n")
	b.WriteString("    local -a commands\n    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, c.Desc)
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n        _files\n        return\n    fi\n\n")
	b.WriteString("    case \"${words[2]}\" in\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "        %s)\n            _arguments \\\n", c.Name)
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                '--%s[%s]%s' \\\n", f.Long, zshEscape(f.Desc), zshAction(f))
		}
		b.WriteString("                '*:file:_files'\n            ;;\n")
	}
	b.WriteString("    esac\n}\n\n_mdtidy \"$@\"\n")
	return b.String()
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagEnum:
		return ":value:(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		return ":file:_files"
	case flagInt, flagString:
		return ":value:"
	default:
		return ""
	}
}

func zshEscape(s string) string {
	r := strings.NewReplacer("[", `\[`, "]", `\]`, "'", `'\''`)
	return r.Replace(s)
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for mdtidy\n")
	fmt.Fprintf(&b, "function __fish_mdtidy_needs_command\n    not __fish_seen_subcommand_from %s\nend\n\n", commandNames(cmds))
	b.WriteString("function __fish_mdtidy_using_command\n    __fish_seen_subcommand_from $argv\nend\n\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c mdtidy -n __fish_mdtidy_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}
	for _, c := range cmds {
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c mdtidy -n '__fish_mdtidy_using_command %s' -l %s", c.Name, f.Long)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagInt, flagString:
				b.WriteString(" -x")
			}
			fmt.Fprintf(&b, " -d '%s'\n", fishEscape(f.Desc))
		}
	}
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func powerShellScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# PowerShell completion for mdtidy\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName mdtidy -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n")
	b.WriteString("    $words = $commandAst.CommandElements | ForEach-Object { $_.ToString() }\n")
	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		quoted := make([]string, len(c.Flags))
		for i, f := range c.Flags {
			quoted[i] = "'--" + f.Long + "'"
		}
		fmt.Fprintf(&b, "        '%s' = @(%s)\n", c.Name, strings.Join(quoted, ", "))
	}
	b.WriteString("    }\n")
	fmt.Fprintf(&b, "    $commands = @(%s)\n", psList(cmds))
	b.WriteString("    if ($words.Count -le 2 -and -not $wordToComplete.StartsWith('-')) {\n")
	b.WriteString("        $candidates = $commands\n")
	b.WriteString("    } elseif ($words.Count -ge 2 -and $flags.ContainsKey($words[1])) {\n")
	b.WriteString("        $candidates = $flags[$words[1]]\n")
	b.WriteString("    } else {\n        $candidates = $flags['format']\n    }\n")
	b.WriteString("    $candidates | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("        [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("    }\n}\n")
	return b.String()
}

func psList(cmds []commandDef) string {
	quoted := make([]string, len(cmds))
	for i, c := range cmds {
		quoted[i] = "'" + c.Name + "'"
	}
	return strings.Join(quoted, ", ")
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdtidy completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w, "  powershell  PowerShell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w, "  Bash:        eval \"$(mdtidy completion bash)\"")
	fmt.Fprintln(w, "  Zsh:         eval \"$(mdtidy completion zsh)\"")
	fmt.Fprintln(w, "  Fish:        mdtidy completion fish > ~/.config/fish/completions/mdtidy.fish")
	fmt.Fprintln(w, "  PowerShell:  mdtidy completion powershell | Out-String | Invoke-Expression")
}

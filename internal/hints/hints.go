// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"strings"
)

// InotifyWatchesPath is the Linux knob limiting watched directories.
const InotifyWatchesPath = "/proc/sys/fs/inotify/max_user_watches"

// ForConfigNotFound suggests creating the named config or passing --config.
func ForConfigNotFound(name string) string {
	if name == "" {
		name = "settings"
	}
	return format("create ./" + name + ".toml with target_dir = \"notes\", or use --config /path/to/file.yaml")
}

// ForNoTarget explains how to tell the formatter what to format.
func ForNoTarget() string {
	return format("pass a directory or file, or set targetDir (target_dir in TOML) in the config")
}

// ForUnsupportedExtension lists the extensions that are formatted.
func ForUnsupportedExtension(extensions []string) string {
	if len(extensions) == 0 {
		return ""
	}
	return format("formatted extensions: " + strings.Join(extensions, ", "))
}

// ForInvalidUTF8 suggests re-encoding the file.
func ForInvalidUTF8() string {
	return format("convert the file to UTF-8 first, e.g. iconv -f latin1 -t utf-8")
}

// ForOutlineChanged suggests how to inspect a verification failure.
func ForOutlineChanged() string {
	return format("inspect the change with --diff, or drop --verify to accept it")
}

// ForWatchLimit suggests raising the inotify watch limit.
func ForWatchLimit() string {
	return format("raise " + InotifyWatchesPath + " or watch a smaller directory")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

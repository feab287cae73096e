package escape

import "strings"

// Shell returns s as a single-quoted POSIX shell word.
// The empty string becomes ''.
func Shell(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// ShellJoin quotes every argument with Shell and joins them with spaces,
// producing a command line that a POSIX shell splits back into args.
func ShellJoin(args ...string) string {
	if len(args) == 0 {
		return ""
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Shell(a)
	}
	return strings.Join(quoted, " ")
}

// AppleScript escapes s for use inside a double-quoted AppleScript string
// literal. The caller supplies the surrounding quotes.
func AppleScript(s string) string {
	// Backslash first; order matters.
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

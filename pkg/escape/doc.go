// Package escape provides interop-safe string escaping for values that are
// interpolated into another language's source text.
//
// Agent-orchestrator plugins build command lines for tmux, terminal
// emulators and desktop notifiers out of agent-supplied metadata: session
// names, working directories, prompts, issue titles. Any of these may carry
// quotes, backslashes, newlines or shell metacharacters. Interpolating them
// without escaping is a command-injection bug.
//
// # Shell
//
// Shell wraps a value in POSIX single quotes. Inside single quotes a POSIX
// shell recognizes no escape characters except the closing quote itself, so
// the only rewrite needed is for embedded single quotes: ' becomes '\''
// (close the quoted segment, emit an escaped quote, reopen). The result is
// one shell token whose value is exactly the input.
//
// # AppleScript
//
// AppleScript escapes a value for insertion between the double quotes of an
// AppleScript string literal. Backslashes are doubled first and double
// quotes escaped second; the reverse order would double-escape the
// backslashes introduced for the quotes.
//
// Both functions are total: there is no input for which escaping fails.
package escape

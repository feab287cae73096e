// Package script builds the command lines and AppleScript sources that the
// runtime, terminal and notifier plugins hand to tmux and osascript. It only
// produces text; running it is the caller's business.
//
// Every caller-supplied value passes through package escape, so session
// names, prompts and paths cannot break out of their quoting.
package script

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dmochalinn/agent-orchestrator/pkg/escape"
	"github.com/dmochalinn/agent-orchestrator/pkg/validate"
)

// Terminal apps with a NewTab script.
const (
	AppITerm2   = "iTerm2"
	AppTerminal = "Terminal"
)

var envKeyPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Launch returns a shell command line that changes to workdir, then runs
// argv with env prepended as assignments. Env keys are emitted sorted.
// An empty workdir skips the cd.
func Launch(workdir string, env map[string]string, argv []string) (string, error) {
	if len(argv) == 0 {
		return "", ErrEmptyCommand
	}

	keys := make([]string, 0, len(env))
	for k := range env {
		if !envKeyPattern.MatchString(k) {
			return "", fmt.Errorf("%w: %q", ErrInvalidEnvKey, k)
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, k+"="+escape.Shell(env[k]))
	}
	parts = append(parts, escape.ShellJoin(argv...))
	cmd := strings.Join(parts, " ")

	if workdir == "" {
		return cmd, nil
	}
	return "cd " + escape.Shell(workdir) + " && " + cmd, nil
}

// TmuxSendKeys returns a tmux command line that types text literally into
// the pane identified by target.
func TmuxSendKeys(target, text string) string {
	return escape.ShellJoin("tmux", "send-keys", "-t", target, "-l", text)
}

// Notification returns AppleScript that shows a desktop notification.
func Notification(title, message string) string {
	return fmt.Sprintf(`display notification "%s" with title "%s"`,
		escape.AppleScript(message), escape.AppleScript(title))
}

// OpenURL returns AppleScript that asks app to open url. url must be an
// http(s) URL.
func OpenURL(app, url string) (string, error) {
	if err := validate.URL(url, "url"); err != nil {
		return "", err
	}
	return fmt.Sprintf(`tell application "%s" to open location "%s"`,
		escape.AppleScript(app), escape.AppleScript(url)), nil
}

// NewTab returns AppleScript that opens a new tab in app and runs command
// in it.
func NewTab(app, command string) (string, error) {
	cmd := escape.AppleScript(command)
	switch app {
	case AppITerm2:
		return strings.Join([]string{
			`tell application "iTerm2"`,
			`	activate`,
			`	tell current window`,
			`		create tab with default profile`,
			`		tell current session to write text "` + cmd + `"`,
			`	end tell`,
			`end tell`,
		}, "\n"), nil
	case AppTerminal:
		return strings.Join([]string{
			`tell application "Terminal"`,
			`	activate`,
			`	do script "` + cmd + `"`,
			`end tell`,
		}, "\n"), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedTerminal, app)
	}
}

// Osascript returns a shell command line that runs src with osascript.
func Osascript(src string) string {
	return escape.ShellJoin("osascript", "-e", src)
}

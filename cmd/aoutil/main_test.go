package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmochalinn/agent-orchestrator/internal/activity"
)

// runCLI executes the root command with args in an isolated config
// environment and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("AO_CONFIG", filepath.Join(t.TempDir(), "config.yaml"))
	for _, k := range []string{"AO_OUTPUT", "AO_VERBOSE", "AO_IDLE_THRESHOLD", "AO_CONCURRENCY", "AO_LOG_GLOB", "AO_TERMINAL_APP"} {
		t.Setenv(k, "")
	}

	verbose, output, cfgFile = false, "", ""
	quoteWrap = false
	validateLabel = "URL"
	activityIdle, activityConcurrency = 0, 0
	scriptOsascript, scriptWorkdir, scriptEnv, scriptTitle, scriptApp = false, "", nil, "Agent Orchestrator", ""
	configShow = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), err
}

func writeSessionLog(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestQuoteShell(t *testing.T) {
	out, err := runCLI(t, "quote", "shell", "echo", "it's", "")
	require.NoError(t, err)
	assert.Equal(t, "'echo' 'it'\\''s' ''\n", out)
}

func TestQuoteAppleScript(t *testing.T) {
	out, err := runCLI(t, "quote", "applescript", `say "a\b"`)
	require.NoError(t, err)
	assert.Equal(t, `say \"a\\b\"`+"\n", out)

	out, err = runCLI(t, "quote", "applescript", "--wrap", `"`)
	require.NoError(t, err)
	assert.Equal(t, `"\""`+"\n", out)
}

func TestValidateURL(t *testing.T) {
	_, err := runCLI(t, "validate-url", "https://example.com")
	require.NoError(t, err)

	_, err = runCLI(t, "validate-url", "--label", "P", "ftp://x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "P")
	assert.Contains(t, err.Error(), "ftp://x")
}

func TestLastEntry(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionLog(t, dir, "s.jsonl", "{\"type\":\"a\"}\n{\"type\":\"b\"", time.Now())

	out, err := runCLI(t, "last-entry", path)
	require.NoError(t, err)
	assert.Contains(t, out, "LAST TYPE")
	assert.Contains(t, out, " a ")

	out, err = runCLI(t, "last-entry", "-o", "json", path)
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a", got["last_type"])
	assert.Equal(t, true, got["has_type"])
}

func TestLastEntry_EmptyType(t *testing.T) {
	dir := t.TempDir()
	path := writeSessionLog(t, dir, "s.jsonl", "{\"type\":\"\"}\n", time.Now())

	out, err := runCLI(t, "last-entry", path)
	require.NoError(t, err)
	assert.Contains(t, out, ` "" `)

	out, err = runCLI(t, "activity", "--idle", "24h", path)
	require.NoError(t, err)
	assert.Contains(t, out, ` "" `)
}

func TestLastEntry_NoSignal(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.jsonl")

	out, err := runCLI(t, "last-entry", missing)
	require.NoError(t, err)
	assert.Equal(t, "no usable log signal\n", out)

	out, err = runCLI(t, "last-entry", "-o", "json", missing)
	require.NoError(t, err)
	assert.Equal(t, "null", strings.TrimSpace(out))
}

func TestActivity(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()
	writeSessionLog(t, dir, "a.jsonl", "{\"type\":\"permission_request\"}\n", now)
	writeSessionLog(t, dir, "b.jsonl", "{\"type\":\"assistant\"}\n", now.Add(-2*time.Hour))
	writeSessionLog(t, dir, "ignored.txt", "{\"type\":\"error\"}\n", now)

	out, err := runCLI(t, "activity", "-o", "json", dir)
	require.NoError(t, err)

	var reports []activity.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)
	assert.Equal(t, activity.StateWaitingInput, reports[0].State)
	assert.Equal(t, activity.StateIdle, reports[1].State)

	out, err = runCLI(t, "activity", "--idle", "24h", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "waiting_input")
	assert.Contains(t, out, "ready")
}

func TestActivity_MissingLogIsUnknown(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone.jsonl")
	out, err := runCLI(t, "activity", missing)
	require.NoError(t, err)
	assert.Contains(t, out, "unknown")
}

func TestScriptLaunch(t *testing.T) {
	out, err := runCLI(t, "script", "launch", "--workdir", "/w", "--env", "AO_ID=1", "--", "claude", "--resume", "it's")
	require.NoError(t, err)
	assert.Equal(t, "cd '/w' && AO_ID='1' 'claude' '--resume' 'it'\\''s'\n", out)

	_, err = runCLI(t, "script", "launch", "--env", "NOEQUALS", "--", "x")
	assert.Error(t, err)
}

func TestScriptNotifyOsascript(t *testing.T) {
	out, err := runCLI(t, "script", "notify", "--osascript", "--title", "ao", `done "now"`)
	require.NoError(t, err)
	assert.Equal(t, `'osascript' '-e' 'display notification "done \"now\"" with title "ao"'`+"\n", out)
}

func TestScriptOpenURL(t *testing.T) {
	out, err := runCLI(t, "script", "open-url", "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, `tell application "Safari" to open location "https://example.com"`+"\n", out)

	_, err = runCLI(t, "script", "open-url", "javascript:alert(1)")
	assert.Error(t, err)
}

func TestScriptNewTabUsesConfiguredTerminal(t *testing.T) {
	out, err := runCLI(t, "script", "new-tab", "htop")
	require.NoError(t, err)
	assert.Contains(t, out, `tell application "iTerm2"`)

	out, err = runCLI(t, "script", "new-tab", "--app", "Terminal", "htop")
	require.NoError(t, err)
	assert.Contains(t, out, `do script "htop"`)
}

func TestGlobalConfigFlag(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("terminal:\n  app: Terminal\n"), 0o644))

	out, err := runCLI(t, "--config", cfg, "script", "new-tab", "htop")
	require.NoError(t, err)
	assert.Contains(t, out, `tell application "Terminal"`)
	assert.Contains(t, out, `do script "htop"`)
}

func TestScriptSendKeys(t *testing.T) {
	out, err := runCLI(t, "script", "send-keys", "ao-1", "hello; world")
	require.NoError(t, err)
	assert.Equal(t, "'tmux' 'send-keys' '-t' 'ao-1' '-l' 'hello; world'\n", out)
}

func TestConfigShow(t *testing.T) {
	out, err := runCLI(t, "config", "--show", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "idle_threshold:")
	assert.Contains(t, out, "source: flag")

	out, err = runCLI(t, "config", "--show")
	require.NoError(t, err)
	assert.Contains(t, out, "activity.idle_threshold:  5m  (from default)")
}

func TestVersion(t *testing.T) {
	out, err := runCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aoutil version dev")
}

package escape

import (
	"os/exec"
	"strings"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hostileInputs = []string{
	"",
	"plain",
	"two words",
	"it's",
	"'",
	"''",
	`"double"`,
	`back\slash`,
	`\'`,
	`'\''`,
	"line1\nline2",
	"tab\there",
	"$(rm -rf /)",
	"`whoami`",
	"a; echo pwned",
	"${HOME}",
	"*?[a-z]",
	"\x01\x02\x7f",
	"unicode ✓ 日本語",
	"trailing space ",
}

// shellWord decodes s the way a POSIX shell reads one word built from
// single-quoted segments and backslash escapes. ok is false if s would
// split into more than one word or is malformed.
func shellWord(s string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'':
			end := strings.IndexByte(s[i+1:], '\'')
			if end < 0 {
				return "", false
			}
			b.WriteString(s[i+1 : i+1+end])
			i += end + 1
		case '\\':
			if i+1 >= len(s) {
				return "", false
			}
			i++
			b.WriteByte(s[i])
		case ' ', '\t', '\n':
			return "", false
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

// appleScriptLiteral evaluates the body of a double-quoted AppleScript
// string literal. ok is false if an unescaped quote ends it early.
func appleScriptLiteral(body string) (string, bool) {
	var b strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch c {
		case '"':
			return "", false
		case '\\':
			if i+1 >= len(body) {
				return "", false
			}
			i++
			switch body[i] {
			case '\\':
				b.WriteByte('\\')
			case '"':
				b.WriteByte('"')
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				b.WriteByte('\\')
				b.WriteByte(body[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), true
}

func TestShell_Examples(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "''"},
		{"abc", "'abc'"},
		{"it's", `'it'\''s'`},
		{"'", `''\'''`},
		{`a"b\c`, `'a"b\c'`},
		{"a\nb", "'a\nb'"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Shell(tt.in), "Shell(%q)", tt.in)
	}
}

func TestShell_DecodesToInput(t *testing.T) {
	for _, in := range hostileInputs {
		got, ok := shellWord(Shell(in))
		require.True(t, ok, "Shell(%q) is not a single word", in)
		assert.Equal(t, in, got)
	}
}

func TestShell_Property(t *testing.T) {
	f := func(s string) bool {
		got, ok := shellWord(Shell(s))
		return ok && got == s
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))
}

func TestShell_RoundTripThroughSh(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	for _, in := range hostileInputs {
		out, err := exec.Command(sh, "-c", "printf '%s' "+Shell(in)).Output()
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, in, string(out))
	}
}

func TestShellJoin(t *testing.T) {
	assert.Equal(t, "", ShellJoin())
	assert.Equal(t, "'echo'", ShellJoin("echo"))
	assert.Equal(t, `'echo' 'it'\''s' ''`, ShellJoin("echo", "it's", ""))
}

func TestShellJoin_RoundTripThroughSh(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	line := ShellJoin("printf", "%s|%s|%s", "a b", "it's", `"q"\`)
	out, err := exec.Command(sh, "-c", line).Output()
	require.NoError(t, err)
	assert.Equal(t, `a b|it's|"q"\`, string(out))
}

func TestAppleScript_Examples(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"empty", "", ""},
		{"plain", "/Users/test/Library", "/Users/test/Library"},
		{"quotes", `My "Documents"`, `My \"Documents\"`},
		{"backslash", `path\with\slash`, `path\\with\\slash`},
		// Backslash before quote: \" -> \\" -> \\\"
		{"backslash then quote", `test\"path`, `test\\\"path`},
		{"newline kept", "a\nb", "a\nb"},
		{"unicode", "한글 日本語", "한글 日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AppleScript(tt.in))
		})
	}
}

func TestAppleScript_EvaluatesToInput(t *testing.T) {
	inputs := append([]string{`\n`, `\\"`, `"\`, `\\\\`, `""""`}, hostileInputs...)
	for _, in := range inputs {
		got, ok := appleScriptLiteral(AppleScript(in))
		require.True(t, ok, "AppleScript(%q) terminates the literal early", in)
		assert.Equal(t, in, got)
	}
}

func TestAppleScript_Property(t *testing.T) {
	f := func(s string) bool {
		got, ok := appleScriptLiteral(AppleScript(s))
		return ok && got == s
	}
	require.NoError(t, quick.Check(f, &quick.Config{MaxCount: 2000}))
}

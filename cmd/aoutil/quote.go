package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmochalinn/agent-orchestrator/pkg/escape"
)

var quoteWrap bool

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Quote values for a shell or AppleScript",
	Long: `Quote untrusted values so they can be pasted into another language's
source text without changing their meaning.

Examples:
  aoutil quote shell echo "it's done"      # 'echo' 'it'\''s done'
  aoutil quote applescript 'say "hi"'      # say \"hi\"
  aoutil quote applescript --wrap 'a\b'    # "a\\b"`,
}

var quoteShellCmd = &cobra.Command{
	Use:   "shell ARG...",
	Short: "Quote each argument as one POSIX shell word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), escape.ShellJoin(args...))
		return nil
	},
}

var quoteAppleScriptCmd = &cobra.Command{
	Use:   "applescript VALUE",
	Short: "Escape a value for an AppleScript string literal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := escape.AppleScript(args[0])
		if quoteWrap {
			s = `"` + s + `"`
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(quoteCmd)
	quoteCmd.AddCommand(quoteShellCmd, quoteAppleScriptCmd)
	quoteAppleScriptCmd.Flags().BoolVar(&quoteWrap, "wrap", false, "Surround the result with double quotes")
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmochalinn/agent-orchestrator/internal/script"
)

var (
	scriptOsascript bool
	scriptWorkdir   string
	scriptEnv       []string
	scriptTitle     string
	scriptApp       string
)

var scriptCmd = &cobra.Command{
	Use:   "script",
	Short: "Print command text for the tmux and macOS terminal plugins",
	Long: `Generate shell command lines and AppleScript with every value escaped.
Nothing is executed; the text is printed for the caller to run.

AppleScript output can be wrapped in an osascript command line with
--osascript.`,
}

var scriptLaunchCmd = &cobra.Command{
	Use:   "launch [--workdir DIR] [--env K=V]... -- COMMAND [ARG...]",
	Short: "Print a shell command line that starts an agent",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env := make(map[string]string, len(scriptEnv))
		for _, kv := range scriptEnv {
			k, v, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("invalid --env %q: want KEY=VALUE", kv)
			}
			env[k] = v
		}
		line, err := script.Launch(scriptWorkdir, env, args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
		return nil
	},
}

var scriptSendKeysCmd = &cobra.Command{
	Use:   "send-keys TARGET TEXT",
	Short: "Print a tmux command that types TEXT into a pane",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), script.TmuxSendKeys(args[0], args[1]))
		return nil
	},
}

var scriptNotifyCmd = &cobra.Command{
	Use:   "notify MESSAGE",
	Short: "Print AppleScript for a desktop notification",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printAppleScript(cmd, script.Notification(scriptTitle, args[0]))
	},
}

var scriptOpenURLCmd = &cobra.Command{
	Use:   "open-url URL",
	Short: "Print AppleScript that opens an http(s) URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := scriptApp
		if app == "" {
			app = "Safari"
		}
		src, err := script.OpenURL(app, args[0])
		if err != nil {
			return err
		}
		return printAppleScript(cmd, src)
	},
}

var scriptNewTabCmd = &cobra.Command{
	Use:   "new-tab COMMAND",
	Short: "Print AppleScript that runs COMMAND in a new terminal tab",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := scriptApp
		if app == "" {
			app = loadConfig().Terminal.App
		}
		src, err := script.NewTab(app, args[0])
		if err != nil {
			return err
		}
		return printAppleScript(cmd, src)
	},
}

func printAppleScript(cmd *cobra.Command, src string) error {
	if scriptOsascript {
		src = script.Osascript(src)
	}
	fmt.Fprintln(cmd.OutOrStdout(), src)
	return nil
}

func init() {
	rootCmd.AddCommand(scriptCmd)
	scriptCmd.AddCommand(scriptLaunchCmd, scriptSendKeysCmd, scriptNotifyCmd, scriptOpenURLCmd, scriptNewTabCmd)

	scriptCmd.PersistentFlags().BoolVar(&scriptOsascript, "osascript", false, "Wrap AppleScript in an osascript -e command line")
	scriptLaunchCmd.Flags().StringVar(&scriptWorkdir, "workdir", "", "Directory to cd into first")
	scriptLaunchCmd.Flags().StringArrayVar(&scriptEnv, "env", nil, "Environment assignment KEY=VALUE (repeatable)")
	scriptNotifyCmd.Flags().StringVar(&scriptTitle, "title", "Agent Orchestrator", "Notification title")
	scriptOpenURLCmd.Flags().StringVar(&scriptApp, "app", "", "Application to open the URL with (default Safari)")
	scriptNewTabCmd.Flags().StringVar(&scriptApp, "app", "", "Terminal app (iTerm2, Terminal; default from config)")
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmochalinn/agent-orchestrator/internal/config"
	"github.com/dmochalinn/agent-orchestrator/internal/formatter"
)

var configShow bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View aoutil configuration.

Configuration priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (AO_*)
  3. Project config (.agent-orchestrator/config.yaml)
  4. Home config (~/.agent-orchestrator/config.yaml)
  5. Defaults

Environment variables:
  AO_CONFIG          - Explicit config file path (overrides project config location)
  AO_OUTPUT          - Default output format (table, json, jsonl, yaml)
  AO_VERBOSE         - Enable debug logging (true/1)
  AO_IDLE_THRESHOLD  - Idle threshold for activity (e.g. 5m)
  AO_CONCURRENCY     - Logs read in parallel by activity
  AO_LOG_GLOB        - File pattern used when activity scans a directory
  AO_TERMINAL_APP    - Terminal app for script new-tab (iTerm2, Terminal)

Examples:
  aoutil config --show           # Show resolved configuration
  aoutil config --show -o json   # Output as JSON`,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVar(&configShow, "show", false, "Show resolved configuration with sources")
}

var configEnvVars = []string{
	"AO_CONFIG",
	"AO_OUTPUT",
	"AO_VERBOSE",
	"AO_IDLE_THRESHOLD",
	"AO_CONCURRENCY",
	"AO_LOG_GLOB",
	"AO_TERMINAL_APP",
}

func runConfig(cmd *cobra.Command, args []string) error {
	if !configShow {
		return cmd.Help()
	}

	resolved := config.Resolve(output, verbose)
	w := cmd.OutOrStdout()

	if format := GetOutput(); format != formatter.FormatTable {
		return formatter.Write(w, format, resolved)
	}

	fmt.Fprintln(w, "aoutil Configuration")
	fmt.Fprintln(w, "====================")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Config files:")
	printConfigFile(w, "Home:   ", config.HomeConfigPath())
	printConfigFile(w, "Project:", config.ProjectConfigPath())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolved values:")
	fmt.Fprintf(w, "  output:                   %v  (from %s)\n", resolved.Output.Value, resolved.Output.Source)
	fmt.Fprintf(w, "  verbose:                  %v  (from %s)\n", resolved.Verbose.Value, resolved.Verbose.Source)
	fmt.Fprintf(w, "  activity.idle_threshold:  %v  (from %s)\n", resolved.IdleThreshold.Value, resolved.IdleThreshold.Source)
	fmt.Fprintf(w, "  activity.concurrency:     %v  (from %s)\n", resolved.Concurrency.Value, resolved.Concurrency.Source)
	fmt.Fprintf(w, "  activity.log_glob:        %v  (from %s)\n", resolved.LogGlob.Value, resolved.LogGlob.Source)
	fmt.Fprintf(w, "  terminal.app:             %v  (from %s)\n", resolved.TerminalApp.Value, resolved.TerminalApp.Source)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables (if set):")
	anySet := false
	for _, env := range configEnvVars {
		if v := os.Getenv(env); v != "" {
			fmt.Fprintf(w, "  %s=%s\n", env, v)
			anySet = true
		}
	}
	if !anySet {
		fmt.Fprintln(w, "  (none set)")
	}
	return nil
}

func printConfigFile(w io.Writer, label, path string) {
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  ✓ %s %s\n", label, path)
		return
	}
	fmt.Fprintf(w, "  ✗ %s %s (not found)\n", label, path)
}

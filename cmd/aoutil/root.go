package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dmochalinn/agent-orchestrator/internal/config"
)

var (
	// Global flags
	verbose bool
	output  string
	cfgFile string

	logger = zap.NewNop()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "aoutil",
	Short: "Agent-orchestrator plugin utilities",
	Long: `aoutil exposes the shared helpers used by agent-orchestrator plugins.

Commands:
  quote         Quote values for a POSIX shell or an AppleScript literal
  validate-url  Check that a URL is http(s) before handing it to another program
  last-entry    Show the newest typed record of a JSON-Lines session log
  activity      Classify agent activity from one or more session logs
  script        Print tmux / osascript command text for terminal plugins
  config        Show resolved configuration
  version       Show version information`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		syncConfigFlagToEnv()

		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if GetVerbose() {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output format (table, json, jsonl, yaml)")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: .agent-orchestrator/config.yaml)")
}

// loadConfig resolves configuration with global flags applied on top.
func loadConfig() *config.Config {
	cfg, _ := config.Load(&config.Config{Output: output, Verbose: verbose})
	return cfg
}

// GetVerbose returns the verbose setting after config resolution.
func GetVerbose() bool {
	return loadConfig().Verbose
}

// GetOutput returns the output format for use by subcommands.
func GetOutput() string {
	return loadConfig().Output
}

func syncConfigFlagToEnv() {
	path := strings.TrimSpace(cfgFile)
	if path == "" {
		return
	}
	_ = os.Setenv("AO_CONFIG", path)
}

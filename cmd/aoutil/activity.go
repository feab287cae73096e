package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dmochalinn/agent-orchestrator/internal/activity"
	"github.com/dmochalinn/agent-orchestrator/internal/formatter"
	"github.com/dmochalinn/agent-orchestrator/pkg/jsonl"
)

var (
	activityIdle        time.Duration
	activityConcurrency int
)

var activityCmd = &cobra.Command{
	Use:   "activity PATH|DIR...",
	Short: "Classify agent activity from session logs",
	Long: `Read the tail of each session log and classify the agent behind it:

  active         working (last record is user input, a tool call or progress)
  ready          finished its turn and waits for the next prompt
  waiting_input  blocked on a permission prompt
  blocked        last record is an error
  idle           log not modified within the idle threshold
  unknown        log missing, unreadable or empty

Directories are expanded with activity.log_glob (default *.jsonl).

Examples:
  aoutil activity ~/.claude/projects/myrepo
  aoutil activity --idle 10m -o json a.jsonl b.jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runActivity,
}

func init() {
	rootCmd.AddCommand(activityCmd)
	activityCmd.Flags().DurationVar(&activityIdle, "idle", 0, "Idle threshold (default from config, 5m)")
	activityCmd.Flags().IntVar(&activityConcurrency, "concurrency", 0, "Logs read in parallel (default from config, NumCPU)")
}

func runActivity(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	idle := cfg.IdleThreshold()
	if activityIdle > 0 {
		idle = activityIdle
	}
	concurrency := cfg.Activity.Concurrency
	if activityConcurrency > 0 {
		concurrency = activityConcurrency
	}

	paths, err := activity.ExpandPaths(args, cfg.Activity.LogGlob)
	if err != nil {
		return err
	}
	logger.Debug("scanning session logs",
		zap.Int("paths", len(paths)),
		zap.Duration("idle", idle),
		zap.Int("concurrency", concurrency),
	)

	scanner := activity.NewScanner(jsonl.NewReader(logger), concurrency, idle)
	reports, err := scanner.Scan(cmd.Context(), paths)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if cfg.Output != formatter.FormatTable {
		return formatter.Write(w, cfg.Output, reports)
	}

	if len(reports) == 0 {
		fmt.Fprintln(w, "no session logs found")
		return nil
	}
	now := time.Now()
	tbl := formatter.NewTable(w, "PATH", "STATE", "LAST TYPE", "AGE")
	tbl.SetMaxWidth(0, 60)
	for _, r := range reports {
		lastType, age := "-", "-"
		if r.Present {
			lastType = typeCell(r.HasType, r.LastType)
			age = now.Sub(r.ModifiedAt).Truncate(time.Second).String()
		}
		tbl.AddRow(r.Path, string(r.State), lastType, age)
	}
	return tbl.Render()
}

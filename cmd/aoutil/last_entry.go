package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmochalinn/agent-orchestrator/internal/formatter"
	"github.com/dmochalinn/agent-orchestrator/pkg/jsonl"
)

var lastEntryCmd = &cobra.Command{
	Use:   "last-entry PATH",
	Short: "Show the newest typed record of a JSON-Lines log",
	Long: fmt.Sprintf(`Read at most %d bytes from the end of a JSON-Lines log and report the
"type" of the newest record found there, with the log's modification time.

A missing, unreadable or empty log has no usable signal; this is reported
but is not an error.

Examples:
  aoutil last-entry ~/.claude/projects/myrepo/session.jsonl
  aoutil last-entry -o json session.jsonl`, jsonl.MaxTailBytes),
	Args: cobra.ExactArgs(1),
	RunE: runLastEntry,
}

func init() {
	rootCmd.AddCommand(lastEntryCmd)
}

func runLastEntry(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	entry := jsonl.NewReader(logger).ReadLastEntry(args[0])

	if format := GetOutput(); format != formatter.FormatTable {
		return formatter.Write(w, format, entry)
	}

	if entry == nil {
		fmt.Fprintln(w, "no usable log signal")
		return nil
	}
	lastType := typeCell(entry.HasType, entry.LastType)
	tbl := formatter.NewTable(w, "PATH", "LAST TYPE", "MODIFIED")
	tbl.SetMaxWidth(0, 60)
	tbl.AddRow(args[0], lastType, entry.ModifiedAt.Format(time.RFC3339))
	return tbl.Render()
}

// typeCell renders a record type for a table. An empty type is shown as ""
// so it cannot be confused with "-", which means no typed record.
func typeCell(hasType bool, typ string) string {
	switch {
	case !hasType:
		return "-"
	case typ == "":
		return `""`
	default:
		return typ
	}
}

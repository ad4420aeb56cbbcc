package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/dotenvage/internal/audit"
	"github.com/PolarWolf314/dotenvage/internal/utils"
	"github.com/PolarWolf314/dotenvage/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation []string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringSliceVar(&logOperation, "operation", nil, "filter by operation (keygen, encrypt, set)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the audit log",
	Long: `Displays the audit trail of keygen, encrypt and set operations. Only
file paths and variable names are recorded, never values.

Examples:
  dotenvage log
  dotenvage log -n 10 --reverse
  dotenvage log --operation set --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := workflows.Log(context.Background(), workflows.LogOptions{
			Limit:      logLimit,
			Reverse:    logReverse,
			Operations: utils.SplitList(logOperation),
		})
		if err != nil {
			return fail(cmd.ErrOrStderr(), err)
		}
		Logger.Debugf("Read %d entries from %s", result.TotalEntriesBeforeFilter, result.Path)

		out := cmd.OutOrStdout()
		if logJSON {
			return outputLogJSON(out, result.Entries)
		}

		if len(result.Entries) == 0 {
			if result.TotalEntriesBeforeFilter == 0 {
				fmt.Fprintln(out, "No audit log entries found.")
			} else {
				fmt.Fprintln(out, "No audit log entries found matching the filters.")
			}
			return nil
		}

		for _, e := range result.Entries {
			fmt.Fprintf(out, "%-19s  %-8s  %s\n", formatDateTime(e.Timestamp), e.Operation, formatDetails(e))
		}
		return nil
	},
}

func outputLogJSON(w io.Writer, entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// formatDateTime renders an entry timestamp in local time, or returns it
// unchanged when it does not parse.
func formatDateTime(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDetails(e audit.Entry) string {
	switch e.Operation {
	case "keygen":
		details := e.KeyPath
		if e.KeyName != "" {
			details += " (" + e.KeyName + ")"
		}
		return details
	default:
		details := strings.Join(e.Files, ", ")
		if len(e.Variables) > 0 {
			details += ": " + strings.Join(e.Variables, ", ")
		}
		return details
	}
}

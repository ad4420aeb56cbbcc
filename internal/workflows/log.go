package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/dotenvage/internal/audit"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Operations keeps only entries for these operations. Empty keeps all.
	Operations []string

	// Reverse orders entries from most recent to oldest.
	Reverse bool
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	Entries []audit.Entry
	Path    string

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	result := &LogResult{
		Path:                     audit.LogPath(),
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(opts.Operations) > 0 {
		entries = filterByOperations(entries, opts.Operations)
	}
	entries = audit.Last(entries, opts.Limit)

	if opts.Reverse {
		reversed := make([]audit.Entry, len(entries))
		for i, e := range entries {
			reversed[len(entries)-1-i] = e
		}
		entries = reversed
	}

	result.Entries = entries
	return result, nil
}

func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool, len(ops))
	for _, op := range ops {
		opSet[op] = true
	}

	var filtered []audit.Entry
	for _, e := range entries {
		if opSet[e.Operation] {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

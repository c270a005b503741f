package model

import "context"

// ProcessSearcher is the process-search capability the survey drives.
// SearchProcesses calls fn for every record matching filter, in backend
// order, until records are exhausted, fn returns an error, or ctx is
// cancelled — in which case the context's error is returned so callers
// can keep whatever was already consumed.
type ProcessSearcher interface {
	SearchProcesses(ctx context.Context, filter string, fn func(ProcessRecord) error) error
}

package survey

import (
	"context"
	"errors"

	"github.com/threatops/surveyor/internal/model"
	"github.com/threatops/surveyor/internal/query"
)

// collect runs one source's filter against the backend and reduces the
// record stream into a fresh result set. A cancelled context is not an
// error: the set gathered so far is returned with partial=true. Any
// other backend failure comes back as a *BackendError.
func collect(ctx context.Context, searcher model.ProcessSearcher, src query.Source) (set model.ResultSet, partial bool, err error) {
	set = make(model.ResultSet)
	err = searcher.SearchProcesses(ctx, src.Filter, func(r model.ProcessRecord) error {
		set.Add(r)
		return nil
	})
	switch {
	case err == nil:
		return set, false, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return set, true, nil
	default:
		return nil, false, &BackendError{Filter: src.Filter, Label: src.Label, Err: err}
	}
}

package survey

import "fmt"

// BackendError reports a search the backend rejected or failed to
// serve. It carries the filter and source label so the operator can
// re-run just the failing source. The source's results are treated as
// empty and the survey continues.
type BackendError struct {
	Filter string
	Label  string
	Err    error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("survey: search for source %q failed: %v (filter: %s)", e.Label, e.Err, e.Filter)
}

func (e *BackendError) Unwrap() error { return e.Err }

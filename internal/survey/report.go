package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/threatops/surveyor/internal/model"
)

var reportHeader = []string{"endpoint", "username", "process_path", "cmdline", "program", "source"}

// Report writes survey rows as CSV. Writes are serialized behind a
// mutex so sources may be collected in parallel while the sink stays
// append-only and sequential.
type Report struct {
	mu   sync.Mutex
	w    *csv.Writer
	rows int
}

// NewReport wraps w and writes the header row.
func NewReport(w io.Writer) (*Report, error) {
	r := &Report{w: csv.NewWriter(w)}
	if err := r.w.Write(reportHeader); err != nil {
		return nil, fmt.Errorf("survey: write csv header: %w", err)
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return nil, fmt.Errorf("survey: write csv header: %w", err)
	}
	return r, nil
}

// WriteSource emits one row per tuple in the set, annotated with the
// source's label and kind. Tuples are sorted before writing so the
// report is byte-for-byte reproducible; the set itself carries no
// order.
func (r *Report) WriteSource(set model.ResultSet, label, kind string) error {
	tuples := make([]model.ResultTuple, 0, len(set))
	for t := range set {
		tuples = append(tuples, t)
	}
	sort.Slice(tuples, func(i, j int) bool {
		a, b := tuples[i], tuples[j]
		if a.Endpoint != b.Endpoint {
			return a.Endpoint < b.Endpoint
		}
		if a.Username != b.Username {
			return a.Username < b.Username
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Cmdline < b.Cmdline
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range tuples {
		if err := r.w.Write([]string{t.Endpoint, t.Username, t.Path, t.Cmdline, label, kind}); err != nil {
			return fmt.Errorf("survey: write csv row: %w", err)
		}
		r.rows++
	}
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		return fmt.Errorf("survey: flush csv: %w", err)
	}
	return nil
}

// Rows returns the number of data rows written so far.
func (r *Report) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

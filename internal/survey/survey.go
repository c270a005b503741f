// Package survey drives criteria sources through the process-search
// backend and reduces matches into a deduplicated, source-tagged CSV
// report. Every source — one ad-hoc query, one indicator line, or one
// program within a definition file — gets its own result set; a
// failure or interruption on one source never blocks the others.
package survey

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/threatops/surveyor/internal/definitions"
	"github.com/threatops/surveyor/internal/model"
	"github.com/threatops/surveyor/internal/query"
)

// Runner executes a survey pass over one input mode.
type Runner struct {
	Searcher model.ProcessSearcher
	Report   *Report

	// Window is the pre-built time-window fragment appended to every
	// filter (possibly empty).
	Window string

	// Workers bounds concurrent source collection. Values <= 1 keep
	// the original sequential behavior.
	Workers int
}

// RunQuery surveys a single ad-hoc filter string.
func (r *Runner) RunQuery(ctx context.Context, q string) error {
	return r.runSources(ctx, []query.Source{query.FromQuery(q, r.Window)})
}

// RunIOCFile surveys every non-blank line of an indicator file against
// the given indicator type's backend field.
func (r *Runner) RunIOCFile(ctx context.Context, path, iocType string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("survey: read ioc file: %w", err)
	}
	lines := strings.Split(string(data), "\n")
	return r.runSources(ctx, query.FromIOCLines(iocType, lines, r.Window))
}

// RunDefinitionFiles surveys each program of each definition file. A
// file that fails to parse is reported and skipped; remaining files
// are still processed.
func (r *Runner) RunDefinitionFiles(ctx context.Context, files []string) error {
	for _, file := range files {
		if ctx.Err() != nil {
			return nil
		}
		log.Printf("Processing definition file: %s", file)

		programs, err := definitions.Load(file)
		if err != nil {
			log.Printf("ERROR: %v", err)
			continue
		}

		kind := definitions.SourceName(file)
		sources := make([]query.Source, 0, len(programs))
		for _, p := range programs {
			log.Printf("--> %s", p.Name)
			sources = append(sources, query.FromProgram(p, kind, r.Window))
		}
		if err := r.runSources(ctx, sources); err != nil {
			return err
		}
	}
	return nil
}

// runSources collects and emits every source. Once the context is
// cancelled no new sources are started; rows already gathered stay in
// the report. The returned error is reserved for sink failures —
// backend errors are logged per source and the pass continues.
func (r *Runner) runSources(ctx context.Context, sources []query.Source) error {
	if r.Workers > 1 {
		g := new(errgroup.Group)
		g.SetLimit(r.Workers)
		for _, src := range sources {
			src := src
			g.Go(func() error {
				if ctx.Err() != nil {
					return nil
				}
				return r.runOne(ctx, src)
			})
		}
		return g.Wait()
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return nil
		}
		if err := r.runOne(ctx, src); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runOne(ctx context.Context, src query.Source) error {
	set, partial, err := collect(ctx, r.Searcher, src)
	if err != nil {
		log.Printf("ERROR: %v", err)
		return nil
	}
	if partial {
		log.Printf("survey: interrupted; keeping %d partial results for %q", len(set), src.Label)
	}
	return r.Report.WriteSource(set, src.Label, src.Kind)
}

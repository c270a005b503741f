package query

import (
	"strings"

	"github.com/threatops/surveyor/internal/model"
)

// Source kinds for ad-hoc queries and indicator lines. Program sources
// use the definition file's basename as their kind instead.
const (
	KindQuery = "query"
	KindIOC   = "ioc"
)

// Source is one executable unit of the survey: a backend filter plus
// the provenance recorded on every row it yields. Each source gets its
// own result set; deduplication never crosses source boundaries.
type Source struct {
	Filter string
	Label  string
	Kind   string
}

// FromQuery passes an ad-hoc filter through unchanged apart from the
// appended time window.
func FromQuery(q, window string) Source {
	return Source{Filter: q + window, Label: q, Kind: KindQuery}
}

// FromIOCLines builds one source per non-blank line, searching the
// indicator value against the type's backend field. Blank lines are
// skipped silently; duplicate values each keep their own source.
func FromIOCLines(iocType string, lines []string, window string) []Source {
	sources := make([]Source, 0, len(lines))
	for _, line := range lines {
		value := strings.TrimSpace(line)
		if value == "" {
			continue
		}
		sources = append(sources, Source{
			Filter: iocType + ":" + value + window,
			Label:  value,
			Kind:   KindIOC,
		})
	}
	return sources
}

// FromProgram composes a single filter for a whole program: each
// field's terms are OR-joined inside parentheses and the groups are
// joined by single spaces, which the backend treats as an implicit
// AND. Field order follows the definition file.
func FromProgram(p model.Program, kind, window string) Source {
	groups := make([]string, 0, len(p.Fields))
	for _, ft := range p.Fields {
		terms := make([]string, 0, len(ft.Terms))
		for _, term := range ft.Terms {
			terms = append(terms, ft.Field+":"+term)
		}
		groups = append(groups, "("+strings.Join(terms, " OR ")+")")
	}
	return Source{
		Filter: strings.Join(groups, " ") + window,
		Label:  p.Name,
		Kind:   kind,
	}
}

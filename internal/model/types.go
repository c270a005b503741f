package model

import "strings"

// ProcessRecord is one matched process as returned by the search backend.
// The backend owns the full document; the survey projects only these
// four fields.
type ProcessRecord struct {
	Hostname string
	Username string
	Path     string
	Cmdline  string
}

// ResultTuple is the deduplication key and row payload for one
// observation. Endpoint and username are case-folded; path and cmdline
// are kept verbatim.
type ResultTuple struct {
	Endpoint string
	Username string
	Path     string
	Cmdline  string
}

// TupleFrom projects a process record onto its deduplication tuple.
func TupleFrom(r ProcessRecord) ResultTuple {
	return ResultTuple{
		Endpoint: strings.ToLower(r.Hostname),
		Username: strings.ToLower(r.Username),
		Path:     r.Path,
		Cmdline:  r.Cmdline,
	}
}

// ResultSet holds the unique tuples gathered for a single source.
// Enumeration order is undefined; callers that need order must sort.
type ResultSet map[ResultTuple]struct{}

// Add inserts the record's tuple; duplicates collapse.
func (s ResultSet) Add(r ProcessRecord) {
	s[TupleFrom(r)] = struct{}{}
}

// Row is one output record: a result tuple annotated with provenance.
type Row struct {
	ResultTuple
	Program string // source label: query text, IOC value, or program name
	Source  string // source kind: "query", "ioc", or definition-file basename
}

// FieldTerms pairs one backend search field with its literal terms.
// Slice order is meaningful: it reproduces the definition file's order.
type FieldTerms struct {
	Field string
	Terms []string
}

// Program is one named criteria definition within a definition file.
type Program struct {
	Name   string
	Fields []FieldTerms
}

// IOCType names the backend search field used for one indicator class.
type IOCType string

const (
	IOCTypeIPAddr IOCType = "ipaddr"
	IOCTypeDomain IOCType = "domain"
	IOCTypeMD5    IOCType = "md5"
)

// ValidIOCType reports whether s is an accepted --ioctype value.
func ValidIOCType(s string) bool {
	switch IOCType(s) {
	case IOCTypeIPAddr, IOCTypeDomain, IOCTypeMD5:
		return true
	}
	return false
}

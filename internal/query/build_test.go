package query

import (
	"testing"

	"github.com/threatops/surveyor/internal/model"
)

func TestFromQuery(t *testing.T) {
	t.Parallel()

	src := FromQuery("process_name:evil.exe", " start:-60m")
	if src.Filter != "process_name:evil.exe start:-60m" {
		t.Errorf("Filter = %q", src.Filter)
	}
	if src.Label != "process_name:evil.exe" {
		t.Errorf("Label = %q", src.Label)
	}
	if src.Kind != KindQuery {
		t.Errorf("Kind = %q, want %q", src.Kind, KindQuery)
	}
}

func TestFromQuery_NoWindow(t *testing.T) {
	t.Parallel()

	src := FromQuery("domain:badhost.example", "")
	if src.Filter != "domain:badhost.example" {
		t.Errorf("Filter = %q", src.Filter)
	}
}

func TestFromIOCLines(t *testing.T) {
	t.Parallel()

	lines := []string{"10.0.0.1", "", "  ", "10.0.0.2\r", "10.0.0.1"}
	sources := FromIOCLines("ipaddr", lines, " start:-1440m")

	if len(sources) != 3 {
		t.Fatalf("got %d sources, want 3 (blank lines skipped, duplicates kept)", len(sources))
	}
	if sources[0].Filter != "ipaddr:10.0.0.1 start:-1440m" {
		t.Errorf("first filter = %q", sources[0].Filter)
	}
	if sources[1].Filter != "ipaddr:10.0.0.2 start:-1440m" {
		t.Errorf("second filter = %q", sources[1].Filter)
	}
	if sources[2].Label != "10.0.0.1" {
		t.Errorf("duplicate label = %q", sources[2].Label)
	}
	for _, s := range sources {
		if s.Kind != KindIOC {
			t.Errorf("Kind = %q, want %q", s.Kind, KindIOC)
		}
	}
}

func TestFromProgram(t *testing.T) {
	t.Parallel()

	p := model.Program{
		Name: "chrome",
		Fields: []model.FieldTerms{
			{Field: "process_name", Terms: []string{"chrome.exe", "chrome"}},
			{Field: "digsig_publisher", Terms: []string{"Google"}},
		},
	}
	src := FromProgram(p, "browsers", " start:-1440m")

	want := "(process_name:chrome.exe OR process_name:chrome) (digsig_publisher:Google) start:-1440m"
	if src.Filter != want {
		t.Errorf("Filter = %q, want %q", src.Filter, want)
	}
	if src.Label != "chrome" {
		t.Errorf("Label = %q, want %q", src.Label, "chrome")
	}
	if src.Kind != "browsers" {
		t.Errorf("Kind = %q, want %q", src.Kind, "browsers")
	}
}

func TestFromProgram_SingleFieldNoWindow(t *testing.T) {
	t.Parallel()

	p := model.Program{
		Name:   "psexec",
		Fields: []model.FieldTerms{{Field: "process_name", Terms: []string{"psexec.exe"}}},
	}
	src := FromProgram(p, "lateral-movement", "")
	if src.Filter != "(process_name:psexec.exe)" {
		t.Errorf("Filter = %q", src.Filter)
	}
}

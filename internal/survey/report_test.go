package survey

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/threatops/surveyor/internal/model"
)

func TestReport_EscapesEmbeddedDelimiters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := NewReport(&buf)
	if err != nil {
		t.Fatalf("NewReport: %v", err)
	}

	set := make(model.ResultSet)
	set.Add(model.ProcessRecord{
		Hostname: "WIN-1",
		Username: "NT AUTHORITY\\SYSTEM",
		Path:     `c:\program files\app, inc\run.exe`,
		Cmdline:  "run.exe --arg \"a b\"\n--second-line",
	})
	if err := rep.WriteSource(set, "run.exe", "query"); err != nil {
		t.Fatalf("WriteSource: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][2] != `c:\program files\app, inc\run.exe` {
		t.Errorf("path round-trip = %q", rows[1][2])
	}
	if rows[1][3] != "run.exe --arg \"a b\"\n--second-line" {
		t.Errorf("cmdline round-trip = %q", rows[1][3])
	}
	// Case is preserved for path/cmdline, folded only for host/user.
	if rows[1][0] != "win-1" || rows[1][1] != "nt authority\\system" {
		t.Errorf("host/user = %q/%q, want case-folded", rows[1][0], rows[1][1])
	}
}

func TestReport_SortedWithinSource(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	rep, err := NewReport(&buf)
	if err != nil {
		t.Fatalf("NewReport: %v", err)
	}

	set := make(model.ResultSet)
	set.Add(model.ProcessRecord{Hostname: "bbb", Username: "u", Path: "/p", Cmdline: "c"})
	set.Add(model.ProcessRecord{Hostname: "aaa", Username: "u", Path: "/p", Cmdline: "c"})
	set.Add(model.ProcessRecord{Hostname: "aaa", Username: "u", Path: "/a", Cmdline: "c"})
	if err := rep.WriteSource(set, "x", "query"); err != nil {
		t.Fatalf("WriteSource: %v", err)
	}

	rows, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("re-read csv: %v", err)
	}
	if rows[1][0] != "aaa" || rows[1][2] != "/a" || rows[3][0] != "bbb" {
		t.Errorf("rows not sorted: %v", rows[1:])
	}
	if rep.Rows() != 3 {
		t.Errorf("Rows() = %d, want 3", rep.Rows())
	}
}

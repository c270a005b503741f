package main

import (
	"strings"
	"testing"
)

func TestSurveyOptionsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    surveyOptions
		wantErr string
	}{
		{"query only", surveyOptions{Query: "process_name:x"}, ""},
		{"deffile only", surveyOptions{DefFile: "defs.json"}, ""},
		{"defdir only", surveyOptions{DefDir: "defs/"}, ""},
		{"ioc with type", surveyOptions{IOCFile: "iocs.txt", IOCType: "md5"}, ""},
		{"no mode", surveyOptions{}, "exactly one"},
		{"two modes", surveyOptions{Query: "x", DefFile: "y.json"}, "exactly one"},
		{"ioc without type", surveyOptions{IOCFile: "iocs.txt"}, "requires -ioctype"},
		{"type without ioc", surveyOptions{Query: "x", IOCType: "md5"}, "only valid with -iocfile"},
		{"bad ioc type", surveyOptions{IOCFile: "iocs.txt", IOCType: "sha512"}, "invalid -ioctype"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validate: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestOutputFilename(t *testing.T) {
	t.Parallel()

	if got := (surveyOptions{}).outputFilename(); got != "survey.csv" {
		t.Errorf("default output = %q, want survey.csv", got)
	}
	if got := (surveyOptions{Prefix: "acme"}).outputFilename(); got != "acme-survey.csv" {
		t.Errorf("prefixed output = %q, want acme-survey.csv", got)
	}
}

package cbr

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCredentials(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.response")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	return path
}

func TestLoadProfile(t *testing.T) {
	t.Parallel()

	path := writeCredentials(t, `[default]
url=https://cbserver.example:443/
token=abcdef0123456789
ssl_verify=True

[lab]
url=https://lab.example
token=labtoken
ssl_verify=False
`)

	p, err := LoadProfile(path, "")
	if err != nil {
		t.Fatalf("LoadProfile default: %v", err)
	}
	if p.URL != "https://cbserver.example:443" {
		t.Errorf("URL = %q (trailing slash should be trimmed)", p.URL)
	}
	if p.Token != "abcdef0123456789" {
		t.Errorf("Token = %q", p.Token)
	}
	if !p.SSLVerify {
		t.Error("SSLVerify = false, want true")
	}

	lab, err := LoadProfile(path, "lab")
	if err != nil {
		t.Fatalf("LoadProfile lab: %v", err)
	}
	if lab.SSLVerify {
		t.Error("lab SSLVerify = true, want false")
	}
}

func TestLoadProfile_MissingProfile(t *testing.T) {
	t.Parallel()

	path := writeCredentials(t, "[default]\nurl=https://x\ntoken=t\n")
	if _, err := LoadProfile(path, "nope"); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}

func TestLoadProfile_MissingToken(t *testing.T) {
	t.Parallel()

	path := writeCredentials(t, "[default]\nurl=https://x\n")
	if _, err := LoadProfile(path, ""); err == nil {
		t.Fatal("expected error for missing token")
	}
}

func TestLoadProfile_MissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadProfile(filepath.Join(t.TempDir(), "absent"), ""); err == nil {
		t.Fatal("expected error for missing credentials file")
	}
}

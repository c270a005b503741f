package cbr

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultProfile is the credentials section used when --profile is not given.
const DefaultProfile = "default"

// Profile holds one backend connection entry from a credentials file.
type Profile struct {
	URL       string
	Token     string
	SSLVerify bool
}

// DefaultCredentialsPath returns the conventional credentials location,
// ~/.carbonblack/credentials.response.
func DefaultCredentialsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cbr: finding home directory: %w", err)
	}
	return filepath.Join(home, ".carbonblack", "credentials.response"), nil
}

// LoadProfile reads the named profile from an ini-format credentials
// file. Each section holds url, token and an optional ssl_verify flag.
func LoadProfile(path, name string) (Profile, error) {
	if name == "" {
		name = DefaultProfile
	}
	cfg, err := ini.Load(path)
	if err != nil {
		return Profile{}, fmt.Errorf("cbr: load credentials %s: %w", path, err)
	}
	sec, err := cfg.GetSection(name)
	if err != nil {
		return Profile{}, fmt.Errorf("cbr: credentials profile %q not found in %s", name, path)
	}

	p := Profile{
		URL:       strings.TrimRight(sec.Key("url").String(), "/"),
		Token:     sec.Key("token").String(),
		SSLVerify: sec.Key("ssl_verify").MustBool(true),
	}
	if p.URL == "" || p.Token == "" {
		return Profile{}, fmt.Errorf("cbr: credentials profile %q is missing url or token", name)
	}
	return p, nil
}

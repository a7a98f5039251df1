package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolveDataDirEnvOverride(t *testing.T) {
	t.Setenv("PIECEMEAL_DATA_DIR", "/tmp/piecemeal-test")
	dir, err := resolveDataDir()
	if err != nil {
		t.Fatalf("resolveDataDir() error: %v", err)
	}
	if dir != "/tmp/piecemeal-test" {
		t.Errorf("dir = %q, want the env override", dir)
	}
}

func TestResolveDataDirDefaultsToDotDir(t *testing.T) {
	t.Setenv("PIECEMEAL_DATA_DIR", "")
	dir, err := resolveDataDir()
	if err != nil {
		t.Fatalf("resolveDataDir() error: %v", err)
	}
	if filepath.Base(dir) != ".piecemeal" {
		t.Errorf("dir = %q, want a ~/.piecemeal default", dir)
	}
}

func TestResolveAPIURL(t *testing.T) {
	t.Setenv("PIECEMEAL_API_URL", "")
	if got := resolveAPIURL(); !strings.HasPrefix(got, "https://") {
		t.Errorf("default API URL = %q, want an https default", got)
	}

	t.Setenv("PIECEMEAL_API_URL", "http://localhost:8080")
	if got := resolveAPIURL(); got != "http://localhost:8080" {
		t.Errorf("API URL = %q, want the env override", got)
	}
}

func TestResolveSiteURL(t *testing.T) {
	t.Setenv("PIECEMEAL_SITE_URL", "")
	if got := resolveSiteURL(); got != defaultSiteURL {
		t.Errorf("site URL = %q, want %q", got, defaultSiteURL)
	}

	t.Setenv("PIECEMEAL_SITE_URL", "http://localhost:3000")
	if got := resolveSiteURL(); got != "http://localhost:3000" {
		t.Errorf("site URL = %q, want the env override", got)
	}
}

func TestOpenLoggerCreatesLogFile(t *testing.T) {
	dir := t.TempDir()
	log, closeLog := openLogger(dir)
	log.Info("hello")
	closeLog()

	data, err := os.ReadFile(filepath.Join(dir, "piecemeal.log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing entry: %q", string(data))
	}
}

func TestOpenLoggerUnwritableDirDiscards(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail; the
	// logger must degrade to discard instead of erroring.
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	log, closeLog := openLogger(blocker)
	defer closeLog()
	log.Info("dropped") // must not panic
}

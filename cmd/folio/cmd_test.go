package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "folio ") {
		t.Errorf("output = %q", out)
	}
}

func TestInitThenCheck(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "site")
	if _, err := run(t, "init", dir, "--name", "Osama"); err != nil {
		t.Fatalf("init: %v", err)
	}
	for _, f := range []string{"data.json", "folio.yml"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("missing %s: %v", f, err)
		}
	}

	out, err := run(t, "check", filepath.Join(dir, "data.json"))
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	if !strings.Contains(out, "ok") {
		t.Errorf("check output = %q", out)
	}

	if _, err := run(t, "init", dir); err == nil {
		t.Error("expected init to refuse an existing directory")
	}
}

func TestCheckReportsViolations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"profile": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "check", path)
	if err == nil {
		t.Fatalf("expected violations, got %q", out)
	}
	if !strings.Contains(out, "  - ") {
		t.Errorf("violations not listed: %q", out)
	}
}

package folio

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Addr != ":3000" || cfg.DefaultLang != "ar" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.SessionDuration != time.Hour || cfg.TriggerTaps != 3 || cfg.TriggerWindow != 30*time.Second {
		t.Errorf("admin defaults = %v %d %v", cfg.SessionDuration, cfg.TriggerTaps, cfg.TriggerWindow)
	}
	if cfg.CommitMessage != "Update via Admin Panel" || cfg.ContentPath != "data.json" {
		t.Errorf("sync defaults = %q %q", cfg.CommitMessage, cfg.ContentPath)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	yml := "name: File Site\nsession_secret: s3cret\nsession_duration: 2h\nedit_mode: merge\nbackup_retention: 7\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FOLIO_NAME", "Env Site")
	t.Setenv("FOLIO_COOKIE_SECURE", "true")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Name != "Env Site" {
		t.Errorf("Name = %q, want env override", cfg.Name)
	}
	if cfg.SessionSecret != "s3cret" || cfg.EditMode != "merge" || cfg.BackupRetention != 7 {
		t.Errorf("file values not loaded: %+v", cfg)
	}
	if cfg.SessionDuration != 2*time.Hour {
		t.Errorf("SessionDuration = %v", cfg.SessionDuration)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure not set from env")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.yml")
	if err := os.WriteFile(path, []byte("name: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}

package folio

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/eringen/folio/logger"
	"github.com/eringen/folio/resume"
)

// SiteConfig holds all configuration for a folio site.
type SiteConfig struct {
	Name        string `koanf:"name"`        // Site name (default "Portfolio")
	URL         string `koanf:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `koanf:"description"` // Site description for RSS and meta tags
	Author      string `koanf:"author"`

	Addr         string `koanf:"addr"`          // Listen address (default ":3000")
	DatabasePath string `koanf:"database_path"` // SQLite path (default "data/folio.db")
	StaticDir    string `koanf:"static_dir"`    // default "public"
	LogLevel     string `koanf:"log_level"`

	ContentSource   string        `koanf:"content_source"` // URL or file path of data.json
	ContentTimeout  time.Duration `koanf:"content_timeout"`
	ContentCacheTTL time.Duration `koanf:"content_cache_ttl"` // default 5min
	DefaultLang     string        `koanf:"default_lang"`      // "ar" unless set to "en"

	SessionSecret   string        `koanf:"session_secret"` // Required
	CookieSecure    bool          `koanf:"cookie_secure"`
	SessionDuration time.Duration `koanf:"session_duration"` // default 1h
	TriggerTaps     int           `koanf:"trigger_taps"`     // default 3
	TriggerWindow   time.Duration `koanf:"trigger_window"`   // default 30s

	GitHubAPI       string        `koanf:"github_api"` // default https://api.github.com
	GitHubTimeout   time.Duration `koanf:"github_timeout"`
	ContentPath     string        `koanf:"content_path"` // path inside the repository (default data.json)
	Branch          string        `koanf:"branch"`
	CommitMessage   string        `koanf:"commit_message"`
	EditMode        string        `koanf:"edit_mode"`        // "replace" (default) or "merge"
	BackupRetention int           `koanf:"backup_retention"` // default 20

	ContactEndpoint string `koanf:"contact_endpoint"` // Formspree-style form endpoint; empty disables the form

	ResumeEnabled bool          `koanf:"resume_enabled"`
	ChromePath    string        `koanf:"chrome_path"`
	ResumeTimeout time.Duration `koanf:"resume_timeout"`
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/folio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ContentSource == "" {
		c.ContentSource = "data.json"
	}
	if c.ContentTimeout == 0 {
		c.ContentTimeout = 10 * time.Second
	}
	if c.ContentCacheTTL == 0 {
		c.ContentCacheTTL = 5 * time.Minute
	}
	if c.DefaultLang == "" {
		c.DefaultLang = "ar"
	}
	if c.SessionDuration == 0 {
		c.SessionDuration = time.Hour
	}
	if c.TriggerTaps == 0 {
		c.TriggerTaps = 3
	}
	if c.TriggerWindow == 0 {
		c.TriggerWindow = 30 * time.Second
	}
	if c.GitHubAPI == "" {
		c.GitHubAPI = "https://api.github.com"
	}
	if c.GitHubTimeout == 0 {
		c.GitHubTimeout = 15 * time.Second
	}
	if c.ContentPath == "" {
		c.ContentPath = "data.json"
	}
	if c.CommitMessage == "" {
		c.CommitMessage = "Update via Admin Panel"
	}
	if c.BackupRetention == 0 {
		c.BackupRetention = 20
	}
	if c.ResumeTimeout == 0 {
		c.ResumeTimeout = 60 * time.Second
	}
}

// LoadConfig reads the YAML file at path when it exists, then overlays
// FOLIO_* environment variables (FOLIO_SESSION_SECRET -> session_secret).
func LoadConfig(path string) (SiteConfig, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return SiteConfig{}, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return SiteConfig{}, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("FOLIO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "FOLIO_"))
	}), nil); err != nil {
		return SiteConfig{}, fmt.Errorf("loading env overrides: %w", err)
	}

	var cfg SiteConfig
	if err := k.Unmarshal("", &cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}

// WithLogger replaces the default stdout logger.
func WithLogger(l *logger.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithResumeRenderer replaces the headless Chrome PDF renderer.
func WithResumeRenderer(r resume.Renderer) Option {
	return func(a *App) {
		a.resume = r
	}
}

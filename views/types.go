package views

import (
	"time"

	"github.com/eringen/folio/content"
)

// SiteConfig holds the site-wide settings templates need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
}

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Kind string // success, error, info
	Msg  string
}

// Image is uploaded image metadata listed in the admin image manager.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}

// State is everything a page render depends on. Rendering the same State
// twice produces the same bytes.
type State struct {
	Site    SiteConfig
	Lang    content.Lang
	Theme   string
	Admin   bool
	Doc     *content.Document
	CSRF    string
	Flashes []Flash
	Now     time.Time

	ContactEnabled bool
	ResumeEnabled  bool
}

// T looks up a UI string in the state's language.
func (s State) T(key string) string { return T(s.Lang, key) }

// R resolves a content value in the state's language.
func (s State) R(v content.Text) string { return content.Resolve(v, s.Lang) }

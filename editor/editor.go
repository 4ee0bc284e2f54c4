// Package editor is the schema-driven CRUD engine for a content.Document.
//
// An Engine is bound to one document and to the admin flag of the session
// that owns it. Every mutating call made while the flag is off is a silent
// no-op, so callers never have to special-case anonymous visitors.
package editor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"dario.cat/mergo"

	"github.com/eringen/folio/content"
)

var (
	ErrUnknownSection  = errors.New("unknown section")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrUnknownField    = errors.New("unknown profile field")
)

// ValidationError reports form values that cannot become a record.
type ValidationError struct {
	Section content.Section
	Field   string
	Msg     string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Section, e.Msg)
	}
	return fmt.Sprintf("%s.%s: %s", e.Section, e.Field, e.Msg)
}

// Mode selects what Update does with keys of the old record that the
// section schema does not know about.
type Mode int

const (
	// ModeReplace drops them: the edited record is replaced wholesale.
	ModeReplace Mode = iota
	// ModeMerge carries them over into the new record.
	ModeMerge
)

// ParseMode maps a config value to a Mode, defaulting to ModeReplace.
func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), "merge") {
		return ModeMerge
	}
	return ModeReplace
}

// Engine applies CRUD operations to a document.
type Engine struct {
	doc   *content.Document
	admin bool
	mode  Mode
}

// Option configures an Engine.
type Option func(*Engine)

// WithMode sets the update mode.
func WithMode(m Mode) Option {
	return func(e *Engine) { e.mode = m }
}

// New binds an Engine to doc.
func New(doc *content.Document, admin bool, opts ...Option) *Engine {
	e := &Engine{doc: doc, admin: admin}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Document returns the bound document.
func (e *Engine) Document() *content.Document { return e.doc }

// Create appends a new element built from values to the end of s.
func (e *Engine) Create(s content.Section, values Values) error {
	if !e.admin {
		return nil
	}
	sc, ok := content.SchemaFor(s)
	if !ok {
		return ErrUnknownSection
	}
	if sc.Inline {
		t, err := buildInline(sc, values)
		if err != nil {
			return err
		}
		e.doc.Skills = append(e.doc.Skills, t)
		return nil
	}
	rec, err := buildRecord(sc, values)
	if err != nil {
		return err
	}
	if s == content.SectionCustom {
		e.doc.EnsureCustom()
	}
	list := e.doc.Records(s)
	*list = append(*list, rec)
	return nil
}

// Update replaces the element at index with one built from values.
func (e *Engine) Update(s content.Section, index int, values Values) error {
	if !e.admin {
		return nil
	}
	sc, ok := content.SchemaFor(s)
	if !ok {
		return ErrUnknownSection
	}
	if err := e.checkIndex(s, index); err != nil {
		return err
	}
	if sc.Inline {
		t, err := buildInline(sc, values)
		if err != nil {
			return err
		}
		e.doc.Skills[index] = t
		return nil
	}
	rec, err := buildRecord(sc, values)
	if err != nil {
		return err
	}
	list := *e.doc.Records(s)
	if e.mode == ModeMerge {
		if err := mergo.Merge(&rec, list[index]); err != nil {
			return fmt.Errorf("merge record: %w", err)
		}
	}
	list[index] = rec
	return nil
}

// Delete removes the element at index. Confirmation is the caller's job.
func (e *Engine) Delete(s content.Section, index int) error {
	if !e.admin {
		return nil
	}
	if _, ok := content.SchemaFor(s); !ok {
		return ErrUnknownSection
	}
	if err := e.checkIndex(s, index); err != nil {
		return err
	}
	if s == content.SectionSkills {
		e.doc.Skills = removeAt(e.doc.Skills, index)
		return nil
	}
	list := e.doc.Records(s)
	*list = removeAt(*list, index)
	return nil
}

// Move takes the element at from out of the list and reinserts it at to.
func (e *Engine) Move(s content.Section, from, to int) error {
	if !e.admin {
		return nil
	}
	if _, ok := content.SchemaFor(s); !ok {
		return ErrUnknownSection
	}
	if err := e.checkIndex(s, from); err != nil {
		return err
	}
	if err := e.checkIndex(s, to); err != nil {
		return err
	}
	if s == content.SectionSkills {
		moveItem(e.doc.Skills, from, to)
		return nil
	}
	moveItem(*e.doc.Records(s), from, to)
	return nil
}

// EditProfile is the in-place edit of a profile field: a bilingual value
// gets only its lang side replaced, a scalar is replaced wholesale.
func (e *Engine) EditProfile(f content.ProfileField, lang content.Lang, value string) error {
	if !e.admin {
		return nil
	}
	cur := e.doc.Profile.Get(f)
	if !e.doc.Profile.Set(f, cur.WithSide(lang, value)) {
		return ErrUnknownField
	}
	return nil
}

// SetProfileImage points profile.image at u.
func (e *Engine) SetProfileImage(u string) error {
	if !e.admin {
		return nil
	}
	u = strings.TrimSpace(u)
	if u != "" && !validImageURL(u) {
		return &ValidationError{Field: "image", Msg: "must be an http(s) URL or a site path"}
	}
	e.doc.Profile.Image = content.Scalar(u)
	return nil
}

// SetCustomTitle renames the custom section, creating it if needed. It
// follows the in-place edit rule of EditProfile.
func (e *Engine) SetCustomTitle(lang content.Lang, value string) error {
	if !e.admin {
		return nil
	}
	cs := e.doc.EnsureCustom()
	cs.Title = cs.Title.WithSide(lang, value)
	return nil
}

func (e *Engine) checkIndex(s content.Section, i int) error {
	if i < 0 || i >= e.doc.Len(s) {
		return fmt.Errorf("%s[%d]: %w", s, i, ErrIndexOutOfRange)
	}
	return nil
}

func removeAt[T any](s []T, i int) []T {
	return append(s[:i:i], s[i+1:]...)
}

func moveItem[T any](s []T, from, to int) {
	if from == to {
		return
	}
	item := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = item
}

func validURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func validImageURL(s string) bool {
	return validURL(s) || (strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//"))
}

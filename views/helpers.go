package views

import (
	"context"
	"encoding/json"
	"io"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// PathEscape wraps url.PathEscape for use in templ expressions.
func PathEscape(s string) string {
	return url.PathEscape(s)
}

// AvatarURL is the generated avatar shown when the profile has no image.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=0D8ABC&color=fff&size=200"
}

// ProfileImage returns the profile image or the generated fallback.
func ProfileImage(st State) string {
	if img := st.Doc.Profile.Image.Value(); img != "" {
		return img
	}
	return AvatarURL(st.R(st.Doc.Profile.Name))
}

// PersonJsonLD produces a Schema.org Person block for the profile.
func PersonJsonLD(cfg SiteConfig, doc *content.Document, lang content.Lang) string {
	p := doc.Profile
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     content.Resolve(p.Name, lang),
		"url":      buildURL(cfg.URL),
	}
	if v := content.Resolve(p.Title, lang); v != "" {
		data["jobTitle"] = v
	}
	if v := content.Resolve(p.Summary, lang); v != "" {
		data["description"] = v
	}
	if v := p.Image.Value(); v != "" {
		data["image"] = v
	}
	if v := p.Email.Value(); v != "" {
		data["email"] = "mailto:" + v
	}
	var same []string
	for _, v := range []content.Text{p.LinkedIn, p.GitHub} {
		if s := v.Value(); s != "" {
			same = append(same, s)
		}
	}
	if len(same) > 0 {
		data["sameAs"] = same
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// writer accumulates the first write error so component bodies can be
// written as straight-line code.
type writer struct {
	ctx context.Context
	w   io.Writer
	err error
}

func newWriter(ctx context.Context, w io.Writer) *writer {
	return &writer{ctx: ctx, w: w}
}

func (w *writer) raw(s string) {
	if w.err == nil {
		_, w.err = io.WriteString(w.w, s)
	}
}

func (w *writer) text(s string) { w.raw(templ.EscapeString(s)) }

func (w *writer) attr(name, value string) {
	w.raw(" " + name + "=\"" + templ.EscapeString(value) + "\"")
}

// href writes an href attribute, neutralising unsafe schemes.
func (w *writer) href(u string) {
	w.attr("href", string(templ.URL(u)))
}

func (w *writer) component(c templ.Component) {
	if w.err == nil && c != nil {
		w.err = c.Render(w.ctx, w.w)
	}
}

func (w *writer) hidden(name, value string) {
	w.raw(`<input type="hidden"`)
	w.attr("name", name)
	w.attr("value", value)
	w.raw(">")
}

func (w *writer) csrf(token string) { w.hidden("_csrf", token) }

func itoa(i int) string { return strconv.Itoa(i) }

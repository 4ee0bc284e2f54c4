package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

const resumeCSS = `@page{size:A4;margin:16mm}body{font-family:sans-serif;font-size:11pt;color:#111}` +
	`h1{margin:0}h2{border-bottom:1px solid #999;margin-top:18pt}.muted{color:#555}` +
	`ul.skills{padding:0}ul.skills li{display:inline-block;margin:0 6pt 4pt 0;padding:2pt 6pt;border:1px solid #ccc;border-radius:4pt}`

// Resume is a print-ready standalone document without site chrome or admin
// controls.
func Resume(st State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		doc := st.Doc
		p := doc.Profile
		w.raw(`<!DOCTYPE html><html`)
		w.attr("lang", string(st.Lang))
		w.attr("dir", st.Lang.Dir())
		w.raw(`><head><meta charset="utf-8"><title>`)
		w.text(st.R(p.Name))
		w.raw(`</title><style>` + resumeCSS + `</style></head><body><header><h1>`)
		w.text(st.R(p.Name))
		w.raw(`</h1><p class="muted">`)
		w.text(st.R(p.Title))
		w.raw(`</p><p class="muted" dir="ltr">`)
		contacts := []string{p.Email.Value(), p.LinkedIn.Value(), p.GitHub.Value()}
		first := true
		for _, c := range contacts {
			if c == "" {
				continue
			}
			if !first {
				w.raw(" · ")
			}
			w.text(c)
			first = false
		}
		w.raw(`</p><p>`)
		w.text(st.R(p.Summary))
		w.raw(`</p></header>`)

		if len(doc.Experience) > 0 {
			w.raw(`<h2>`)
			w.text(st.SectionTitle(content.SectionExperience))
			w.raw(`</h2>`)
			for _, r := range doc.Experience {
				w.raw(`<div><strong>`)
				w.text(st.R(r["role"]))
				w.raw(`</strong> · `)
				w.text(st.R(r["company"]))
				w.raw(` <span class="muted">`)
				w.text(st.R(r["period"]))
				w.raw(`</span>`)
				w.component(Markdown(st.R(r["description"])))
				w.raw(`</div>`)
			}
		}
		if len(doc.Skills) > 0 {
			w.raw(`<h2>`)
			w.text(st.SectionTitle(content.SectionSkills))
			w.raw(`</h2><ul class="skills">`)
			for _, s := range doc.Skills {
				w.raw(`<li>`)
				w.text(st.R(s))
				w.raw(`</li>`)
			}
			w.raw(`</ul>`)
		}
		if len(doc.Certificates) > 0 {
			w.raw(`<h2>`)
			w.text(st.SectionTitle(content.SectionCertificates))
			w.raw(`</h2><ul>`)
			for _, r := range doc.Certificates {
				w.raw(`<li>`)
				w.text(st.R(r["name"]))
				w.raw(` <span class="muted">`)
				w.text(st.R(r["issuer"]) + " | " + st.R(r["date"]))
				w.raw(`</span></li>`)
			}
			w.raw(`</ul>`)
		}
		if len(doc.Projects) > 0 {
			w.raw(`<h2>`)
			w.text(st.SectionTitle(content.SectionProjects))
			w.raw(`</h2>`)
			for _, r := range doc.Projects {
				w.raw(`<div><strong>`)
				w.text(st.R(r["title"]))
				w.raw(`</strong>`)
				if link := st.R(r["link"]); link != "" {
					w.raw(` <span class="muted" dir="ltr">`)
					w.text(link)
					w.raw(`</span>`)
				}
				w.component(Markdown(st.R(r["desc"])))
				w.raw(`</div>`)
			}
		}
		if doc.Len(content.SectionCustom) > 0 {
			w.raw(`<h2>`)
			w.text(st.SectionTitle(content.SectionCustom))
			w.raw(`</h2>`)
			for _, r := range doc.Custom.Items {
				w.raw(`<div><strong>`)
				w.text(st.R(r["title"]))
				w.raw(`</strong>`)
				w.component(Markdown(st.R(r["desc"])))
				w.raw(`</div>`)
			}
		}
		w.raw(`</body></html>`)
		return w.err
	})
}

package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// Section renders count items of sec into its container. Each item gets a
// wrapper carrying its index and, for admins, the edit controls. The
// container is always rebuilt from scratch, so rendering is idempotent.
func Section(st State, sec content.Section, count int, item func(i int) templ.Component, wrapperClass string) templ.Component {
	if wrapperClass == "" {
		wrapperClass = "relative group mb-8"
	}
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw("<div")
		w.attr("id", sec.String()+"-container")
		w.attr("data-section", sec.String())
		w.raw(">")
		for i := 0; i < count; i++ {
			w.raw("<div")
			w.attr("class", wrapperClass+" sortable-item")
			w.attr("data-id", itoa(i))
			if st.Admin {
				w.attr("draggable", "true")
			}
			w.raw(">")
			if st.Admin {
				adminButtons(w, st, sec, i, count)
			}
			if sec == content.SectionExperience {
				w.raw(`<div class="timeline-dot"></div>`)
			}
			w.component(item(i))
			w.raw("</div>")
		}
		w.raw("</div>")
		if st.Admin {
			w.raw(`<a class="btn-add"`)
			w.attr("href", "/admin/item/"+sec.String()+"/new/")
			w.raw(">+ ")
			w.text(st.T("btn_add"))
			w.raw("</a>")
		}
		return w.err
	})
}

func adminButtons(w *writer, st State, sec content.Section, i, count int) {
	base := sec.String() + "/" + itoa(i) + "/"
	w.raw(`<div class="admin-element">`)
	w.raw(`<span class="drag-handle"`)
	w.attr("title", st.T("drag"))
	w.raw(`>⠿</span>`)
	if i > 0 {
		moveButton(w, st, sec, i, i-1, "↑", "move_up")
	}
	if i < count-1 {
		moveButton(w, st, sec, i, i+1, "↓", "move_down")
	}
	w.raw(`<a class="btn-edit"`)
	w.attr("href", "/admin/item/"+base)
	w.attr("title", st.T("btn_edit"))
	w.raw(`>✎</a>`)
	w.raw(`<a class="btn-delete"`)
	w.attr("href", "/admin/delete/"+base)
	w.attr("title", st.T("btn_delete"))
	w.raw(`>🗑</a></div>`)
}

func moveButton(w *writer, st State, sec content.Section, from, to int, glyph, key string) {
	w.raw(`<form class="inline" method="post" action="/admin/move/">`)
	w.csrf(st.CSRF)
	w.hidden("section", sec.String())
	w.hidden("from", itoa(from))
	w.hidden("to", itoa(to))
	w.raw(`<button type="submit"`)
	w.attr("title", st.T(key))
	w.raw(">")
	w.text(glyph)
	w.raw(`</button></form>`)
}

// ExperienceItem renders one experience record.
func ExperienceItem(st State, r content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<h3 class="text-xl font-bold">`)
		w.text(st.R(r["role"]))
		w.raw(`</h3><p class="text-primary">`)
		w.text(st.R(r["company"]))
		w.raw(`</p><span class="period">`)
		w.text(st.R(r["period"]))
		w.raw(`</span><div class="description">`)
		w.component(Markdown(st.R(r["description"])))
		w.raw(`</div>`)
		return w.err
	})
}

// SkillItem renders one skill.
func SkillItem(st State, v content.Text) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<span class="font-bold text-sm">`)
		w.text(st.R(v))
		w.raw(`</span>`)
		return w.err
	})
}

// CertificateItem renders one certificate record.
func CertificateItem(st State, r content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div class="cert-icon">🎓</div><div class="w-full"><h4 class="font-bold text-sm">`)
		w.text(st.R(r["name"]))
		w.raw(`</h4><p class="text-xs">`)
		w.text(st.R(r["issuer"]))
		w.raw(` | `)
		w.text(st.R(r["date"]))
		w.raw(`</p></div>`)
		return w.err
	})
}

// ProjectItem renders one project card.
func ProjectItem(st State, r content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div class="project-cover">`)
		if link := st.R(r["link"]); link != "" {
			w.raw(`<a target="_blank" rel="noopener"`)
			w.href(link)
			w.raw(">")
			w.text(st.T("btn_view"))
			w.raw("</a>")
		}
		w.raw(`</div><div class="p-6"><h3 class="text-lg font-bold">`)
		w.text(st.R(r["title"]))
		w.raw(`</h3><div class="description">`)
		w.component(Markdown(st.R(r["desc"])))
		w.raw(`</div></div>`)
		return w.err
	})
}

// CustomItem renders one custom section record.
func CustomItem(st State, r content.Record) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<h3 class="font-bold">`)
		w.text(st.R(r["title"]))
		w.raw(`</h3><div class="description">`)
		w.component(Markdown(st.R(r["desc"])))
		w.raw(`</div>`)
		return w.err
	})
}

var wrapperClasses = map[content.Section]string{
	content.SectionExperience:   "relative group mb-8",
	content.SectionSkills:       "inline-block px-4 py-2 rounded-lg border",
	content.SectionCertificates: "flex items-center gap-4 p-4 rounded-xl border",
	content.SectionProjects:     "rounded-2xl border overflow-hidden flex flex-col",
	content.SectionCustom:       "relative group mb-6",
}

// SectionFor renders sec of the state's document with its item template.
func SectionFor(st State, sec content.Section) templ.Component {
	doc := st.Doc
	var item func(int) templ.Component
	switch sec {
	case content.SectionSkills:
		item = func(i int) templ.Component { return SkillItem(st, doc.Skills[i]) }
	case content.SectionExperience:
		item = func(i int) templ.Component { return ExperienceItem(st, doc.Experience[i]) }
	case content.SectionCertificates:
		item = func(i int) templ.Component { return CertificateItem(st, doc.Certificates[i]) }
	case content.SectionProjects:
		item = func(i int) templ.Component { return ProjectItem(st, doc.Projects[i]) }
	case content.SectionCustom:
		item = func(i int) templ.Component { return CustomItem(st, doc.Custom.Items[i]) }
	}
	return Section(st, sec, doc.Len(sec), item, wrapperClasses[sec])
}

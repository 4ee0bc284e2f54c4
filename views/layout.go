package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Page wraps body in the site chrome: head, navigation, admin toolbar,
// flash notices and footer.
func Page(st State, meta PageMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw("<!DOCTYPE html><html")
		w.attr("lang", string(st.Lang))
		w.attr("dir", st.Lang.Dir())
		if st.Theme == "dark" {
			w.attr("class", "dark")
		}
		w.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		w.raw("<title>")
		w.text(meta.Title)
		w.raw("</title>")
		if meta.Description != "" {
			w.raw(`<meta name="description"`)
			w.attr("content", meta.Description)
			w.raw(">")
		}
		w.raw(`<meta property="og:title"`)
		w.attr("content", meta.Title)
		w.raw(`><meta property="og:type"`)
		w.attr("content", meta.OGType)
		w.raw(`>`)
		if meta.URL != "" {
			w.raw(`<link rel="canonical"`)
			w.attr("href", meta.URL)
			w.raw(`><meta property="og:url"`)
			w.attr("content", meta.URL)
			w.raw(`>`)
		}
		w.raw(`<link rel="alternate" type="application/rss+xml" href="/feed.xml">`)
		w.raw(`<link rel="stylesheet" href="/public/styles.css"></head>`)
		w.raw("<body")
		if st.Admin {
			w.attr("class", "admin-mode")
			w.attr("data-csrf", st.CSRF)
		}
		w.raw(">")

		nav(w, st)
		if st.Admin {
			adminToolbar(w, st)
		}
		flashes(w, st.Flashes)

		w.raw(`<main id="main">`)
		w.component(body)
		w.raw(`</main>`)

		footer(w, st)
		if st.Admin {
			w.raw(sortScript)
		}
		w.raw("</body></html>")
		return w.err
	})
}

// sortScript posts a drag-and-drop reorder to /admin/move/ as the same form
// the arrow buttons submit. Drops across sections are ignored.
const sortScript = `<script>(function(){var src=null;` +
	`document.querySelectorAll("[data-section]>.sortable-item[draggable]").forEach(function(el){` +
	`el.addEventListener("dragstart",function(e){src=el;e.dataTransfer.effectAllowed="move";});` +
	`el.addEventListener("dragover",function(e){if(src&&src.parentNode===el.parentNode){e.preventDefault();}});` +
	`el.addEventListener("drop",function(e){e.preventDefault();` +
	`if(!src||src===el||src.parentNode!==el.parentNode){return;}` +
	`var f=document.createElement("form");f.method="post";f.action="/admin/move/";` +
	`var v={_csrf:document.body.dataset.csrf,section:el.parentNode.dataset.section,from:src.dataset.id,to:el.dataset.id};` +
	`for(var k in v){var i=document.createElement("input");i.type="hidden";i.name=k;i.value=v[k];f.appendChild(i);}` +
	`document.body.appendChild(f);f.submit();});});})();</script>`

func nav(w *writer, st State) {
	w.raw(`<header class="site-nav"><a class="brand" href="/">`)
	w.text(st.Site.Name)
	w.raw(`</a><nav>`)
	for _, l := range [][2]string{
		{"#home", "nav_home"},
		{"#resume", "nav_resume"},
		{"#portfolio", "nav_portfolio"},
		{"#contact", "nav_contact"},
	} {
		w.raw(`<a class="nav-link"`)
		w.attr("href", l[0])
		w.raw(">")
		w.text(st.T(l[1]))
		w.raw("</a>")
	}
	w.raw(`</nav><div class="nav-tools">`)
	w.raw(`<a id="lang-btn" href="/lang/">`)
	w.text(st.T("lang_toggle"))
	w.raw(`</a><a id="theme-btn" href="/theme/"`)
	w.attr("title", st.T("theme_toggle"))
	w.raw(`>`)
	if st.Theme == "dark" {
		w.raw("☀")
	} else {
		w.raw("☾")
	}
	w.raw(`</a></div></header>`)
}

func adminToolbar(w *writer, st State) {
	w.raw(`<div id="admin-toolbar" class="admin-toolbar"><span>`)
	w.text(st.T("admin_mode"))
	w.raw(`</span>`)

	w.raw(`<form method="post" action="/admin/save/">`)
	w.csrf(st.CSRF)
	w.raw(`<button type="submit" class="btn-save">`)
	w.text(st.T("btn_save"))
	w.raw(`</button></form>`)

	w.raw(`<form method="post" action="/admin/restore/">`)
	w.csrf(st.CSRF)
	w.raw(`<button type="submit">`)
	w.text(st.T("btn_restore"))
	w.raw(`</button></form>`)

	w.raw(`<a href="/admin/">`)
	w.text(st.T("btn_profile"))
	w.raw(`</a><a href="/admin/images/">`)
	w.text(st.T("btn_images"))
	w.raw(`</a>`)

	w.raw(`<form method="post" action="/admin/logout/">`)
	w.csrf(st.CSRF)
	w.raw(`<button type="submit">`)
	w.text(st.T("btn_logout"))
	w.raw(`</button></form></div>`)
}

func flashes(w *writer, fs []Flash) {
	if len(fs) == 0 {
		return
	}
	w.raw(`<div class="toasts">`)
	for _, f := range fs {
		w.raw(`<div role="status"`)
		w.attr("class", "toast toast-"+f.Kind)
		w.raw(">")
		w.text(f.Msg)
		w.raw("</div>")
	}
	w.raw(`</div>`)
}

func footer(w *writer, st State) {
	w.raw(`<footer id="footer" class="site-footer"><p>© <span id="year">`)
	w.text(itoa(st.Now.Year()))
	w.raw(`</span> `)
	w.text(st.Site.Name)
	w.raw(`</p>`)
	// Three taps within the trigger window open the login form.
	w.raw(`<a id="secret-trigger" href="/admin/trigger/" rel="nofollow" aria-hidden="true">·</a>`)
	w.raw(`</footer>`)
}

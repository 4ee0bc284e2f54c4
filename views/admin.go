package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/editor"
)

// Login is the repository + token form opened by the footer trigger.
func Login(st State, errKey string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div id="admin-modal" class="modal"><h2>`)
		w.text(st.T("login_title"))
		w.raw(`</h2>`)
		if errKey != "" {
			w.raw(`<p class="error">`)
			w.text(st.T(errKey))
			w.raw(`</p>`)
		}
		w.raw(`<form method="post" action="/admin/login/">`)
		w.csrf(st.CSRF)
		w.raw(`<label>`)
		w.text(st.T("login_repo"))
		w.raw(`<input id="repo-input" name="repo" dir="ltr" autocomplete="off"></label><label>`)
		w.text(st.T("login_token"))
		w.raw(`<input id="token-input" name="token" type="password" dir="ltr" autocomplete="off"></label><button type="submit">`)
		w.text(st.T("btn_login"))
		w.raw(`</button></form></div>`)
		return w.err
	})
}

// Dashboard lists the profile fields for in-place editing in the active
// language, plus the custom section title.
func Dashboard(st State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		p := st.Doc.Profile
		w.raw(`<div class="dashboard"><h2>`)
		w.text(st.T("btn_profile"))
		w.raw(`</h2>`)
		for _, f := range content.ProfileFields {
			v := p.Get(f)
			value := v.Side(st.Lang)
			w.raw(`<form class="profile-field" method="post" action="/admin/profile/">`)
			w.csrf(st.CSRF)
			w.hidden("field", f.Key())
			w.hidden("lang", string(st.Lang))
			w.raw(`<label>`)
			w.text(f.Key())
			if v.IsBilingual() {
				w.text(" (" + string(st.Lang) + ")")
			}
			if f == content.FieldSummary {
				w.raw(`<textarea name="value"`)
				w.attr("dir", st.Lang.Dir())
				w.raw(">")
				w.text(value)
				w.raw(`</textarea>`)
			} else {
				w.raw(`<input name="value"`)
				w.attr("value", value)
				if v.IsBilingual() {
					w.attr("dir", st.Lang.Dir())
				} else {
					w.attr("dir", "ltr")
				}
				w.raw(">")
			}
			w.raw(`</label><button type="submit">`)
			w.text(st.T("btn_save_local"))
			w.raw(`</button></form>`)
		}

		w.raw(`<form class="profile-field" method="post" action="/admin/profile/">`)
		w.csrf(st.CSRF)
		w.hidden("field", "custom_title")
		w.hidden("lang", string(st.Lang))
		w.raw(`<label>`)
		w.text(st.T("sec_custom"))
		w.raw(`<input name="value"`)
		title := ""
		if st.Doc.Custom != nil {
			title = st.Doc.Custom.Title.Side(st.Lang)
		}
		w.attr("value", title)
		w.attr("dir", st.Lang.Dir())
		w.raw(`></label><button type="submit">`)
		w.text(st.T("btn_save_local"))
		w.raw(`</button></form></div>`)
		return w.err
	})
}

// ItemForm renders the generic create/edit form for one section element.
func ItemForm(st State, f editor.Form, errMsg string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div class="modal item-form"><h2>`)
		if f.IsEdit() {
			w.text(st.T("form_edit"))
		} else {
			w.text(st.T("form_new"))
		}
		w.raw(`</h2>`)
		if errMsg != "" {
			w.raw(`<p class="error">`)
			w.text(errMsg)
			w.raw(`</p>`)
		}
		w.raw(`<form method="post"`)
		w.attr("action", "/admin/item/"+f.Section.String()+"/")
		w.raw(`>`)
		w.csrf(st.CSRF)
		w.hidden("index", itoa(f.Index))
		w.raw(`<div class="grid grid-cols-2 gap-2">`)
		for _, in := range f.Inputs {
			w.raw(`<label`)
			if in.Lang == "" {
				w.attr("class", "col-span-2")
			}
			w.raw(`>`)
			w.text(st.R(in.Label))
			if in.Lang != "" {
				w.text(fmt.Sprintf(" (%s)", in.Lang))
			}
			if in.Textarea {
				w.raw(`<textarea`)
				w.attr("name", in.Name)
				w.attr("dir", in.Dir)
				w.raw(`>`)
				w.text(in.Value)
				w.raw(`</textarea>`)
			} else {
				w.raw(`<input`)
				w.attr("name", in.Name)
				w.attr("value", in.Value)
				w.attr("dir", in.Dir)
				w.raw(`>`)
			}
			w.raw(`</label>`)
		}
		w.raw(`</div><button type="submit">`)
		w.text(st.T("btn_save_local"))
		w.raw(`</button><a href="/">`)
		w.text(st.T("btn_cancel"))
		w.raw(`</a></form></div>`)
		return w.err
	})
}

// ConfirmDelete asks before removing an element.
func ConfirmDelete(st State, sec content.Section, index int, label string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div class="modal confirm"><h2>`)
		w.text(st.T("confirm_title"))
		w.raw(`</h2><p>`)
		w.text(label)
		w.raw(`</p><p>`)
		w.text(st.T("confirm_text"))
		w.raw(`</p><form method="post"`)
		w.attr("action", "/admin/delete/"+sec.String()+"/"+itoa(index)+"/")
		w.raw(`>`)
		w.csrf(st.CSRF)
		w.hidden("confirm", "yes")
		w.raw(`<button type="submit" class="btn-danger">`)
		w.text(st.T("btn_confirm"))
		w.raw(`</button><a href="/">`)
		w.text(st.T("btn_cancel"))
		w.raw(`</a></form></div>`)
		return w.err
	})
}

// AdminImages lists uploaded images with upload and delete controls. The
// profile image can be pointed at any of them or at an external URL.
func AdminImages(st State, images []Image) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div id="image-manager"><form method="post" action="/admin/images/upload/" enctype="multipart/form-data">`)
		w.csrf(st.CSRF)
		w.raw(`<input type="file" name="image" accept="image/*"><label><input type="checkbox" name="profile" value="yes" checked> `)
		w.text(st.T("btn_profile"))
		w.raw(`</label><button type="submit">`)
		w.text(st.T("upload"))
		w.raw(`</button></form>`)

		w.raw(`<form method="post" action="/admin/profile/">`)
		w.csrf(st.CSRF)
		w.hidden("field", "image")
		w.raw(`<label>`)
		w.text(st.T("image_url"))
		w.raw(`<input name="value" dir="ltr"`)
		w.attr("value", st.Doc.Profile.Image.Value())
		w.raw(`></label><button type="submit">`)
		w.text(st.T("btn_save_local"))
		w.raw(`</button></form><ul class="images">`)
		for _, img := range images {
			src := "/public/uploads/" + PathEscape(img.Filename)
			w.raw(`<li><img loading="lazy"`)
			w.attr("src", src)
			w.attr("alt", img.OriginalName)
			w.raw(`><span>`)
			w.text(fmt.Sprintf("%s %dx%d", img.Filename, img.Width, img.Height))
			w.raw(`</span><form method="post" action="/admin/profile/">`)
			w.csrf(st.CSRF)
			w.hidden("field", "image")
			w.hidden("value", src)
			w.raw(`<button type="submit">`)
			w.text(st.T("btn_profile"))
			w.raw(`</button></form><button`)
			w.attr("hx-delete", "/admin/images/"+PathEscape(img.Filename)+"/")
			w.attr("hx-headers", `{"X-CSRF-Token": "`+st.CSRF+`"}`)
			w.attr("hx-target", "#image-manager")
			w.attr("hx-swap", "outerHTML")
			w.raw(`>`)
			w.text(st.T("btn_delete"))
			w.raw(`</button></li>`)
		}
		w.raw(`</ul></div>`)
		return w.err
	})
}

// ErrorPage is a minimal body for 404, 500 and load failures.
func ErrorPage(st State, key string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		w.raw(`<div class="error-page"><h1>`)
		w.text(st.T(key))
		w.raw(`</h1><a href="/">`)
		w.text(st.T("back_home"))
		w.raw(`</a></div>`)
		return w.err
	})
}

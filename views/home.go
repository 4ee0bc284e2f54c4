package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/eringen/folio/content"
)

// Home is the single-page portfolio.
func Home(st State) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := newWriter(ctx, out)
		p := st.Doc.Profile

		w.raw(`<script type="application/ld+json">`)
		// json.Marshal escapes <, > and &, so the payload cannot close the element.
		w.raw(PersonJsonLD(st.Site, st.Doc, st.Lang))
		w.raw(`</script>`)

		w.raw(`<section id="home" class="page-section hero"><p id="smart-greeting">`)
		w.text(st.T(GreetingKey(st.Now.Hour())))
		w.raw(`</p><img id="profile-img"`)
		w.attr("src", string(templ.URL(ProfileImage(st))))
		w.attr("alt", st.R(p.Name))
		w.raw(`><h1 data-path="profile.name">`)
		w.text(st.R(p.Name))
		w.raw(`</h1><h2 id="typewriter" data-path="profile.title">`)
		w.text(st.R(p.Title))
		w.raw(`</h2><p data-path="profile.summary">`)
		w.text(st.R(p.Summary))
		w.raw(`</p><div class="socials">`)
		if email := p.Email.Value(); email != "" {
			w.raw(`<a id="email-contact"`)
			w.href("mailto:" + email)
			w.raw(`>✉</a>`)
		}
		if v := p.LinkedIn.Value(); v != "" {
			w.raw(`<a id="social-linkedin" target="_blank" rel="noopener"`)
			w.href(v)
			w.raw(`>in</a>`)
		}
		if v := p.GitHub.Value(); v != "" {
			w.raw(`<a id="social-github" target="_blank" rel="noopener"`)
			w.href(v)
			w.raw(`>gh</a>`)
		}
		w.raw(`</div><div class="hero-actions"><a href="#portfolio" class="btn">`)
		w.text(st.T("btn_projects"))
		w.raw(`</a><a href="#contact" class="btn-outline">`)
		w.text(st.T("btn_contact"))
		w.raw(`</a>`)
		if st.ResumeEnabled {
			w.raw(`<a href="/resume.pdf" class="btn-outline">`)
			w.text(st.T("btn_pdf"))
			w.raw(`</a>`)
		}
		w.raw(`</div></section>`)

		w.raw(`<section id="resume" class="page-section"><h2>`)
		w.text(st.T("sec_resume"))
		w.raw(`</h2>`)
		for _, sec := range []content.Section{content.SectionExperience, content.SectionSkills, content.SectionCertificates} {
			sectionBlock(w, st, sec)
		}
		if st.Doc.Custom != nil || st.Admin {
			sectionBlock(w, st, content.SectionCustom)
		}
		w.raw(`</section>`)

		w.raw(`<section id="portfolio" class="page-section">`)
		sectionBlock(w, st, content.SectionProjects)
		w.raw(`</section>`)

		w.raw(`<section id="contact" class="page-section"><h2>`)
		w.text(st.T("contact_title"))
		w.raw(`</h2>`)
		if st.ContactEnabled {
			contactForm(w, st)
		}
		w.raw(`</section>`)
		return w.err
	})
}

func sectionBlock(w *writer, st State, sec content.Section) {
	w.raw(`<div class="section-block"><h3>`)
	w.text(st.SectionTitle(sec))
	w.raw(`</h3>`)
	w.component(SectionFor(st, sec))
	w.raw(`</div>`)
}

func contactForm(w *writer, st State) {
	w.raw(`<form method="post" action="/contact/" class="contact-form">`)
	w.csrf(st.CSRF)
	w.raw(`<label>`)
	w.text(st.T("contact_name"))
	w.raw(`<input name="name" required></label><label>`)
	w.text(st.T("contact_email"))
	w.raw(`<input type="email" name="email" required dir="ltr"></label><label>`)
	w.text(st.T("contact_msg"))
	w.raw(`<textarea name="message" required></textarea></label><button type="submit">`)
	w.text(st.T("btn_email"))
	w.raw(`</button></form>`)
}

package folio

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

// workspace returns the admin's working copy, opening a fresh one from the
// live document when the session has none (e.g. after a restart).
func (a *App) workspace(c echo.Context) (*Workspace, error) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil, err
	}
	if id, ok := sess.Values[keyWorkspace].(string); ok {
		if ws, ok := a.Workspaces.Get(id); ok {
			return ws, nil
		}
	}
	doc, err := a.Cache.Document(c.Request().Context())
	if err != nil {
		return nil, err
	}
	id := a.Workspaces.Open(doc)
	sess.Values[keyWorkspace] = id
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return nil, err
	}
	ws, _ := a.Workspaces.Get(id)
	return ws, nil
}

// document returns what the request should see: the working copy for an
// admin, the live document for everyone else.
func (a *App) document(c echo.Context) (*content.Document, error) {
	if IsAdmin(c) {
		ws, err := a.workspace(c)
		if err != nil {
			return nil, err
		}
		return ws.Snapshot(), nil
	}
	return a.Cache.Document(c.Request().Context())
}

func (a *App) state(c echo.Context, doc *content.Document) views.State {
	return views.State{
		Site:           a.siteConfig(),
		Lang:           a.lang(c),
		Theme:          theme(c),
		Admin:          IsAdmin(c),
		Doc:            doc,
		CSRF:           CsrfToken(c),
		Flashes:        takeFlashes(c),
		Now:            a.now(),
		ContactEnabled: a.contact != nil,
		ResumeEnabled:  a.resume != nil,
	}
}

func (a *App) pageMeta(st views.State) views.PageMeta {
	title := st.R(st.Doc.Profile.Name)
	if title == "" {
		title = a.Config.Name
	} else if a.Config.Name != "" {
		title += " | " + a.Config.Name
	}
	desc := st.R(st.Doc.Profile.Summary)
	if desc == "" {
		desc = a.Config.Description
	}
	return views.PageMeta{
		Title:       title,
		Description: desc,
		URL:         BuildURL(a.Config.URL),
		OGType:      "profile",
	}
}

func (a *App) handleHome(c echo.Context) error {
	doc, err := a.document(c)
	if err != nil {
		return err
	}
	st := a.state(c, doc)
	return renderPage(c, http.StatusOK, st, a.pageMeta(st), views.Home(st))
}

// handleLang switches the display language. ?to= picks one explicitly;
// otherwise the current language is toggled.
func (a *App) handleLang(c echo.Context) error {
	next := a.lang(c).Other()
	if to := c.QueryParam("to"); to != "" {
		next = content.ParseLang(to)
	}
	a.setPreference(c, langCookie, string(next))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleTheme(c echo.Context) error {
	next := "dark"
	if theme(c) == "dark" {
		next = "light"
	}
	a.setPreference(c, themeCookie, next)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) handleResumePDF(c echo.Context) error {
	if a.resume == nil {
		return echo.ErrNotFound
	}
	doc, err := a.document(c)
	if err != nil {
		return err
	}
	st := a.state(c, doc)
	st.Admin = false

	var html bytes.Buffer
	if err := views.Resume(st).Render(c.Request().Context(), &html); err != nil {
		return err
	}
	pdf, err := a.resume.RenderHTMLToPDF(c.Request().Context(), html.Bytes())
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="resume-`+string(st.Lang)+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdf)
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFeed(c echo.Context) error {
	doc, err := a.Cache.Document(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderRSS(c, doc, a.lang(c))
}

// handleRobots serves robots.txt from the static dir when present.
func (a *App) handleRobots(c echo.Context) error {
	file := filepath.Join(a.Config.StaticDir, "robots.txt")
	if _, err := os.Stat(file); err == nil {
		return c.File(file)
	}
	body := "User-agent: *\nAllow: /\nDisallow: /admin/\nSitemap: " + BuildURL(a.Config.URL, "sitemap.xml") + "\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	st := views.State{Site: a.siteConfig(), Lang: a.lang(c), Theme: theme(c), Now: a.now(), Doc: &content.Document{}}
	meta := views.PageMeta{Title: a.Config.Name, OGType: "website"}

	var le *content.LoadError
	if errors.As(err, &le) {
		a.Log.Error().Err(err).Str("source", le.Source).Msg("content unavailable")
		_ = renderPage(c, http.StatusServiceUnavailable, st, meta, views.ErrorPage(st, "load_failed"))
		return
	}

	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = renderPage(c, http.StatusNotFound, st, meta, views.ErrorPage(st, "not_found"))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error().Err(err).Str("uri", c.Request().RequestURI).Msg("server error")
		_ = renderPage(c, code, st, meta, views.ErrorPage(st, "server_error"))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

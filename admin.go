package folio

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/folio/admin"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/editor"
	"github.com/eringen/folio/publish"
	"github.com/eringen/folio/views"
)

func (a *App) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdmin(c) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return next(c)
	}
}

// handleTrigger counts taps on the hidden footer link. Enough taps inside
// the window unlock the login form.
func (a *App) handleTrigger(c echo.Context) error {
	if IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if !a.triggerLimiter.Allow(c.RealIP()) {
		return echo.NewHTTPError(http.StatusTooManyRequests)
	}
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	count, _ := sess.Values[keyTaps].(int)
	first, _ := sess.Values[keyTapFirst].(int64)
	t := admin.Trigger{Count: count, First: time.Unix(0, first)}

	t, fired := t.Tap(a.now(), a.Config.TriggerTaps, a.Config.TriggerWindow)
	delete(sess.Values, keyTaps)
	delete(sess.Values, keyTapFirst)
	if fired {
		sess.Values[keyUnlocked] = true
	} else {
		sess.Values[keyTaps] = t.Count
		sess.Values[keyTapFirst] = t.First.UnixNano()
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	if fired {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return c.Redirect(http.StatusSeeOther, "/#footer")
}

func (a *App) handleAdmin(c echo.Context) error {
	switch State(c) {
	case admin.Admin:
		doc, err := a.document(c)
		if err != nil {
			return err
		}
		st := a.state(c, doc)
		return renderPage(c, http.StatusOK, st, a.pageMeta(st), views.Dashboard(st))
	case admin.Authenticating:
		return a.renderLogin(c, http.StatusOK, "")
	default:
		return c.Redirect(http.StatusSeeOther, "/")
	}
}

func (a *App) renderLogin(c echo.Context, code int, errKey string) error {
	st := a.state(c, &content.Document{})
	meta := views.PageMeta{Title: st.T("login_title"), OGType: "website"}
	return renderPage(c, code, st, meta, views.Login(st, errKey))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if State(c) != admin.Authenticating {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ip := c.RealIP()
	if !a.loginLimiter.Allow(ip) {
		return a.renderLogin(c, http.StatusTooManyRequests, "login_limited")
	}
	cred, err := admin.Login(c.FormValue("repo"), c.FormValue("token"), a.now())
	if err != nil {
		return a.renderLogin(c, http.StatusUnprocessableEntity, "login_missing")
	}
	a.loginLimiter.Reset(ip)

	doc, err := a.Cache.Document(c.Request().Context())
	if err != nil {
		return err
	}
	if err := setCredential(c, cred, a.Workspaces.Open(doc)); err != nil {
		return err
	}
	a.Log.Info().Str("repo", cred.Repository).Str("ip", ip).Msg("admin login")
	addFlash(c, "success", views.T(a.lang(c), "flash_welcome"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleAdminLogout forgets the credential and the working copy. Backups
// are kept.
func (a *App) handleAdminLogout(c echo.Context) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	a.dropWorkspace(sess)
	wipeCredential(sess)
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (a *App) engine(doc *content.Document) *editor.Engine {
	return editor.New(doc, true, editor.WithMode(a.editMode))
}

func (a *App) renderItemForm(c echo.Context, code int, f editor.Form, errMsg string) error {
	doc, err := a.document(c)
	if err != nil {
		return err
	}
	st := a.state(c, doc)
	return renderPage(c, code, st, a.pageMeta(st), views.ItemForm(st, f, errMsg))
}

func (a *App) handleItemNew(c echo.Context) error {
	sec, ok := sectionParam(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	sc, _ := content.SchemaFor(sec)
	return a.renderItemForm(c, http.StatusOK, editor.BuildForm(sc, -1, nil), "")
}

func (a *App) handleItemEdit(c echo.Context) error {
	sec, ok := sectionParam(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	index, ok := intParam(c.Param("index"))
	if !ok {
		return echo.ErrNotFound
	}
	doc, err := a.document(c)
	if err != nil {
		return err
	}
	f, err := a.engine(doc).Form(sec, index)
	if errors.Is(err, editor.ErrIndexOutOfRange) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	return a.renderItemForm(c, http.StatusOK, f, "")
}

// handleItemSave creates (index -1) or updates one element from the posted
// form. A rejected form is shown again with what was typed.
func (a *App) handleItemSave(c echo.Context) error {
	sec, ok := sectionParam(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	index, ok := intParam(c.FormValue("index"))
	if !ok {
		index = -1
	}
	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	values := editor.ValuesFrom(form)

	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	err = ws.Apply(func(doc *content.Document) error {
		if index < 0 {
			return a.engine(doc).Create(sec, values)
		}
		return a.engine(doc).Update(sec, index, values)
	})

	var ve *editor.ValidationError
	switch {
	case errors.As(err, &ve):
		sc, _ := content.SchemaFor(sec)
		f := editor.BuildForm(sc, index, nil)
		for i := range f.Inputs {
			f.Inputs[i].Value = values[f.Inputs[i].Name]
		}
		return a.renderItemForm(c, http.StatusUnprocessableEntity, f, ve.Error())
	case errors.Is(err, editor.ErrIndexOutOfRange):
		return echo.ErrNotFound
	case err != nil:
		return err
	}
	addFlash(c, "success", views.T(a.lang(c), "flash_updated"))
	return c.Redirect(http.StatusSeeOther, "/#"+sec.String()+"-container")
}

func itemLabel(doc *content.Document, sec content.Section, i int, lang content.Lang) string {
	if sec == content.SectionSkills {
		return content.Resolve(doc.Skills[i], lang)
	}
	sc, _ := content.SchemaFor(sec)
	rec := (*doc.Records(sec))[i]
	return content.Resolve(rec[sc.Fields[0].Key], lang)
}

func (a *App) handleDeleteConfirm(c echo.Context) error {
	sec, ok := sectionParam(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	index, ok := intParam(c.Param("index"))
	if !ok {
		return echo.ErrNotFound
	}
	doc, err := a.document(c)
	if err != nil {
		return err
	}
	if index < 0 || index >= doc.Len(sec) {
		return echo.ErrNotFound
	}
	st := a.state(c, doc)
	label := itemLabel(doc, sec, index, st.Lang)
	return renderPage(c, http.StatusOK, st, a.pageMeta(st), views.ConfirmDelete(st, sec, index, label))
}

// handleDelete removes an element only when the confirmation form was
// submitted; anything else leaves the document untouched.
func (a *App) handleDelete(c echo.Context) error {
	sec, ok := sectionParam(c.Param("section"))
	if !ok {
		return echo.ErrNotFound
	}
	index, ok := intParam(c.Param("index"))
	if !ok {
		return echo.ErrNotFound
	}
	if c.FormValue("confirm") != "yes" {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	err = ws.Apply(func(doc *content.Document) error {
		return a.engine(doc).Delete(sec, index)
	})
	if errors.Is(err, editor.ErrIndexOutOfRange) {
		return echo.ErrNotFound
	}
	if err != nil {
		return err
	}
	addFlash(c, "success", views.T(a.lang(c), "flash_deleted"))
	return c.Redirect(http.StatusSeeOther, "/#"+sec.String()+"-container")
}

func (a *App) handleMove(c echo.Context) error {
	sec, ok := sectionParam(c.FormValue("section"))
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown section")
	}
	from, okFrom := intParam(c.FormValue("from"))
	to, okTo := intParam(c.FormValue("to"))
	if !okFrom || !okTo {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to are required")
	}
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	err = ws.Apply(func(doc *content.Document) error {
		return a.engine(doc).Move(sec, from, to)
	})
	if errors.Is(err, editor.ErrIndexOutOfRange) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/#"+sec.String()+"-container")
}

// handleProfile edits one profile field in place, the profile image or the
// custom section title.
func (a *App) handleProfile(c echo.Context) error {
	field := strings.TrimSpace(c.FormValue("field"))
	value := c.FormValue("value")
	lang := a.lang(c)
	if l := c.FormValue("lang"); l != "" {
		lang = content.ParseLang(l)
	}

	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	err = ws.Apply(func(doc *content.Document) error {
		e := a.engine(doc)
		switch field {
		case "image":
			return e.SetProfileImage(value)
		case "custom_title":
			return e.SetCustomTitle(lang, strings.TrimSpace(value))
		}
		f, ok := content.ParseProfileField(field)
		if !ok {
			return editor.ErrUnknownField
		}
		return e.EditProfile(f, lang, strings.TrimSpace(value))
	})

	var ve *editor.ValidationError
	switch {
	case errors.Is(err, editor.ErrUnknownField):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.As(err, &ve):
		addFlash(c, "error", ve.Error())
	case err != nil:
		return err
	default:
		addFlash(c, "success", views.T(a.lang(c), "flash_updated"))
	}
	return c.Redirect(http.StatusSeeOther, safeRedirect(c.FormValue("next"), "/admin/"))
}

// handleSave pushes the working copy to the repository and, on success,
// makes it the live document.
func (a *App) handleSave(c echo.Context) error {
	cred, ok := Credential(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	doc := ws.Snapshot()
	lang := a.lang(c)

	res, err := a.Syncer.Save(c.Request().Context(), cred, doc)
	var authErr *publish.AuthError
	var conflictErr *publish.ConflictError
	switch {
	case errors.Is(err, publish.ErrSaveInProgress):
		addFlash(c, "error", views.T(lang, "flash_busy"))
	case errors.As(err, &authErr):
		addFlash(c, "error", views.T(lang, "flash_auth")+": "+authErr.Error())
	case errors.As(err, &conflictErr):
		addFlash(c, "error", views.T(lang, "flash_failed")+": "+conflictErr.Error())
	case err != nil:
		a.Log.Error().Err(err).Str("repo", cred.Repository).Msg("save failed")
		addFlash(c, "error", views.T(lang, "flash_failed")+": "+err.Error())
	default:
		a.Cache.Replace(doc)
		a.Log.Info().Str("repo", cred.Repository).Str("commit", res.CommitSHA).Int("bytes", res.Bytes).Msg("saved")
		addFlash(c, "success", views.T(lang, "flash_saved"))
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// handleRestore loads the newest backup into the working copy. Nothing is
// pushed.
func (a *App) handleRestore(c echo.Context) error {
	cred, ok := Credential(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}
	doc, err := a.Syncer.Restore(c.Request().Context(), cred.Repository)
	if errors.Is(err, publish.ErrNoBackup) {
		addFlash(c, "info", views.T(a.lang(c), "flash_nobackup"))
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err != nil {
		return err
	}
	ws, err := a.workspace(c)
	if err != nil {
		return err
	}
	ws.Replace(doc)
	addFlash(c, "success", views.T(a.lang(c), "flash_restored"))
	return c.Redirect(http.StatusSeeOther, "/")
}

// safeRedirect accepts only a same-site absolute path. Browsers fold
// "/\host" into "//host", so backslashes and control characters are out.
func safeRedirect(target, fallback string) string {
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") {
		return fallback
	}
	if strings.ContainsFunc(target, func(r rune) bool { return r == '\\' || r < 0x20 || r == 0x7f }) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return target
}

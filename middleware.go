package folio

import (
	"crypto/sha256"
	"encoding/gob"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/eringen/folio/admin"
	"github.com/eringen/folio/content"
	"github.com/eringen/folio/views"
)

const (
	sessionName = "folio_session"

	keyRepo      = "repo"
	keyToken     = "token"
	keyLoginAt   = "login_at"
	keyWorkspace = "workspace"
	keyUnlocked  = "unlocked"
	keyTaps      = "taps"
	keyTapFirst  = "tap_first"

	ctxState = "folio.state"
	ctxCred  = "folio.credential"

	langCookie  = "lang"
	themeCookie = "theme"
)

func init() {
	gob.Register(views.Flash{})
}

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ev := a.Log.Info()
			if v.Error != nil {
				ev = a.Log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public/") || path == "/resume.pdf"
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'; form-action 'self'",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				path == "/sitemap.xml" || path == "/feed.xml" ||
				path == "/robots.txt" || path == "/resume.pdf"
		},
	}))

	e.Use(cacheControlMiddleware)
	e.Use(a.sessionGuard)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		h := c.Response().Header()
		switch {
		case strings.HasPrefix(path, "/public/"):
			h.Set("Cache-Control", "public, max-age=31536000, immutable")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			h.Set("Cache-Control", "public, max-age=86400")
		default:
			// Pages differ per session (admin controls, flashes, language).
			h.Set("Cache-Control", "private, no-store")
		}
		return next(c)
	}
}

// sessionKeys derives the cookie hash and encryption keys from the secret.
func sessionKeys(secret string) (hashKey, blockKey []byte) {
	h := sha256.Sum256([]byte("folio-hash:" + secret))
	b := sha256.Sum256([]byte("folio-block:" + secret))
	return h[:], b[:]
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore(sessionKeys(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((a.Config.SessionDuration + 12*time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// sessionGuard resolves the admin state once per request. An expired login
// is wiped here, together with its workspace, and the request continues
// anonymously.
func (a *App) sessionGuard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get(sessionName, c)
		if err != nil {
			// Undecodable cookie, e.g. after a secret rotation.
			c.Set(ctxState, admin.Anonymous)
			return next(c)
		}
		cred := credentialFrom(sess)
		unlocked, _ := sess.Values[keyUnlocked].(bool)

		state := admin.Evaluate(cred, unlocked, a.now(), a.Config.SessionDuration)
		if state == admin.Expired {
			a.Log.Info().Str("repo", cred.Repository).Msg("admin session expired")
			a.dropWorkspace(sess)
			wipeCredential(sess)
			sess.AddFlash(views.Flash{Kind: "info", Msg: views.T(a.lang(c), "flash_expired")})
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				return err
			}
			state = admin.Anonymous
		}

		c.Set(ctxState, state)
		if state == admin.Admin {
			c.Set(ctxCred, cred)
		}
		return next(c)
	}
}

func credentialFrom(sess *sessions.Session) admin.Credential {
	repo, _ := sess.Values[keyRepo].(string)
	token, _ := sess.Values[keyToken].(string)
	at, _ := sess.Values[keyLoginAt].(int64)
	return admin.Credential{Repository: repo, Token: token, LoginAt: time.Unix(at, 0)}
}

func wipeCredential(sess *sessions.Session) {
	for _, k := range []string{keyRepo, keyToken, keyLoginAt, keyWorkspace, keyUnlocked, keyTaps, keyTapFirst} {
		delete(sess.Values, k)
	}
}

func (a *App) dropWorkspace(sess *sessions.Session) {
	if id, ok := sess.Values[keyWorkspace].(string); ok {
		a.Workspaces.Drop(id)
	}
}

func setCredential(c echo.Context, cred admin.Credential, workspace string) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	wipeCredential(sess)
	sess.Values[keyRepo] = cred.Repository
	sess.Values[keyToken] = cred.Token
	sess.Values[keyLoginAt] = cred.LoginAt.Unix()
	sess.Values[keyWorkspace] = workspace
	return sess.Save(c.Request(), c.Response())
}

// State returns the admin state resolved for this request.
func State(c echo.Context) admin.State {
	st, _ := c.Get(ctxState).(admin.State)
	return st
}

// IsAdmin reports whether the request belongs to a live admin session.
func IsAdmin(c echo.Context) bool {
	return State(c) == admin.Admin
}

// Credential returns the admin credential of the request, if any.
func Credential(c echo.Context) (admin.Credential, bool) {
	cred, ok := c.Get(ctxCred).(admin.Credential)
	return cred, ok
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func addFlash(c echo.Context, kind, msg string) {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return
	}
	sess.AddFlash(views.Flash{Kind: kind, Msg: msg})
	_ = sess.Save(c.Request(), c.Response())
}

func takeFlashes(c echo.Context) []views.Flash {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nil
	}
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	_ = sess.Save(c.Request(), c.Response())
	out := make([]views.Flash, 0, len(raw))
	for _, f := range raw {
		if fl, ok := f.(views.Flash); ok {
			out = append(out, fl)
		}
	}
	return out
}

// lang returns the visitor's language from the cookie, or the site default.
func (a *App) lang(c echo.Context) content.Lang {
	if ck, err := c.Cookie(langCookie); err == nil && ck.Value != "" {
		return content.ParseLang(ck.Value)
	}
	return content.ParseLang(a.Config.DefaultLang)
}

func theme(c echo.Context) string {
	if ck, err := c.Cookie(themeCookie); err == nil && ck.Value == "dark" {
		return "dark"
	}
	return "light"
}

func (a *App) setPreference(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	})
}

// Package folio serves a bilingual (Arabic/English) portfolio site built
// from a single JSON content document, with Echo and templ.
//
// Visitors get a server-rendered page in their language. The owner unlocks
// an admin mode from the footer, logs in with a GitHub repository and
// token, edits a private working copy of the document, and saves it back to
// the repository through the contents API.
package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/folio/content"
	"github.com/eringen/folio/editor"
	"github.com/eringen/folio/github"
	"github.com/eringen/folio/logger"
	"github.com/eringen/folio/publish"
	"github.com/eringen/folio/resume"
)

// App wires together the content cache, admin workspaces, the sync client,
// handlers and middleware.
type App struct {
	Config     SiteConfig
	Echo       *echo.Echo
	Store      *Store
	Cache      *ContentCache
	Workspaces *Workspaces
	Syncer     *publish.Syncer
	Log        *logger.Logger

	loginLimiter   *Limiter
	triggerLimiter *Limiter
	contactLimiter *Limiter
	resume         resume.Renderer
	contact        *resty.Client
	editMode       editor.Mode
	customRoutes   []func(*App)
	now            func() time.Time
	ready          bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if a.Log == nil {
		a.Log = logger.New(os.Stdout, "folio", logger.ParseLevel(cfg.LogLevel))
	}
	return a
}

// Setup opens the database and builds every component, middleware and
// route. Start and Run call it; tests call it directly and drive a.Echo.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("folio: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath, a.Config.BackupRetention)
	if err != nil {
		return fmt.Errorf("folio: init store: %w", err)
	}
	a.Store = store

	loader := content.NewLoader(a.Config.ContentSource, a.Config.ContentTimeout)
	a.Cache = NewContentCache(loader, a.Config.ContentCacheTTL)
	a.Cache.now = a.now
	a.Cache.onLoad = a.checkContent

	a.Workspaces = NewWorkspaces(a.Config.SessionDuration)
	a.Workspaces.now = a.now
	a.loginLimiter = NewLimiter(5, time.Minute)
	a.triggerLimiter = NewLimiter(30, time.Minute)
	a.contactLimiter = NewLimiter(5, 10*time.Minute)
	a.editMode = editor.ParseMode(a.Config.EditMode)

	gh := github.NewClient(github.Config{
		BaseURL: a.Config.GitHubAPI,
		Timeout: a.Config.GitHubTimeout,
		Branch:  a.Config.Branch,
	})
	a.Syncer = publish.NewSyncer(gh, a.Store,
		publish.WithPath(a.Config.ContentPath),
		publish.WithMessage(a.Config.CommitMessage),
		publish.WithLogger(a.Log.With("component", "publish")),
		publish.WithClock(a.now),
	)

	if a.Config.ContactEndpoint != "" {
		a.contact = newContactClient()
	}
	if a.Config.ResumeEnabled && a.resume == nil {
		a.resume = resume.NewChromedpRenderer(a.Config.ChromePath, a.Config.ResumeTimeout)
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	a.ready = true
	return nil
}

// checkContent logs schema violations of a freshly loaded document. The
// document is served either way.
func (a *App) checkContent(raw []byte) {
	msgs, err := content.Check(raw)
	if err != nil {
		a.Log.Warn().Err(err).Msg("content check failed")
		return
	}
	for _, m := range msgs {
		a.Log.Warn().Str("source", a.Config.ContentSource).Str("violation", m).Msg("content does not match schema")
	}
}

// Start sets up the app and serves until the server stops.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}
	g, ctx := errgroup.WithContext(ctx)
	g.Go(a.Start)
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		a.Log.Info().Msg("shutting down")
		return a.Echo.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	e.GET("/public/styles.css", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(embeddedFS)))))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/resume.pdf", a.handleResumePDF)

	e.GET("/", a.handleHome)
	e.GET("/lang/", a.handleLang)
	e.GET("/theme/", a.handleTheme)
	e.POST("/contact/", a.handleContact)

	e.GET("/admin/trigger/", a.handleTrigger)
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", a.handleAdminLogout)

	g := e.Group("/admin", a.requireAdmin)
	g.GET("/item/:section/new/", a.handleItemNew)
	g.GET("/item/:section/:index/", a.handleItemEdit)
	g.POST("/item/:section/", a.handleItemSave)
	g.GET("/delete/:section/:index/", a.handleDeleteConfirm)
	g.POST("/delete/:section/:index/", a.handleDelete)
	g.POST("/move/", a.handleMove)
	g.POST("/profile/", a.handleProfile)
	g.POST("/save/", a.handleSave)
	g.POST("/restore/", a.handleRestore)
	g.GET("/images/", a.handleImageList)
	g.POST("/images/upload/", a.handleImageUpload)
	g.DELETE("/images/:filename/", a.handleImageDelete)
}

// Close stops background goroutines and closes the database.
func (a *App) Close() error {
	for _, l := range []*Limiter{a.loginLimiter, a.triggerLimiter, a.contactLimiter} {
		if l != nil {
			l.Stop()
		}
	}
	if a.Workspaces != nil {
		a.Workspaces.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// Package worksite serves a personal work site: a CV home page and a blog
// whose posts are built from typed content blocks, with an RSS feed, sitemap
// and an optional authoring API backed by SQLite.
//
// Posts come from a PostSource. By default that is the bundled YAML
// collection; a YAML/JSON file or a SQLite database can be configured
// instead.
package worksite

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/feed"
)

// App is the central application. It wires together the post source,
// caches, handlers, middleware and views.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Log     *logrus.Logger
	Profile content.Profile
	Source  PostSource
	Store   *Store // nil unless DatabasePath is set
	Cache   *PostCache
	Feeds   *FeedCache
	Metrics *Metrics

	loginLimiter *LoginLimiter
	validate     *validator.Validate
	staticDir    string
	ready        bool
}

// New creates an App with the given configuration.
func New(cfg SiteConfig, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:    cfg,
		Echo:      echo.New(),
		staticDir: "public",
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.Log == nil {
		a.Log = NewLogger(cfg.LogLevel)
	}
	return a
}

// NewLogger returns a logrus logger writing JSON at the named level.
// Unknown level names fall back to info.
func NewLogger(level string) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// Setup opens the post source and mounts middleware and routes. Start calls
// it; tests call it directly and drive a.Echo with httptest.
func (a *App) Setup() error {
	if a.ready {
		return nil
	}

	profile, err := LoadProfile(a.Config.ProfileFile)
	if err != nil {
		return fmt.Errorf("worksite: init profile: %w", err)
	}
	a.Profile = profile

	if a.Config.DatabasePath != "" {
		store, err := NewStore(a.Config.DatabasePath)
		if err != nil {
			return fmt.Errorf("worksite: init store: %w", err)
		}
		a.Store = store
	}

	if a.Source == nil {
		switch {
		case a.Store != nil:
			a.Source = a.Store
		default:
			src, err := NewStaticSource(a.Config.PostsFile)
			if err != nil {
				return fmt.Errorf("worksite: init posts: %w", err)
			}
			a.Source = src
		}
	}

	a.Metrics = NewMetrics()
	a.Cache = NewPostCache(a.Source, a.Config.PostCacheTTL)
	a.Feeds = NewFeedCache(feed.Builder{
		Title:       a.Config.FeedTitle,
		Description: a.Config.FeedDescription,
		Language:    a.Config.Language,
	}, a.Config.FeedCacheTTL, a.Metrics)
	a.validate = NewValidator()

	a.setupMiddleware()
	a.setupRoutes()

	a.ready = true
	return nil
}

// Start sets the app up and serves HTTP until the server is shut down.
func (a *App) Start() error {
	if err := a.Setup(); err != nil {
		return err
	}
	a.Log.WithFields(logrus.Fields{
		"addr":  a.Config.Addr,
		"admin": a.loginLimiter != nil,
	}).Info("server starting")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the HTTP server gracefully and releases resources.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Echo.Shutdown(ctx)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.Static("/public", a.staticDir)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/metrics", a.Metrics.Handler())

	e.GET("/rss.xml", a.handleFeed)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog", a.handleIndex)
	e.GET("/blog/:slug", a.handlePost)

	if !a.Config.adminEnabled() {
		if a.Config.DatabasePath != "" {
			a.Log.Warn("admin API disabled: AdminPassword and SessionSecret are required")
		}
		return
	}
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	g := e.Group("/admin", a.adminMiddleware()...)
	g.GET("", a.handleAdmin)
	g.POST("/login", a.handleAdminLogin)
	g.POST("/logout", handleAdminLogout)

	auth := g.Group("", requireAdmin)
	auth.GET("/posts", a.handleAdminPosts)
	auth.GET("/posts/:slug", a.handleAdminPost)
	auth.PUT("/posts/:slug", a.handleAdminSave)
	auth.DELETE("/posts/:slug", a.handleAdminDelete)
	auth.GET("/images", a.handleImageList)
	auth.POST("/images", a.handleImageUpload)
	auth.DELETE("/images/:filename", a.handleImageDelete)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.loginLimiter != nil {
		a.loginLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

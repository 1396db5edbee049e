package worksite

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string // Site name (default "Martin Poole")
	URL         string // Canonical URL used for page metadata and the sitemap (default "http://localhost:3000")
	Description string // Site description for meta tags
	Author      string // Author name for JSON-LD
	Language    string // Content language (default "en-gb")

	FeedTitle       string // RSS channel title
	FeedDescription string // RSS channel description

	Addr         string // Listen address (default ":$PORT" or ":3000")
	PostsFile    string // YAML or JSON post collection; empty uses the bundled posts
	ProfileFile  string // YAML or JSON CV for the home page; empty uses the bundled profile
	DatabasePath string // SQLite path; when set, posts are read from the database and the admin API is enabled

	AdminPassword string // admin login password
	SessionSecret string // session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	PostCacheTTL time.Duration // Post cache TTL (default 5min)
	FeedCacheTTL time.Duration // Rendered feed TTL (default 10min)

	LogLevel string // logrus level name (default "info")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Martin Poole"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Language == "" {
		c.Language = "en-gb"
	}
	if c.Addr == "" {
		c.Addr = ":" + EnvOr("PORT", "3000")
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
	if c.FeedCacheTTL == 0 {
		c.FeedCacheTTL = 10 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// adminEnabled reports whether the authoring API can be mounted.
func (c SiteConfig) adminEnabled() bool {
	return c.DatabasePath != "" && c.AdminPassword != "" && c.SessionSecret != ""
}

// Option configures additional App behavior.
type Option func(*App)

// WithStaticDir sets the directory for static assets and uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithSource replaces the post source chosen from the configuration.
func WithSource(src PostSource) Option {
	return func(a *App) {
		a.Source = src
	}
}

// WithLogger sets the logger. The configured LogLevel is not applied to it.
func WithLogger(l *logrus.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

package worksite

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/feed"
	"github.com/Phonesis/personal-work-site/render"
	"github.com/Phonesis/personal-work-site/views"
)

func (a *App) site() views.Site {
	return views.Site{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Language:    a.Config.Language,
	}
}

// homePostCount is how many recent posts the home page lists.
const homePostCount = 3

func (a *App) handleHome(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	latest := feed.Sort(posts)
	if len(latest) > homePostCount {
		latest = latest[:homePostCount]
	}
	return Render(c, views.Home(views.HomePage{
		Site:    a.site(),
		Profile: a.Profile,
		Latest:  latest,
	}))
}

func (a *App) handleIndex(c echo.Context) error {
	tag := normalizeTag(c.QueryParam("tag"))
	posts, err := a.Cache.ListPosts(tag)
	if err != nil {
		return err
	}
	tags, err := a.Cache.ListTags()
	if err != nil {
		return err
	}
	return Render(c, views.Index(views.IndexPage{
		Site:      a.site(),
		Posts:     posts,
		ActiveTag: tag,
		Tags:      tags,
	}))
}

func (a *App) handlePost(c echo.Context) error {
	slug := c.Param("slug")
	post, err := a.Cache.GetPost(slug)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site()))
		}
		return err
	}
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}

	body := render.RenderBlocks(post.Content, func(b content.Block) {
		typ := content.TypeOf(b)
		if typ == "" {
			typ = "unknown"
		}
		a.Metrics.SkippedBlocks.WithLabelValues(typ).Inc()
		a.Log.WithFields(logrus.Fields{
			"slug": post.Slug,
			"type": typ,
		}).Debug("skipped content block")
	})

	return Render(c, views.Post(views.PostPage{
		Site:        a.site(),
		Post:        post,
		Body:        body,
		ReadingTime: render.ReadingTime(post),
		Related:     views.FilterRelatedPosts(post, posts),
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, err := a.Cache.ListPosts("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, posts)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\nDisallow: /admin\n\nSitemap: " +
		strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	code := http.StatusInternalServerError
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
	}
	if code >= 500 {
		a.Log.WithError(err).WithField("uri", c.Request().RequestURI).Error("server error")
	}
	if strings.HasPrefix(c.Request().URL.Path, "/admin") {
		a.Echo.DefaultHTTPErrorHandler(err, c)
		return
	}
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, views.NotFound(a.site()))
	case code >= 500:
		_ = RenderStatus(c, code, views.ServerError(a.site()))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}

// Render writes a templ component as a 200 HTML response.
func Render(c echo.Context, component templ.Component) error {
	return RenderStatus(c, http.StatusOK, component)
}

// RenderStatus renders the component before writing the status so a failed
// render still reaches the error handler.
func RenderStatus(c echo.Context, status int, component templ.Component) error {
	var buf bytes.Buffer
	if err := component.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

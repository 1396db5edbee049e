package worksite

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/feed"
)

// handleFeed serves the RSS document with links built from the request origin.
// The self link names the route that served it, so /feed.xml points at itself.
func (a *App) handleFeed(c echo.Context) error {
	origin := requestOrigin(c)
	data, err := a.Feeds.Get(origin, c.Path(), func() ([]content.Post, error) {
		return a.Cache.ListPosts("")
	})
	if err != nil {
		return err
	}
	c.Response().Header().Set("Cache-Control", feed.CacheControl)
	return c.Blob(http.StatusOK, feed.ContentType, data)
}

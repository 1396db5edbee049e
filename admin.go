package worksite

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/Phonesis/personal-work-site/content"
)

const maxPostBody = 1 << 20

type adminState struct {
	Authenticated bool   `json:"authenticated"`
	CSRFToken     string `json:"csrfToken"`
}

type loginRequest struct {
	Password string `json:"password" form:"password" validate:"required"`
}

func (a *App) handleAdmin(c echo.Context) error {
	return c.JSON(http.StatusOK, adminState{
		Authenticated: IsAdmin(c),
		CSRFToken:     CsrfToken(c),
	})
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts, try again later")
	}
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := a.validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "password required")
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Config.AdminPassword)) != 1 {
		a.loginLimiter.Record(ip)
		a.Log.WithField("ip", ip).Warn("admin login failed")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid password")
	}
	if err := setAdminSession(c); err != nil {
		return err
	}
	a.Log.WithField("ip", ip).Info("admin login")
	return c.JSON(http.StatusOK, adminState{Authenticated: true, CSRFToken: CsrfToken(c)})
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (a *App) handleAdminPosts(c echo.Context) error {
	posts, err := a.Store.ListPosts()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (a *App) handleAdminPost(c echo.Context) error {
	post, err := a.Store.GetPost(c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// handleAdminSave upserts the post at :slug from a JSON body in the
// authoring format. A body without a slug takes the one from the path.
func (a *App) handleAdminSave(c echo.Context) error {
	slug := c.Param("slug")
	data, err := io.ReadAll(io.LimitReader(c.Request().Body, maxPostBody))
	if err != nil {
		return err
	}
	var post content.Post
	if err := json.Unmarshal(data, &post); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid post JSON: "+err.Error())
	}
	post.Slug = strings.TrimSpace(post.Slug)
	if post.Slug == "" {
		post.Slug = slug
	}
	if post.Slug != slug {
		return echo.NewHTTPError(http.StatusBadRequest, "slug does not match the URL")
	}
	post.Tags = FilterEmpty(post.Tags)

	if err := ValidatePost(a.validate, post); err != nil {
		var perr *PostError
		if errors.As(err, &perr) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]any{
				"message": "invalid post",
				"fields":  perr.Fields,
			})
		}
		return err
	}

	if err := a.Store.SavePost(post); err != nil {
		return err
	}
	a.invalidate()
	a.Log.WithFields(logrus.Fields{"slug": post.Slug, "blocks": len(post.Content)}).Info("post saved")
	return c.JSON(http.StatusOK, post)
}

func (a *App) handleAdminDelete(c echo.Context) error {
	slug := c.Param("slug")
	if err := a.Store.DeletePost(slug); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "post not found")
		}
		return err
	}
	a.invalidate()
	a.Log.WithField("slug", slug).Info("post deleted")
	return c.NoContent(http.StatusNoContent)
}

// invalidate drops cached posts and feeds after a write.
func (a *App) invalidate() {
	a.Cache.Invalidate()
	a.Feeds.Invalidate()
}

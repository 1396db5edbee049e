package worksite

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/feed"
	"github.com/Phonesis/personal-work-site/views"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

// buildSitemap lists the home page, the blog index and every post.
// lastmod is only set for posts whose date parses.
func buildSitemap(site views.Site, posts []content.Post) ([]byte, error) {
	urls := []sitemapURL{
		{Loc: views.PageURL(site)},
		{Loc: views.PageURL(site, "blog")},
	}
	for _, p := range posts {
		u := sitemapURL{Loc: views.PostURL(site, p.Slug)}
		if t, ok := feed.ParseDate(p.Date); ok {
			u.LastMod = t.Format(content.DateLayout)
		}
		urls = append(urls, u)
	}
	out, err := xml.MarshalIndent(sitemapURLSet{XMLNS: sitemapNS, URLs: urls}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func (a *App) renderSitemap(c echo.Context, posts []content.Post) error {
	data, err := buildSitemap(a.site(), posts)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/xml; charset=utf-8", data)
}

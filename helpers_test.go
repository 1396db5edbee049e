package worksite

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phonesis/personal-work-site/content"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  The Power of Playwright's Locator Handler ", "the-power-of-playwright-s-locator-handler"},
		{"already-a-slug", "already-a-slug"},
		{"--Trim--", "trim"},
		{"Go 1.24!", "go-1-24"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, FilterEmpty([]string{" a ", "", "  ", "b"}))
	assert.Nil(t, FilterEmpty(nil))
}

func TestRequestOrigin(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/rss.xml", nil)
	req.Host = "localhost:3000"
	assert.Equal(t, "http://localhost:3000", requestOrigin(e.NewContext(req, httptest.NewRecorder())))

	req = httptest.NewRequest(http.MethodGet, "/rss.xml", nil)
	req.Host = "martinpoole.dev"
	req.Header.Set(echo.HeaderXForwardedProto, "https")
	assert.Equal(t, "https://martinpoole.dev", requestOrigin(e.NewContext(req, httptest.NewRecorder())))
}

func TestValidatePost(t *testing.T) {
	v := NewValidator()
	valid := content.Post{Slug: "a-post", Title: "A post", Date: "2026-02-01", Tags: []string{"Go"}}
	require.NoError(t, ValidatePost(v, valid))

	withCover := valid
	withCover.CoverImage = "https://cdn.example.com/a.png"
	assert.NoError(t, ValidatePost(v, withCover))
	withCover.CoverImage = "/public/uploads/a.jpg"
	assert.NoError(t, ValidatePost(v, withCover))

	tests := map[string]struct {
		mutate func(*content.Post)
		field  string
	}{
		"empty slug":    {func(p *content.Post) { p.Slug = "" }, "slug"},
		"unsafe slug":   {func(p *content.Post) { p.Slug = "A Post" }, "slug"},
		"no title":      {func(p *content.Post) { p.Title = "" }, "title"},
		"display date":  {func(p *content.Post) { p.Date = "February 1, 2026" }, "date"},
		"relative path": {func(p *content.Post) { p.CoverImage = "images/a.png" }, "coverimage"},
		"empty tag":     {func(p *content.Post) { p.Tags = []string{""} }, "tags[0]"},
		"comma tag":     {func(p *content.Post) { p.Tags = []string{"Go", "a,b"} }, "tags[1]"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := ValidatePost(v, p)
			var perr *PostError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Fields, tt.field)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

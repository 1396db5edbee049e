package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/markdown"
	"github.com/Phonesis/personal-work-site/render"
)

var testSite = Site{
	Name:        "Martin Poole",
	URL:         "https://martinpoole.dev",
	Description: "Notes on testing",
	Author:      "Martin Poole",
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func renderDoc(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderString(t, c)))
	require.NoError(t, err)
	return doc
}

func TestInlineLinks(t *testing.T) {
	nodes := markdown.Render("see [the **docs**](https://example.com/a?b=1&c=2) now")
	got := renderString(t, Inline(nodes))
	assert.Equal(t,
		`see <a href="https://example.com/a?b=1&amp;c=2" target="_blank" rel="noopener noreferrer" class="`+linkClass+`">the <strong class="text-white">docs</strong></a> now`,
		got)
}

func TestInlineUnsafeLinkWritesLabel(t *testing.T) {
	tests := []string{
		"[click](javascript:alert(1))",
		"[click](data:text/html,hi)",
		"[click]()",
	}
	for _, input := range tests {
		got := renderString(t, Inline(markdown.Render(input)))
		assert.NotContains(t, got, "<a ", input)
		assert.True(t, strings.HasPrefix(got, "click"), "Inline(%q) = %q", input, got)
	}
}

func TestInlineEscapesText(t *testing.T) {
	got := renderString(t, Inline(markdown.Render(`<script>alert("x")</script> & **<b>**`)))
	assert.Equal(t, `&lt;script&gt;alert(&#34;x&#34;)&lt;/script&gt; &amp; <strong class="text-white">&lt;b&gt;</strong>`, got)
}

func TestBody(t *testing.T) {
	h := 262
	post := content.Post{Content: []content.Block{
		content.Heading{Text: "Intro"},
		content.Paragraph{Text: "Hello **world**"},
		content.Image{Src: "/public/a.png", Alt: "A", Caption: "Caption A"},
		content.Image{Src: "/public/b.png"},
		content.Code{Text: "if a < b && **c** {}"},
		content.List{Items: []string{"one", "[two](/two)"}},
		content.Embed{Kind: content.EmbedLinkedIn, URL: "https://www.linkedin.com/embed/feed/update/1", Height: &h, Caption: "Discuss"},
		content.Callout{Text: "Careful"},
		content.Unknown{Type: "table"},
	}}
	doc := renderDoc(t, Body(render.RenderPost(post)))

	assert.Equal(t, "Intro", doc.Find("h2").Text())
	assert.Equal(t, "world", doc.Find("p strong").Text())
	assert.Equal(t, 3, doc.Find("figure").Length())
	assert.Equal(t, "Caption A", doc.Find("figure").First().Find("figcaption").Text())
	assert.Equal(t, 0, doc.Find("figure").Eq(1).Find("figcaption").Length())
	assert.Equal(t, "if a < b && **c** {}", doc.Find("pre code").Text())
	assert.Equal(t, 2, doc.Find("ul li").Length())

	iframe := doc.Find("iframe")
	require.Equal(t, 1, iframe.Length())
	src, _ := iframe.Attr("src")
	assert.Equal(t, "https://www.linkedin.com/embed/feed/update/1", src)
	height, _ := iframe.Attr("height")
	assert.Equal(t, "262", height)

	assert.Equal(t, "Careful", doc.Find("aside.callout").Text())
}

func TestIndex(t *testing.T) {
	posts := []content.Post{
		{Slug: "b", Title: "B & co", Excerpt: "Second", Date: "2025-01-01", Tags: []string{"Go", "Web"}, CoverImage: "/public/b.png"},
		{Slug: "a", Title: "A", Excerpt: "First", Date: "2026-02-01", FormattedDate: "February 1st, 2026"},
	}
	doc := renderDoc(t, Index(IndexPage{Site: testSite, Posts: posts, Tags: []string{"go", "web"}, ActiveTag: "go"}))

	cards := doc.Find("article.post-card")
	require.Equal(t, 2, cards.Length())
	assert.Equal(t, "B & co", cards.First().Find("h3").Text())
	assert.Equal(t, "January 1, 2025", cards.First().Find("time").Text())
	assert.Equal(t, "Go", cards.First().Find("span.tag").Text())
	assert.Equal(t, "February 1st, 2026", cards.Eq(1).Find("time").Text())

	href, _ := doc.Find("a.group").First().Attr("href")
	assert.Equal(t, "/blog/b", href)

	tagHref, _ := doc.Find("nav.tags a").Eq(1).Attr("href")
	assert.Equal(t, "/blog?tag=go", tagHref)

	canonical, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	assert.Equal(t, "https://martinpoole.dev/blog", canonical)
	rss, _ := doc.Find(`link[type="application/rss+xml"]`).Attr("href")
	assert.Equal(t, "/rss.xml", rss)
	lang, _ := doc.Find("html").Attr("lang")
	assert.Equal(t, "en-gb", lang)
}

func TestIndexEmpty(t *testing.T) {
	got := renderString(t, Index(IndexPage{Site: testSite}))
	assert.Contains(t, got, "No blog posts yet")
}

func TestPost(t *testing.T) {
	post := content.Post{
		Slug:              "playwright-locator-handler",
		Title:             "Locator Handler",
		Excerpt:           "Popups",
		Date:              "2026-02-01",
		FormattedDate:     "February 1, 2026",
		CoverImage:        "/public/blog/cover.png",
		CoverImageCaption: "Cover caption",
		Tags:              []string{"Playwright"},
		Content:           []content.Block{content.Paragraph{Text: "Body text"}},
	}
	page := PostPage{
		Site:        testSite,
		Post:        post,
		Body:        render.RenderPost(post),
		ReadingTime: render.ReadingTime(post),
		Related:     []content.Post{{Slug: "other", Title: "Other"}},
	}
	doc := renderDoc(t, Post(page))

	assert.Equal(t, "Locator Handler", doc.Find("article h1").Text())
	assert.Equal(t, "1 min read", doc.Find(".reading-time").Text())
	assert.Equal(t, "Cover caption", doc.Find("figure.cover figcaption").Text())
	assert.Equal(t, "Body text", doc.Find(".prose p").Text())
	assert.Equal(t, "Other", doc.Find("section.related a").Text())

	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc.Find(`script[type="application/ld+json"]`).Text()), &ld))
	assert.Equal(t, "BlogPosting", ld["@type"])
	assert.Equal(t, "https://martinpoole.dev/blog/playwright-locator-handler", ld["url"])
	assert.Equal(t, "https://martinpoole.dev/public/blog/cover.png", ld["image"])

	og, _ := doc.Find(`meta[property="og:image"]`).Attr("content")
	assert.Equal(t, "https://martinpoole.dev/public/blog/cover.png", og)
}

func TestPostExcerptMarkup(t *testing.T) {
	post := content.Post{
		Slug:    "handler",
		Title:   "Handler",
		Excerpt: "Dismiss **popups** with [locators](https://playwright.dev)",
		Date:    "2026-02-01",
	}
	doc := renderDoc(t, Post(PostPage{Site: testSite, Post: post}))

	assert.Equal(t, "popups", doc.Find("p.excerpt strong").Text())
	href, _ := doc.Find("p.excerpt a").Attr("href")
	assert.Equal(t, "https://playwright.dev", href)

	want := "Dismiss popups with locators"
	desc, _ := doc.Find(`meta[name="description"]`).Attr("content")
	assert.Equal(t, want, desc)

	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc.Find(`script[type="application/ld+json"]`).Text()), &ld))
	assert.Equal(t, want, ld["description"])

	card := renderDoc(t, Index(IndexPage{Site: testSite, Posts: []content.Post{post}}))
	assert.Equal(t, want, card.Find(".post-card p").Text())
}

func TestErrorPages(t *testing.T) {
	assert.Contains(t, renderString(t, NotFound(testSite)), "Page not found")
	assert.Contains(t, renderString(t, ServerError(testSite)), "Something went wrong")
}

func TestFilterRelatedPosts(t *testing.T) {
	current := content.Post{Slug: "a", Tags: []string{"Go "}}
	posts := []content.Post{
		current,
		{Slug: "b", Tags: []string{"go"}},
		{Slug: "c", Tags: []string{"rust"}},
	}
	related := FilterRelatedPosts(current, posts)
	require.Len(t, related, 1)
	assert.Equal(t, "b", related[0].Slug)
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/public/a.png", "/public/a.png"},
		{"#top", "#top"},
		{"https://x.dev/?a=1&b=2", "https://x.dev/?a=1&amp;b=2"},
		{"mailto:me@x.dev", "mailto:me@x.dev"},
		{"javascript:alert(1)", ""},
		{"relative/path", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeURL(tt.in), "safeURL(%q)", tt.in)
	}
}

func testProfile() content.Profile {
	return content.Profile{
		Name:     "Martin Poole",
		Headline: "Lead Quality Engineer",
		Email:    "martin@example.com",
		LinkedIn: "https://www.linkedin.com/in/martin",
		About:    []string{"Builds <test> frameworks."},
		Featured: &content.Featured{Text: "New post", URL: "https://www.linkedin.com/feed/update/1"},
		Skills: []content.SkillGroup{
			{Title: "Programming Languages", Skills: []content.Skill{{Name: "TypeScript", Level: 9}, {Name: "Go", Level: 14}}},
			{Title: "Testing Tools/Libraries", Skills: []content.Skill{{Name: "Playwright"}}},
		},
		Projects: []content.Project{{Name: "MySU", Period: "2024", Role: "Rewrote the framework"}},
		Experience: []content.Experience{
			{
				Title:            "Lead Quality Engineer",
				Company:          "Legal & General",
				Period:           "October 2023 – Present",
				Location:         "Hove – UK",
				Skills:           []string{"Playwright", "Cucumber"},
				Responsibilities: []string{"Leading workstreams", "Running training"},
			},
			{Title: "SDET", Company: "Matillion"},
		},
		Education:      []content.Education{{Title: "LL.B.", Institution: "University of Sussex"}},
		Certifications: []content.Certification{{Title: "ISTQB CTAL-TAE", Issued: "September 2024"}},
		Interests:      []string{"Bouldering"},
	}
}

func TestHome(t *testing.T) {
	latest := []content.Post{{Slug: "a", Title: "A", Excerpt: "**Bold** start", Date: "2026-02-01"}}
	doc := renderDoc(t, Home(HomePage{Site: testSite, Profile: testProfile(), Latest: latest}))

	assert.Equal(t, "Martin Poole | Lead Quality Engineer", doc.Find("title").Text())
	assert.Equal(t, "https://martinpoole.dev/", doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
	assert.Equal(t, "mailto:martin@example.com", doc.Find("p.contact a").First().AttrOr("href", ""))
	assert.Equal(t, "About Martin", doc.Find("#about h2").Text())
	assert.Equal(t, "Builds <test> frameworks.", doc.Find("#about p").Text())
	assert.Equal(t, "_blank", doc.Find("#featured a").AttrOr("target", ""))

	groups := doc.Find("#skills .skill-group")
	require.Equal(t, 2, groups.Length())
	assert.Equal(t, "Programming Languages", groups.First().Find("h3").Text())
	bars := groups.First().Find(`[role="progressbar"]`)
	require.Equal(t, 2, bars.Length())
	assert.Equal(t, "9", bars.First().AttrOr("aria-valuenow", ""))
	assert.Equal(t, "10", bars.Last().AttrOr("aria-valuenow", ""), "levels are capped")
	assert.Equal(t, "width: 100%", bars.Last().Children().AttrOr("style", ""))
	assert.Zero(t, groups.Last().Find(`[role="progressbar"]`).Length(), "unrated skills have no bar")

	jobs := doc.Find("#experience article.experience")
	require.Equal(t, 2, jobs.Length())
	first := jobs.First()
	assert.Equal(t, "Lead Quality Engineer", first.Find("h3").Text())
	assert.Equal(t, "Legal & General", first.Find(".company").Text())
	assert.Equal(t, "October 2023 – Present", first.Find(".period").Text())
	assert.Equal(t, "Hove – UK", first.Find(".location").Text())
	assert.Equal(t, 2, first.Find(".skills span").Length())
	assert.Equal(t, []string{"Leading workstreams", "Running training"}, first.Find("li").Map(func(_ int, s *goquery.Selection) string { return s.Text() }))
	assert.Zero(t, jobs.Last().Find(".period").Length())

	assert.Equal(t, "MySU (2024)", doc.Find("#projects h3").Text())
	assert.Equal(t, "ISTQB CTAL-TAE", doc.Find("#education .certifications h4").Text())
	assert.Equal(t, "Bouldering", doc.Find("#interests li").Text())
	assert.Equal(t, "Bold start", doc.Find("#latest .post-card p").Text())

	var ld map[string]any
	require.NoError(t, json.Unmarshal([]byte(doc.Find(`script[type="application/ld+json"]`).Text()), &ld))
	assert.Equal(t, "Person", ld["@type"])
	assert.Equal(t, "Lead Quality Engineer", ld["jobTitle"])
}

func TestHomeEmptyProfile(t *testing.T) {
	doc := renderDoc(t, Home(HomePage{Site: testSite, Profile: content.Profile{Name: "Ada"}}))
	assert.Equal(t, "Ada", doc.Find("section.profile h1").Text())
	for _, id := range []string{"#about", "#featured", "#skills", "#projects", "#experience", "#education", "#interests", "#latest"} {
		assert.Zero(t, doc.Find(id).Length(), id)
	}
}

package views

import (
	"bytes"
	"context"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/markdown"
)

// page wraps body in the document chrome shared by every page.
func page(site Site, meta PageMeta, body func(buf *bytes.Buffer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var buf bytes.Buffer
		writeHead(&buf, site, meta)
		buf.WriteString(`<body class="min-h-screen bg-gray-900 text-white">`)
		buf.WriteString(`<header class="sticky top-0 z-50 w-full bg-gray-900/95 border-b border-gray-800"><nav class="container mx-auto px-4 py-4 flex items-center gap-4">`)
		buf.WriteString(`<a href="/" class="text-emerald-400 font-semibold">` + html.EscapeString(site.Name) + `</a>`)
		buf.WriteString(`<span class="text-gray-600">/</span><a href="/blog" class="text-emerald-400 font-semibold">Blog</a>`)
		buf.WriteString(`<a href="/rss.xml" class="ml-auto text-gray-400">RSS</a>`)
		buf.WriteString(`</nav></header>`)
		buf.WriteString(`<main class="container mx-auto px-4 py-12 max-w-4xl">`)
		body(&buf)
		buf.WriteString(`</main>`)
		buf.WriteString(`<footer class="border-t border-gray-800 py-8 mt-12"><div class="container mx-auto px-4 text-center text-gray-400">`)
		if site.Author != "" {
			buf.WriteString(html.EscapeString(site.Author))
		}
		buf.WriteString(`</div></footer></body></html>`)
		_, err := w.Write(buf.Bytes())
		return err
	})
}

func writeHead(buf *bytes.Buffer, site Site, meta PageMeta) {
	lang := site.Language
	if lang == "" {
		lang = "en-gb"
	}
	title := meta.Title
	if title == "" {
		title = site.Name
	}
	buf.WriteString(`<!DOCTYPE html><html lang="` + html.EscapeString(lang) + `"><head><meta charset="utf-8"/>`)
	buf.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1"/>`)
	buf.WriteString(`<title>` + html.EscapeString(title) + `</title>`)
	if meta.Description != "" {
		buf.WriteString(`<meta name="description" content="` + html.EscapeString(meta.Description) + `"/>`)
		buf.WriteString(`<meta property="og:description" content="` + html.EscapeString(meta.Description) + `"/>`)
	}
	buf.WriteString(`<meta property="og:title" content="` + html.EscapeString(title) + `"/>`)
	if meta.OGType != "" {
		buf.WriteString(`<meta property="og:type" content="` + html.EscapeString(meta.OGType) + `"/>`)
	}
	if meta.URL != "" {
		buf.WriteString(`<link rel="canonical" href="` + html.EscapeString(meta.URL) + `"/>`)
		buf.WriteString(`<meta property="og:url" content="` + html.EscapeString(meta.URL) + `"/>`)
	}
	if meta.Image != "" {
		buf.WriteString(`<meta property="og:image" content="` + html.EscapeString(meta.Image) + `"/>`)
	}
	buf.WriteString(`<link rel="alternate" type="application/rss+xml" title="` + html.EscapeString(site.Name) + `" href="/rss.xml"/>`)
	if meta.JSONLD != "" {
		// json.Marshal escapes <, > and &, so the payload cannot close the script element.
		buf.WriteString(`<script type="application/ld+json">` + meta.JSONLD + `</script>`)
	}
	buf.WriteString(`</head>`)
}

// Index renders the blog listing, optionally filtered by tag.
func Index(p IndexPage) templ.Component {
	meta := PageMeta{
		Title:       "Blog | " + p.Site.Name,
		Description: p.Site.Description,
		URL:         buildURL(p.Site.URL, "blog"),
		OGType:      "website",
		JSONLD:      WebsiteJsonLD(p.Site),
	}
	return page(p.Site, meta, func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="text-center mb-12"><h1 class="text-4xl md:text-5xl font-bold mb-4">Blog</h1>`)
		if p.Site.Description != "" {
			buf.WriteString(`<p class="text-xl text-gray-400 max-w-2xl mx-auto">` + html.EscapeString(p.Site.Description) + `</p>`)
		}
		buf.WriteString(`</section>`)

		if len(p.Tags) > 0 {
			buf.WriteString(`<nav class="tags flex flex-wrap gap-2 mb-8">`)
			buf.WriteString(`<a href="/blog" class="` + TagClass(p.ActiveTag == "") + `">All</a>`)
			for _, t := range p.Tags {
				buf.WriteString(`<a href="` + html.EscapeString(TagURL(t)) + `" class="` + TagClass(t == p.ActiveTag) + `">` + html.EscapeString(t) + `</a>`)
			}
			buf.WriteString(`</nav>`)
		}

		if len(p.Posts) == 0 {
			buf.WriteString(`<div class="text-center py-20"><p class="text-gray-400 text-lg">No blog posts yet. Check back soon!</p></div>`)
			return
		}
		buf.WriteString(`<div class="posts grid gap-8 md:grid-cols-2 lg:grid-cols-3">`)
		for _, post := range p.Posts {
			writeCard(buf, post)
		}
		buf.WriteString(`</div>`)
	})
}

func writeCard(buf *bytes.Buffer, post content.Post) {
	href := "/blog/" + html.EscapeString(PathEscape(post.Slug))
	buf.WriteString(`<a href="` + href + `" class="group"><article class="post-card bg-gray-800 rounded-xl overflow-hidden h-full flex flex-col">`)
	if src := safeURL(post.CoverImage); src != "" {
		buf.WriteString(`<img src="` + src + `" alt="` + html.EscapeString(post.Title) + `" loading="lazy" class="h-48 w-full object-cover"/>`)
	}
	buf.WriteString(`<div class="p-6 flex-1 flex flex-col"><div class="flex items-center gap-2 text-sm text-gray-400 mb-3">`)
	buf.WriteString(`<time datetime="` + html.EscapeString(post.Date) + `">` + html.EscapeString(post.DisplayDate()) + `</time>`)
	if len(post.Tags) > 0 {
		buf.WriteString(`<span>•</span><span class="tag text-emerald-400">` + html.EscapeString(post.Tags[0]) + `</span>`)
	}
	buf.WriteString(`</div>`)
	buf.WriteString(`<h3 class="text-xl font-bold mb-2">` + html.EscapeString(post.Title) + `</h3>`)
	buf.WriteString(`<p class="text-gray-400 flex-1">` + html.EscapeString(PlainExcerpt(post)) + `</p>`)
	buf.WriteString(`<span class="mt-4 text-emerald-400 font-semibold">Read more</span>`)
	buf.WriteString(`</div></article></a>`)
}

// Post renders a single article.
func Post(p PostPage) templ.Component {
	post := p.Post
	meta := PageMeta{
		Title:       post.Title + " | " + p.Site.Name,
		Description: PlainExcerpt(post),
		URL:         PostURL(p.Site, post.Slug),
		OGType:      "article",
		JSONLD:      BlogPostingJsonLD(p.Site, post),
	}
	if post.CoverImage != "" {
		meta.Image = absURL(p.Site, post.CoverImage)
	}
	return page(p.Site, meta, func(buf *bytes.Buffer) {
		buf.WriteString(`<article class="post"><header class="mb-8">`)
		buf.WriteString(`<div class="flex flex-col sm:flex-row sm:items-center gap-2 text-sm text-gray-400 mb-4">`)
		buf.WriteString(`<time datetime="` + html.EscapeString(post.Date) + `">` + html.EscapeString(post.DisplayDate()) + `</time>`)
		buf.WriteString(`<span>•</span><span class="reading-time">` + html.EscapeString(p.ReadingTime) + `</span>`)
		if len(post.Tags) > 0 {
			buf.WriteString(`<div class="tags flex flex-wrap gap-2">`)
			for _, t := range post.Tags {
				buf.WriteString(`<a href="` + html.EscapeString(TagURL(t)) + `" class="` + TagClass(false) + `">` + html.EscapeString(t) + `</a>`)
			}
			buf.WriteString(`</div>`)
		}
		buf.WriteString(`</div>`)
		buf.WriteString(`<h1 class="text-4xl md:text-5xl font-bold mb-4">` + html.EscapeString(post.Title) + `</h1>`)
		if post.Excerpt != "" {
			buf.WriteString(`<p class="excerpt text-xl text-gray-400">`)
			writeInline(buf, markdown.Render(post.Excerpt))
			buf.WriteString(`</p>`)
		}
		buf.WriteString(`</header>`)

		if src := safeURL(post.CoverImage); src != "" {
			buf.WriteString(`<figure class="cover mb-8"><img src="` + src + `" alt="` + html.EscapeString(post.Title) + `" fetchpriority="high" class="rounded-xl w-full object-cover"/>`)
			if post.CoverImageCaption != "" {
				buf.WriteString(`<figcaption class="text-center text-gray-400 mt-3 text-sm">` + html.EscapeString(post.CoverImageCaption) + `</figcaption>`)
			}
			buf.WriteString(`</figure>`)
		}

		buf.WriteString(`<div class="prose prose-lg prose-invert max-w-none">`)
		writeBody(buf, p.Body)
		buf.WriteString(`</div></article>`)

		if len(p.Related) > 0 {
			buf.WriteString(`<section class="related mt-12 pt-8 border-t border-gray-800"><h2 class="text-2xl font-bold mb-4">Related posts</h2><ul>`)
			for _, r := range p.Related {
				buf.WriteString(`<li><a href="/blog/` + html.EscapeString(PathEscape(r.Slug)) + `" class="` + linkClass + `">` + html.EscapeString(r.Title) + `</a></li>`)
			}
			buf.WriteString(`</ul></section>`)
		}
		buf.WriteString(`<div class="mt-12 pt-8 border-t border-gray-800"><a href="/blog" class="text-emerald-400 font-semibold">Back to Blog</a></div>`)
	})
}

// NotFound renders the 404 page.
func NotFound(site Site) templ.Component {
	return page(site, PageMeta{Title: "Not found | " + site.Name}, func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="error text-center py-20"><h1 class="text-4xl font-bold mb-4">Page not found</h1>`)
		buf.WriteString(`<p class="text-gray-400">The page you are looking for does not exist.</p>`)
		buf.WriteString(`<p class="mt-6"><a href="/blog" class="` + linkClass + `">Browse the blog</a></p></section>`)
	})
}

// ServerError renders the 500 page.
func ServerError(site Site) templ.Component {
	return page(site, PageMeta{Title: "Error | " + site.Name}, func(buf *bytes.Buffer) {
		buf.WriteString(`<section class="error text-center py-20"><h1 class="text-4xl font-bold mb-4">Something went wrong</h1>`)
		buf.WriteString(`<p class="text-gray-400">Please try again in a moment.</p></section>`)
	})
}

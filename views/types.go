package views

import (
	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/render"
)

// Site holds site-wide settings. Every handler passes this to templates so
// nothing is hardcoded.
type Site struct {
	Name        string
	URL         string // canonical origin, used for JSON-LD and og:url
	Description string
	Author      string
	Language    string // html lang attribute
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
	JSONLD      string
}

// HomePage is the CV landing page.
type HomePage struct {
	Site    Site
	Profile content.Profile
	Latest  []content.Post
}

// IndexPage is the blog listing.
type IndexPage struct {
	Site      Site
	Posts     []content.Post
	ActiveTag string
	Tags      []string
}

// PostPage is a single article with its body already rendered.
type PostPage struct {
	Site        Site
	Post        content.Post
	Body        []render.DisplayNode
	ReadingTime string
	Related     []content.Post
}

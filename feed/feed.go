// Package feed builds the RSS 2.0 document for the blog.
//
// Building never fails on bad post data: posts with unparsable dates are
// listed last and stamped with the build time, missing tags produce no
// categories, and an empty collection yields a channel without items.
package feed

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/Phonesis/personal-work-site/content"
)

const (
	// ContentType is the media type the feed is served with.
	ContentType = "application/rss+xml; charset=utf-8"
	// CacheControl is the caching hint sent with the feed.
	CacheControl = "public, s-maxage=600, stale-while-revalidate=300"
)

// Defaults used when a Builder field is empty.
const (
	DefaultTitle       = "Martin Poole Blog"
	DefaultDescription = "Thoughts, insights, and updates on my latest work projects and ideas I've been working on."
	DefaultLanguage    = "en-gb"
	DefaultSelfPath    = "/rss.xml"
)

const atomNS = "http://www.w3.org/2005/Atom"

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language"`
	LastBuildDate string      `xml:"lastBuildDate"`
	AtomLink      rssAtomLink `xml:"atom:link"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssItem struct {
	Title       string   `xml:"title"`
	Link        string   `xml:"link"`
	GUID        rssGUID  `xml:"guid"`
	PubDate     string   `xml:"pubDate"`
	Description string   `xml:"description"`
	Categories  []string `xml:"category"`
}

type rssGUID struct {
	IsPermaLink bool   `xml:"isPermaLink,attr"`
	Value       string `xml:",chardata"`
}

// Builder holds the channel metadata. The zero value is ready to use.
type Builder struct {
	Title       string
	Description string
	Language    string
	SelfPath    string           // path of the feed under the base URL
	Now         func() time.Time // clock for date fallbacks, time.Now when nil
}

// Build returns the feed document for posts, with every link made absolute
// against baseURL. posts is not modified.
func (b Builder) Build(baseURL string, posts []content.Post) ([]byte, error) {
	base := strings.TrimRight(baseURL, "/")
	now := b.now()

	sorted := Sort(posts)
	items := make([]rssItem, 0, len(sorted))
	for _, p := range sorted {
		link := Permalink(base, p.Slug)
		pub, ok := ParseDate(p.Date)
		if !ok {
			pub = now
		}
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        link,
			GUID:        rssGUID{IsPermaLink: true, Value: link},
			PubDate:     FormatDate(pub),
			Description: p.Excerpt,
			Categories:  p.Tags,
		})
	}

	lastBuild, ok := Latest(posts)
	if !ok {
		lastBuild = now
	}

	doc := rssXML{
		Version: "2.0",
		Atom:    atomNS,
		Channel: rssChannel{
			Title:         or(b.Title, DefaultTitle),
			Link:          base + "/blog",
			Description:   or(b.Description, DefaultDescription),
			Language:      or(b.Language, DefaultLanguage),
			LastBuildDate: FormatDate(lastBuild),
			AtomLink: rssAtomLink{
				Href: base + or(b.SelfPath, DefaultSelfPath),
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Items: items,
		},
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("feed: encode: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

func (b Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// Sort returns a copy of posts ordered newest first. Posts whose date does
// not parse keep their relative order after all dated posts.
func Sort(posts []content.Post) []content.Post {
	type dated struct {
		post content.Post
		at   time.Time
		ok   bool
	}
	ds := make([]dated, len(posts))
	for i, p := range posts {
		at, ok := ParseDate(p.Date)
		ds[i] = dated{p, at, ok}
	}
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].ok != ds[j].ok {
			return ds[i].ok
		}
		return ds[i].ok && ds[i].at.After(ds[j].at)
	})
	out := make([]content.Post, len(ds))
	for i, d := range ds {
		out[i] = d.post
	}
	return out
}

// Latest returns the newest valid post date. ok is false when no post has one.
func Latest(posts []content.Post) (latest time.Time, ok bool) {
	for _, p := range posts {
		at, valid := ParseDate(p.Date)
		if valid && (!ok || at.After(latest)) {
			latest, ok = at, true
		}
	}
	return latest, ok
}

// ParseDate reads a post date. ISO dates are tried first; anything else goes
// through a lenient parser. Dates without a zone are taken as UTC. A run of
// digits is only a date when it is a four digit year; longer runs are not
// read as Unix timestamps.
func ParseDate(s string) (t time.Time, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(content.DateLayout, s); err == nil {
		return t, true
	}
	if allDigits(s) {
		if len(s) != 4 {
			return time.Time{}, false
		}
		t, err := time.Parse("2006", s)
		return t, err == nil
	}
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate writes t as an RFC 822 date in GMT, e.g.
// "Sun, 01 Feb 2026 00:00:00 GMT".
func FormatDate(t time.Time) string {
	return t.UTC().Format(http.TimeFormat)
}

// Permalink returns the canonical URL of the post with the given slug.
func Permalink(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/blog/" + url.PathEscape(slug)
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func or(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

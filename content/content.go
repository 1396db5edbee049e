// Package content defines blog posts and the typed blocks that make up a
// post body.
//
// A Block is a closed set of variants. Code that consumes blocks switches on
// the concrete type and must ignore variants it does not know, so data
// written by a newer authoring tool never breaks an older renderer.
package content

import (
	"strings"
	"time"
)

// Block type names as they appear in the authoring format.
const (
	TypeParagraph = "paragraph"
	TypeHeading   = "heading"
	TypeImage     = "image"
	TypeCode      = "code"
	TypeList      = "list"
	TypeEmbed     = "embed"
	TypeCallout   = "callout"
)

// DateLayout is the layout of Post.Date.
const DateLayout = "2006-01-02"

// Post is one blog article. Posts are immutable once loaded.
type Post struct {
	Slug              string
	Title             string
	Excerpt           string
	Date              string // ISO date, e.g. 2026-02-01
	FormattedDate     string // display form, e.g. February 1, 2026
	CoverImage        string
	CoverImageCaption string
	Tags              []string
	Content           []Block
}

// DisplayDate returns FormattedDate, or a display form derived from Date
// when the post does not carry one.
func (p Post) DisplayDate() string {
	if p.FormattedDate != "" {
		return p.FormattedDate
	}
	if t, err := time.Parse(DateLayout, strings.TrimSpace(p.Date)); err == nil {
		return t.Format("January 2, 2006")
	}
	return p.Date
}

// Block is one structural unit of a post body.
type Block interface {
	blockType() string
}

// Paragraph is a run of inline-formatted text.
type Paragraph struct {
	Text string
}

// Heading is a section title within a post.
type Heading struct {
	Text string
}

// Image is a figure with optional alt text and caption.
type Image struct {
	Src     string
	Alt     string
	Caption string
}

// Code is preformatted text. It is never inline-formatted.
type Code struct {
	Text string
}

// List is an unordered list of inline-formatted items.
type List struct {
	Items []string
}

// EmbedKind names the provider of an embedded frame.
type EmbedKind string

// EmbedLinkedIn is the only embed provider the site renders.
const EmbedLinkedIn EmbedKind = "linkedin"

// Embed is a third-party frame. Height is nil when the author did not set one.
type Embed struct {
	Kind    EmbedKind
	URL     string
	Caption string
	Height  *int
}

// Callout is highlighted, inline-formatted text.
type Callout struct {
	Text string
}

// Unknown holds a block whose type this version does not understand. Its
// text and items are kept so they still count toward reading time.
type Unknown struct {
	Type  string
	Text  string
	Items []string
}

func (Paragraph) blockType() string { return TypeParagraph }
func (Heading) blockType() string   { return TypeHeading }
func (Image) blockType() string     { return TypeImage }
func (Code) blockType() string      { return TypeCode }
func (List) blockType() string      { return TypeList }
func (Embed) blockType() string     { return TypeEmbed }
func (Callout) blockType() string   { return TypeCallout }
func (u Unknown) blockType() string { return u.Type }

// TypeOf returns the authoring type name of b, or "" for a nil block.
func TypeOf(b Block) string {
	if b == nil {
		return ""
	}
	return b.blockType()
}

// TextOf returns the text field of b. Blocks without one return "".
func TextOf(b Block) string {
	switch b := b.(type) {
	case Paragraph:
		return b.Text
	case Heading:
		return b.Text
	case Code:
		return b.Text
	case Callout:
		return b.Text
	case Unknown:
		return b.Text
	}
	return ""
}

// ItemsOf returns the items field of b. Blocks without one return nil.
func ItemsOf(b Block) []string {
	switch b := b.(type) {
	case List:
		return b.Items
	case Unknown:
		return b.Items
	}
	return nil
}

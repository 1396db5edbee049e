package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the on-disk layout of a post collection.
type File struct {
	Posts []Post `json:"posts" yaml:"posts"`
}

// ParseFile decodes a post collection. YAML and JSON documents are both
// accepted.
func ParseFile(data []byte) ([]Post, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("content: parse posts: %w", err)
	}
	return f.Posts, nil
}

// EncodeBlocks serializes blocks in the authoring format.
func EncodeBlocks(blocks []Block) ([]byte, error) {
	raw := make([]rawBlock, 0, len(blocks))
	for _, b := range blocks {
		if b == nil {
			continue
		}
		raw = append(raw, toRaw(b))
	}
	return json.Marshal(raw)
}

// DecodeBlocks parses blocks from the authoring format.
func DecodeBlocks(data []byte) ([]Block, error) {
	var raw []rawBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("content: decode blocks: %w", err)
	}
	return fromRawBlocks(raw), nil
}

type rawPost struct {
	Slug              string     `json:"slug" yaml:"slug"`
	Title             string     `json:"title" yaml:"title"`
	Excerpt           string     `json:"excerpt" yaml:"excerpt"`
	Date              string     `json:"date" yaml:"date"`
	FormattedDate     string     `json:"formattedDate,omitempty" yaml:"formattedDate,omitempty"`
	CoverImage        string     `json:"coverImage,omitempty" yaml:"coverImage,omitempty"`
	CoverImageCaption string     `json:"coverImageCaption,omitempty" yaml:"coverImageCaption,omitempty"`
	Tags              []string   `json:"tags,omitempty" yaml:"tags,omitempty"`
	Content           []rawBlock `json:"content" yaml:"content"`
}

type rawBlock struct {
	Type      string   `json:"type" yaml:"type"`
	Text      string   `json:"text,omitempty" yaml:"text,omitempty"`
	Src       string   `json:"src,omitempty" yaml:"src,omitempty"`
	Alt       string   `json:"alt,omitempty" yaml:"alt,omitempty"`
	Caption   string   `json:"caption,omitempty" yaml:"caption,omitempty"`
	Items     []string `json:"items,omitempty" yaml:"items,omitempty"`
	EmbedType string   `json:"embedType,omitempty" yaml:"embedType,omitempty"`
	EmbedKind string   `json:"embedKind,omitempty" yaml:"embedKind,omitempty"`
	EmbedURL  string   `json:"embedUrl,omitempty" yaml:"embedUrl,omitempty"`
	Height    *flexInt `json:"height,omitempty" yaml:"height,omitempty"`
}

// flexInt accepts a number or a numeric string. Anything else decodes as
// unset rather than failing the whole document.
type flexInt struct {
	n  int
	ok bool
}

func (f *flexInt) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	switch x := v.(type) {
	case float64:
		f.n, f.ok = int(x), true
	case string:
		f.set(x)
	}
	return nil
}

func (f flexInt) MarshalJSON() ([]byte, error) {
	if !f.ok {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(f.n), 10), nil
}

func (f *flexInt) UnmarshalYAML(node *yaml.Node) error {
	f.set(node.Value)
	return nil
}

func (f flexInt) MarshalYAML() (any, error) {
	if !f.ok {
		return nil, nil
	}
	return f.n, nil
}

func (f *flexInt) set(s string) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		f.n, f.ok = n, true
		return
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		f.n, f.ok = int(x), true
	}
}

func (r rawBlock) block() Block {
	switch r.Type {
	case TypeParagraph:
		return Paragraph{Text: r.Text}
	case TypeHeading:
		return Heading{Text: r.Text}
	case TypeImage:
		return Image{Src: r.Src, Alt: r.Alt, Caption: r.Caption}
	case TypeCode:
		return Code{Text: r.Text}
	case TypeList:
		return List{Items: r.Items}
	case TypeCallout:
		return Callout{Text: r.Text}
	case TypeEmbed:
		kind := r.EmbedKind
		if kind == "" {
			kind = r.EmbedType
		}
		e := Embed{Kind: EmbedKind(kind), URL: r.EmbedURL, Caption: r.Caption}
		if r.Height != nil && r.Height.ok {
			h := r.Height.n
			e.Height = &h
		}
		return e
	default:
		return Unknown{Type: r.Type, Text: r.Text, Items: r.Items}
	}
}

func toRaw(b Block) rawBlock {
	r := rawBlock{Type: b.blockType()}
	switch b := b.(type) {
	case Paragraph:
		r.Text = b.Text
	case Heading:
		r.Text = b.Text
	case Image:
		r.Src, r.Alt, r.Caption = b.Src, b.Alt, b.Caption
	case Code:
		r.Text = b.Text
	case List:
		r.Items = b.Items
	case Callout:
		r.Text = b.Text
	case Embed:
		r.EmbedType, r.EmbedURL, r.Caption = string(b.Kind), b.URL, b.Caption
		if b.Height != nil {
			r.Height = &flexInt{n: *b.Height, ok: true}
		}
	case Unknown:
		r.Text, r.Items = b.Text, b.Items
	}
	return r
}

func fromRawBlocks(raw []rawBlock) []Block {
	if raw == nil {
		return nil
	}
	blocks := make([]Block, 0, len(raw))
	for _, r := range raw {
		blocks = append(blocks, r.block())
	}
	return blocks
}

func (r rawPost) post() Post {
	return Post{
		Slug:              r.Slug,
		Title:             r.Title,
		Excerpt:           r.Excerpt,
		Date:              r.Date,
		FormattedDate:     r.FormattedDate,
		CoverImage:        r.CoverImage,
		CoverImageCaption: r.CoverImageCaption,
		Tags:              r.Tags,
		Content:           fromRawBlocks(r.Content),
	}
}

func (p Post) raw() rawPost {
	r := rawPost{
		Slug:              p.Slug,
		Title:             p.Title,
		Excerpt:           p.Excerpt,
		Date:              p.Date,
		FormattedDate:     p.FormattedDate,
		CoverImage:        p.CoverImage,
		CoverImageCaption: p.CoverImageCaption,
		Tags:              p.Tags,
		Content:           make([]rawBlock, 0, len(p.Content)),
	}
	for _, b := range p.Content {
		if b != nil {
			r.Content = append(r.Content, toRaw(b))
		}
	}
	return r
}

func (p *Post) UnmarshalJSON(data []byte) error {
	var r rawPost
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = r.post()
	return nil
}

func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.raw())
}

func (p *Post) UnmarshalYAML(node *yaml.Node) error {
	var r rawPost
	if err := node.Decode(&r); err != nil {
		return err
	}
	*p = r.post()
	return nil
}

func (p Post) MarshalYAML() (any, error) {
	return p.raw(), nil
}

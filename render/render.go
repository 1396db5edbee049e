// Package render turns a post's content blocks into display nodes that a
// presentation layer can write out, and estimates reading time.
package render

import (
	"fmt"
	"strings"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/markdown"
)

// DefaultEmbedHeight is the frame height used when an embed sets none.
const DefaultEmbedHeight = 582

// WordsPerMinute is the reading speed behind ReadingTime.
const WordsPerMinute = 200

// DisplayNode is one rendered block.
type DisplayNode interface {
	displayNode()
}

type Paragraph struct {
	Inline []markdown.Node
}

type Heading struct {
	Inline []markdown.Node
}

type Callout struct {
	Inline []markdown.Node
}

// Image carries its caption only when the block had a non-empty one.
type Image struct {
	Src     string
	Alt     string
	Caption string
}

// Code is shown verbatim.
type Code struct {
	Text string
}

// List holds one inline node sequence per item.
type List struct {
	Items [][]markdown.Node
}

// Embed describes an embeddable frame.
type Embed struct {
	URL     string
	Height  int
	Caption string
}

func (Paragraph) displayNode() {}
func (Heading) displayNode()   {}
func (Callout) displayNode()   {}
func (Image) displayNode()     {}
func (Code) displayNode()      {}
func (List) displayNode()      {}
func (Embed) displayNode()     {}

// RenderPost renders every block of p in order. Blocks that cannot be
// displayed are left out.
func RenderPost(p content.Post) []DisplayNode {
	return RenderBlocks(p.Content, nil)
}

// RenderBlocks renders blocks in order, calling skipped (when non-nil) for
// each block that produced no output.
func RenderBlocks(blocks []content.Block, skipped func(content.Block)) []DisplayNode {
	nodes := make([]DisplayNode, 0, len(blocks))
	for _, b := range blocks {
		n, ok := Block(b)
		if !ok {
			if skipped != nil {
				skipped(b)
			}
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Block renders a single block. ok is false for unknown block types and
// unsupported embed providers.
func Block(b content.Block) (n DisplayNode, ok bool) {
	switch b := b.(type) {
	case content.Paragraph:
		return Paragraph{Inline: markdown.Render(b.Text)}, true
	case content.Heading:
		return Heading{Inline: markdown.Render(b.Text)}, true
	case content.Callout:
		return Callout{Inline: markdown.Render(b.Text)}, true
	case content.Image:
		return Image{Src: b.Src, Alt: b.Alt, Caption: b.Caption}, true
	case content.Code:
		return Code{Text: b.Text}, true
	case content.List:
		items := make([][]markdown.Node, len(b.Items))
		for i, item := range b.Items {
			items[i] = markdown.Render(item)
		}
		return List{Items: items}, true
	case content.Embed:
		if b.Kind != content.EmbedLinkedIn {
			return nil, false
		}
		height := DefaultEmbedHeight
		if b.Height != nil {
			height = *b.Height
		}
		return Embed{URL: b.URL, Height: height, Caption: b.Caption}, true
	}
	return nil, false
}

// WordCount counts whitespace-separated words across the text and items of
// every block, including blocks the renderer skips.
func WordCount(p content.Post) int {
	n := 0
	for _, b := range p.Content {
		n += len(strings.Fields(content.TextOf(b)))
		for _, item := range content.ItemsOf(b) {
			n += len(strings.Fields(item))
		}
	}
	return n
}

// ReadingTime formats the estimated reading time of p, e.g. "3 min read".
// A post without words reads as "0 min read".
func ReadingTime(p content.Post) string {
	minutes := (WordCount(p) + WordsPerMinute - 1) / WordsPerMinute
	return fmt.Sprintf("%d min read", minutes)
}

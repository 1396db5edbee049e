package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phonesis/personal-work-site/content"
	"github.com/Phonesis/personal-work-site/markdown"
)

func TestRenderPostPreservesOrder(t *testing.T) {
	post := content.Post{Content: []content.Block{
		content.Heading{Text: "Intro"},
		content.Paragraph{Text: "Hello **there**"},
		content.Code{Text: "x := **y** [a](b)"},
		content.Callout{Text: "Note"},
	}}

	got := RenderPost(post)
	want := []DisplayNode{
		Heading{Inline: []markdown.Node{markdown.Text("Intro")}},
		Paragraph{Inline: []markdown.Node{
			markdown.Text("Hello "),
			markdown.Bold{Children: []markdown.Node{markdown.Text("there")}},
		}},
		Code{Text: "x := **y** [a](b)"},
		Callout{Inline: []markdown.Node{markdown.Text("Note")}},
	}
	assert.Equal(t, want, got)
}

func TestRenderPostSkipsUnknownBlocks(t *testing.T) {
	post := content.Post{Content: []content.Block{
		content.Paragraph{Text: "a"},
		content.Unknown{Type: "table", Text: "ignored"},
		nil,
		content.Embed{Kind: "twitter", URL: "https://twitter.com/x"},
		content.Paragraph{Text: "b"},
	}}

	var skipped []string
	got := RenderBlocks(post.Content, func(b content.Block) {
		skipped = append(skipped, content.TypeOf(b))
	})

	require.Len(t, got, 2)
	assert.Equal(t, Paragraph{Inline: []markdown.Node{markdown.Text("a")}}, got[0])
	assert.Equal(t, Paragraph{Inline: []markdown.Node{markdown.Text("b")}}, got[1])
	assert.Equal(t, []string{"table", "", "embed"}, skipped)
	assert.Equal(t, got, RenderPost(post))
}

func TestRenderEmptyText(t *testing.T) {
	got := RenderPost(content.Post{Content: []content.Block{
		content.Paragraph{},
		content.Heading{},
	}})
	require.Len(t, got, 2)
	assert.Empty(t, got[0].(Paragraph).Inline)
	assert.Empty(t, got[1].(Heading).Inline)
}

func TestRenderImage(t *testing.T) {
	got, ok := Block(content.Image{Src: "/a.png"})
	require.True(t, ok)
	assert.Equal(t, Image{Src: "/a.png"}, got)

	got, ok = Block(content.Image{Src: "/b.png", Alt: "b", Caption: "A caption"})
	require.True(t, ok)
	assert.Equal(t, Image{Src: "/b.png", Alt: "b", Caption: "A caption"}, got)
}

func TestRenderList(t *testing.T) {
	got, ok := Block(content.List{Items: []string{"**one**", "two"}})
	require.True(t, ok)
	assert.Equal(t, List{Items: [][]markdown.Node{
		{markdown.Bold{Children: []markdown.Node{markdown.Text("one")}}},
		{markdown.Text("two")},
	}}, got)

	got, ok = Block(content.List{})
	require.True(t, ok)
	assert.Empty(t, got.(List).Items)
}

func TestRenderEmbed(t *testing.T) {
	h := 262
	zero := 0
	tests := []struct {
		name  string
		block content.Embed
		want  Embed
	}{
		{
			"default height",
			content.Embed{Kind: content.EmbedLinkedIn, URL: "https://linkedin.com/embed/1"},
			Embed{URL: "https://linkedin.com/embed/1", Height: DefaultEmbedHeight},
		},
		{
			"explicit height and caption",
			content.Embed{Kind: content.EmbedLinkedIn, URL: "u", Caption: "Discuss", Height: &h},
			Embed{URL: "u", Height: 262, Caption: "Discuss"},
		},
		{
			"zero height is not replaced",
			content.Embed{Kind: content.EmbedLinkedIn, URL: "u", Height: &zero},
			Embed{URL: "u", Height: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Block(tt.block)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := Block(content.Embed{Kind: "youtube", URL: "u"})
	assert.False(t, ok)
}

func TestReadingTime(t *testing.T) {
	words := func(n int) string {
		return strings.TrimSpace(strings.Repeat("word ", n))
	}
	tests := []struct {
		name   string
		blocks []content.Block
		want   string
	}{
		{"no text fields", []content.Block{content.Image{Src: "a.png", Alt: "many alt words"}}, "0 min read"},
		{"empty post", nil, "0 min read"},
		{"one word", []content.Block{content.Paragraph{Text: "  hello  "}}, "1 min read"},
		{"exactly 200", []content.Block{content.Paragraph{Text: words(200)}}, "1 min read"},
		{"201 words", []content.Block{content.Paragraph{Text: words(201)}}, "2 min read"},
		{
			"400 across text and items",
			[]content.Block{
				content.Heading{Text: words(50)},
				content.List{Items: []string{words(100), "", words(50)}},
				content.Code{Text: words(100)},
				content.Unknown{Type: "future", Text: words(50), Items: []string{words(50)}},
			},
			"2 min read",
		},
		{"whitespace variety", []content.Block{content.Callout{Text: "a\tb\nc  d"}}, "1 min read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadingTime(content.Post{Content: tt.blocks}))
		})
	}
}

func TestWordCount(t *testing.T) {
	post := content.Post{Content: []content.Block{
		content.Paragraph{Text: "one two three"},
		content.List{Items: []string{"four", "five six"}},
		content.Embed{Kind: content.EmbedLinkedIn, Caption: "not counted"},
	}}
	assert.Equal(t, 6, WordCount(post))
}

package worksite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phonesis/personal-work-site/content"
)

func TestBundledPosts(t *testing.T) {
	src, err := NewStaticSource("")
	require.NoError(t, err)

	posts, err := src.ListPosts()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "playwright-locator-handler", posts[0].Slug)
	assert.Equal(t, "February 1, 2026", posts[0].FormattedDate)
	assert.Contains(t, posts[0].Tags, "Playwright")

	var embeds int
	for _, p := range posts {
		for _, b := range p.Content {
			if e, ok := b.(content.Embed); ok {
				embeds++
				assert.Equal(t, content.EmbedLinkedIn, e.Kind)
			}
		}
	}
	assert.Positive(t, embeds)
}

func TestLoadPostsFileYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "posts.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`posts:
- slug: first
  title: First
  date: "2026-01-01"
  content:
  - type: paragraph
    text: Hello
`), 0o644))
	jsonPath := filepath.Join(dir, "posts.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"posts":[{"slug":"second","title":"Second","date":"2026-01-02","content":[{"type":"code","text":"x"}]}]}`), 0o644))

	posts, err := LoadPostsFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, []content.Block{content.Paragraph{Text: "Hello"}}, posts[0].Content)

	posts, err = LoadPostsFile(jsonPath)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "second", posts[0].Slug)
	assert.Equal(t, []content.Block{content.Code{Text: "x"}}, posts[0].Content)
}

func TestLoadPostsFileMissing(t *testing.T) {
	_, err := LoadPostsFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParsePostsRejectsBadSlugs(t *testing.T) {
	tests := map[string]string{
		"missing slug": "posts:\n- title: A\n",
		"duplicate":    "posts:\n- slug: a\n- slug: a\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePosts([]byte(doc))
			assert.Error(t, err)
		})
	}
}

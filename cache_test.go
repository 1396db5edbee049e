package worksite

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Phonesis/personal-work-site/content"
)

type countingSource struct {
	posts []content.Post
	err   error
	calls int
}

func (s *countingSource) ListPosts() ([]content.Post, error) {
	s.calls++
	return s.posts, s.err
}

func TestPostCacheLoadsOnce(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, time.Minute)

	_, err := c.ListPosts("")
	require.NoError(t, err)
	_, err = c.ListTags()
	require.NoError(t, err)
	_, err = c.GetPost("newer")
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)

	c.Invalidate()
	_, err = c.ListPosts("")
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

func TestPostCacheExpires(t *testing.T) {
	src := &countingSource{posts: testPosts()}
	c := NewPostCache(src, 10*time.Millisecond)

	_, _ = c.ListPosts("")
	time.Sleep(20 * time.Millisecond)
	_, _ = c.ListPosts("")
	assert.Equal(t, 2, src.calls)
}

func TestPostCacheFiltersByTag(t *testing.T) {
	c := NewPostCache(&countingSource{posts: testPosts()}, time.Minute)

	tests := []struct {
		tag   string
		slugs []string
	}{
		{"", []string{"older", "newer"}},
		{"playwright", []string{"older", "newer"}},
		{" GO ", []string{"newer"}},
		{"rust", nil},
	}
	for _, tt := range tests {
		posts, err := c.ListPosts(tt.tag)
		require.NoError(t, err)
		var slugs []string
		for _, p := range posts {
			slugs = append(slugs, p.Slug)
		}
		assert.Equal(t, tt.slugs, slugs, "tag %q", tt.tag)
	}
}

func TestPostCacheTags(t *testing.T) {
	c := NewPostCache(&countingSource{posts: testPosts()}, time.Minute)
	tags, err := c.ListTags()
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "playwright"}, tags)
}

func TestPostCacheGetPostNotFound(t *testing.T) {
	c := NewPostCache(&countingSource{posts: testPosts()}, time.Minute)
	_, err := c.GetPost("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostCacheSourceError(t *testing.T) {
	boom := errors.New("boom")
	src := &countingSource{err: boom}
	c := NewPostCache(src, time.Minute)

	_, err := c.ListPosts("")
	assert.ErrorIs(t, err, boom)

	src.err = nil
	src.posts = nil
	posts, err := c.ListPosts("")
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 2, src.calls)
}

package worksite

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/Phonesis/personal-work-site/content"
)

// bundledPosts is the post collection shipped with the binary.
//
//go:embed data/posts.yaml
var bundledPosts []byte

// PostSource supplies the site's posts. Implementations return posts in
// their listing order; callers must not modify the returned slice.
type PostSource interface {
	ListPosts() ([]content.Post, error)
}

// StaticSource serves a collection loaded once from YAML or JSON.
type StaticSource struct {
	posts []content.Post
}

// NewStaticSource loads posts from path, or the bundled collection when path
// is empty.
func NewStaticSource(path string) (*StaticSource, error) {
	if path == "" {
		posts, err := ParsePosts(bundledPosts)
		if err != nil {
			return nil, err
		}
		return &StaticSource{posts: posts}, nil
	}
	posts, err := LoadPostsFile(path)
	if err != nil {
		return nil, err
	}
	return &StaticSource{posts: posts}, nil
}

// NewStaticSourceFromPosts wraps an in-memory collection.
func NewStaticSourceFromPosts(posts []content.Post) *StaticSource {
	return &StaticSource{posts: posts}
}

// ListPosts implements PostSource.
func (s *StaticSource) ListPosts() ([]content.Post, error) {
	return s.posts, nil
}

// LoadPostsFile reads and checks a post collection file.
func LoadPostsFile(path string) ([]content.Post, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worksite: read posts: %w", err)
	}
	return ParsePosts(data)
}

// ParsePosts decodes a post collection and rejects missing or duplicate slugs.
func ParsePosts(data []byte) ([]content.Post, error) {
	posts, err := content.ParseFile(data)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(posts))
	for i, p := range posts {
		slug := strings.TrimSpace(p.Slug)
		if slug == "" {
			return nil, fmt.Errorf("worksite: post %d has no slug", i)
		}
		if _, dup := seen[slug]; dup {
			return nil, fmt.Errorf("worksite: duplicate slug %q", slug)
		}
		seen[slug] = struct{}{}
	}
	return posts, nil
}

package worksite

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/Phonesis/personal-work-site/content"
)

// ErrNotFound is returned when a requested post or image does not exist.
var ErrNotFound = errors.New("worksite: not found")

// Store wraps a SQLite database holding posts and uploaded image metadata.
// It implements PostSource.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while the admin API writes; busy_timeout makes
	// writers wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS posts (
    slug TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    excerpt TEXT NOT NULL,
    date TEXT NOT NULL,
    formatted_date TEXT NOT NULL,
    cover_image TEXT NOT NULL,
    cover_image_caption TEXT NOT NULL,
    tags TEXT NOT NULL,
    content TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS images (
    filename TEXT PRIMARY KEY,
    original_name TEXT NOT NULL,
    width INTEGER NOT NULL,
    height INTEGER NOT NULL,
    size INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
`)
	return err
}

const postColumns = `slug, title, excerpt, date, formatted_date, cover_image, cover_image_caption, tags, content`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (content.Post, error) {
	var p content.Post
	var tags, blocks string
	if err := row.Scan(&p.Slug, &p.Title, &p.Excerpt, &p.Date, &p.FormattedDate,
		&p.CoverImage, &p.CoverImageCaption, &tags, &blocks); err != nil {
		return content.Post{}, err
	}
	p.Tags = ParseTags(tags)
	decoded, err := content.DecodeBlocks([]byte(blocks))
	if err != nil {
		return content.Post{}, fmt.Errorf("worksite: post %q: %w", p.Slug, err)
	}
	p.Content = decoded
	return p, nil
}

// ListPosts returns all posts ordered by date descending. It implements
// PostSource.
func (s *Store) ListPosts() ([]content.Post, error) {
	rows, err := s.db.Query(`SELECT ` + postColumns + ` FROM posts ORDER BY date DESC, slug ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []content.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPost returns a single post by slug.
func (s *Store) GetPost(slug string) (content.Post, error) {
	p, err := scanPost(s.db.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return content.Post{}, ErrNotFound
	}
	return p, err
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func savePost(db execer, p content.Post) error {
	blocks, err := content.EncodeBlocks(p.Content)
	if err != nil {
		return fmt.Errorf("worksite: encode post %q: %w", p.Slug, err)
	}
	_, err = db.Exec(`INSERT OR REPLACE INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Slug, p.Title, p.Excerpt, p.Date, p.FormattedDate, p.CoverImage, p.CoverImageCaption,
		JoinTags(p.Tags), string(blocks))
	return err
}

// SavePost upserts a post.
func (s *Store) SavePost(p content.Post) error {
	return savePost(s.db, p)
}

// ImportPosts upserts every post in one transaction.
func (s *Store) ImportPosts(posts []content.Post) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, p := range posts {
		if err := savePost(tx, p); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// DeletePost removes a post by slug.
func (s *Store) DeletePost(slug string) error {
	res, err := s.db.Exec(`DELETE FROM posts WHERE slug = ?`, slug)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// ListImages returns uploaded images, newest first.
func (s *Store) ListImages() ([]Image, error) {
	rows, err := s.db.Query(`SELECT filename, original_name, width, height, size, uploaded_at FROM images ORDER BY uploaded_at DESC, filename ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.Filename, &img.OriginalName, &img.Width, &img.Height, &img.Size, &img.UploadedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// ImageExists reports whether filename is already recorded.
func (s *Store) ImageExists(filename string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM images WHERE filename = ?`, filename).Scan(&n)
	return n > 0, err
}

// SaveImage records an uploaded image.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO images (filename, original_name, width, height, size, uploaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		img.Filename, img.OriginalName, img.Width, img.Height, img.Size, img.UploadedAt)
	return err
}

// DeleteImage removes an image record.
func (s *Store) DeleteImage(filename string) error {
	res, err := s.db.Exec(`DELETE FROM images WHERE filename = ?`, filename)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// JoinTags encodes tags as a comma-delimited string (e.g. ",Go,Web,").
// Case is kept; tags must not contain commas.
func JoinTags(tags []string) string {
	clean := FilterEmpty(tags)
	if len(clean) == 0 {
		return ""
	}
	return "," + strings.Join(clean, ",") + ","
}

// ParseTags splits a comma-delimited tag string (e.g. ",go,web,") into a slice.
func ParseTags(tagString string) []string {
	tagString = strings.Trim(tagString, ",")
	if tagString == "" {
		return nil
	}
	parts := strings.Split(tagString, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	worksite "github.com/Phonesis/personal-work-site"
	"github.com/Phonesis/personal-work-site/feed"
)

var (
	feedBaseURL string
	feedOut     string
)

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Write the RSS feed for the configured posts",
	Long: `feed builds the same document the server returns from /rss.xml and writes
it to a file or stdout, for hosting the feed as a static file.`,
	RunE: runFeed,
}

func init() {
	feedCmd.Flags().StringVar(&feedBaseURL, "base-url", "", "origin used for absolute links (default: the configured site URL)")
	feedCmd.Flags().StringVarP(&feedOut, "out", "o", "", "output file (default: stdout)")
}

func runFeed(cmd *cobra.Command, args []string) error {
	fc, err := loadConfig()
	if err != nil {
		return err
	}
	src, closeSrc, err := openSource(fc)
	if err != nil {
		return err
	}
	defer closeSrc()

	posts, err := src.ListPosts()
	if err != nil {
		return err
	}
	base := feedBaseURL
	if base == "" {
		base = fc.URL
	}
	data, err := feed.Builder{
		Title:       fc.FeedTitle,
		Description: fc.FeedDescription,
		Language:    fc.Language,
	}.Build(base, posts)
	if err != nil {
		return err
	}

	if feedOut == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(feedOut, data, 0o644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	log.WithField("file", feedOut).WithField("posts", len(posts)).Info("feed written")
	return nil
}

// openSource returns the database when one is configured, else the post
// file or the bundled posts.
func openSource(fc fileConfig) (worksite.PostSource, func(), error) {
	if fc.DatabasePath != "" {
		store, err := worksite.NewStore(fc.DatabasePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
	src, err := worksite.NewStaticSource(fc.PostsFile)
	if err != nil {
		return nil, nil, err
	}
	return src, func() {}, nil
}

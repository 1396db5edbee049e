package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	worksite "github.com/Phonesis/personal-work-site"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load a post collection into the SQLite database",
	Long: `import validates every post in a YAML or JSON collection and upserts them
into the database in one transaction. Without --file the bundled posts are
imported.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "YAML or JSON post collection (default: bundled posts)")
}

func runImport(cmd *cobra.Command, args []string) error {
	fc, err := loadConfig()
	if err != nil {
		return err
	}
	if fc.DatabasePath == "" {
		return errors.New("no database configured: pass --db or set WORKSITE_DATABASE_PATH")
	}

	src, err := worksite.NewStaticSource(importFile)
	if err != nil {
		return err
	}
	posts, err := src.ListPosts()
	if err != nil {
		return err
	}

	validate := worksite.NewValidator()
	var errs []error
	for _, p := range posts {
		if err := worksite.ValidatePost(validate, p); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	store, err := worksite.NewStore(fc.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.ImportPosts(posts); err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"posts": len(posts),
		"db":    fc.DatabasePath,
	}).Info("posts imported")
	return nil
}

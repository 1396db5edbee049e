package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	worksite "github.com/Phonesis/personal-work-site"
)

var (
	cfgFile string
	v       = viper.New()
	log     *logrus.Logger
)

var rootCmd = &cobra.Command{
	Use:   "worksite",
	Short: "Personal work site: CV, blog, RSS feed and authoring API",
	Long: `worksite serves a CV home page and a blog built from typed content blocks,
with an RSS feed, sitemap and an optional authoring API backed by SQLite.

Configuration comes from flags, WORKSITE_* environment variables (a .env file
is loaded first when present) and an optional worksite.yaml.

Example usage:
  worksite serve --addr :8080
  worksite feed --base-url https://example.com --out public/rss.xml
  worksite import --file posts.yaml --db data/site.db`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// fileConfig mirrors worksite.SiteConfig with viper keys.
type fileConfig struct {
	Name            string        `mapstructure:"name"`
	URL             string        `mapstructure:"url"`
	Description     string        `mapstructure:"description"`
	Author          string        `mapstructure:"author"`
	Language        string        `mapstructure:"language"`
	FeedTitle       string        `mapstructure:"feed_title"`
	FeedDescription string        `mapstructure:"feed_description"`
	Addr            string        `mapstructure:"addr"`
	PostsFile       string        `mapstructure:"posts_file"`
	ProfileFile     string        `mapstructure:"profile_file"`
	DatabasePath    string        `mapstructure:"database_path"`
	StaticDir       string        `mapstructure:"static_dir"`
	AdminPassword   string        `mapstructure:"admin_password"`
	SessionSecret   string        `mapstructure:"session_secret"`
	CookieSecure    bool          `mapstructure:"cookie_secure"`
	PostCacheTTL    time.Duration `mapstructure:"post_cache_ttl"`
	FeedCacheTTL    time.Duration `mapstructure:"feed_cache_ttl"`
	LogLevel        string        `mapstructure:"log_level"`
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./worksite.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("posts", "", "YAML or JSON post collection (default: bundled posts)")
	rootCmd.PersistentFlags().String("profile", "", "YAML or JSON CV for the home page (default: bundled profile)")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path; enables the authoring API")

	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("posts_file", rootCmd.PersistentFlags().Lookup("posts"))
	_ = v.BindPFlag("profile_file", rootCmd.PersistentFlags().Lookup("profile"))
	_ = v.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(serveCmd, feedCmd, importCmd, versionCmd)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "Martin Poole")
	v.SetDefault("url", "http://localhost:3000")
	v.SetDefault("description", "Thoughts, insights, and updates on my latest work projects and ideas I've been working on.")
	v.SetDefault("author", "Martin Poole")
	v.SetDefault("language", "en-gb")
	v.SetDefault("feed_title", "")
	v.SetDefault("feed_description", "")
	v.SetDefault("addr", "")
	v.SetDefault("static_dir", "public")
	v.SetDefault("admin_password", "")
	v.SetDefault("session_secret", "")
	v.SetDefault("cookie_secure", false)
	v.SetDefault("post_cache_ttl", 5*time.Minute)
	v.SetDefault("feed_cache_ttl", 10*time.Minute)
}

// initConfig loads .env, then the config file, then the environment.
func initConfig() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("worksite")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix("WORKSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	log = worksite.NewLogger(v.GetString("log_level"))
	if used := v.ConfigFileUsed(); used != "" {
		log.WithField("file", used).Debug("config loaded")
	}
	return nil
}

func loadConfig() (fileConfig, error) {
	var fc fileConfig
	if err := v.Unmarshal(&fc); err != nil {
		return fc, fmt.Errorf("unmarshaling config: %w", err)
	}
	return fc, nil
}

func (fc fileConfig) site() worksite.SiteConfig {
	return worksite.SiteConfig{
		Name:            fc.Name,
		URL:             fc.URL,
		Description:     fc.Description,
		Author:          fc.Author,
		Language:        fc.Language,
		FeedTitle:       fc.FeedTitle,
		FeedDescription: fc.FeedDescription,
		Addr:            fc.Addr,
		PostsFile:       fc.PostsFile,
		ProfileFile:     fc.ProfileFile,
		DatabasePath:    fc.DatabasePath,
		AdminPassword:   fc.AdminPassword,
		SessionSecret:   fc.SessionSecret,
		CookieSecure:    fc.CookieSecure,
		PostCacheTTL:    fc.PostCacheTTL,
		FeedCacheTTL:    fc.FeedCacheTTL,
		LogLevel:        fc.LogLevel,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the worksite version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "worksite %s\n", version)
	},
}

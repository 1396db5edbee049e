package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	worksite "github.com/Phonesis/personal-work-site"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", `listen address (default ":$PORT" or ":3000")`)
	serveCmd.Flags().String("static", "public", "static assets and uploads directory")
	serveCmd.Flags().String("url", "", "canonical site URL")
	_ = v.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = v.BindPFlag("static_dir", serveCmd.Flags().Lookup("static"))
	_ = v.BindPFlag("url", serveCmd.Flags().Lookup("url"))
}

func runServe(cmd *cobra.Command, args []string) error {
	fc, err := loadConfig()
	if err != nil {
		return err
	}
	app := worksite.New(fc.site(),
		worksite.WithLogger(log),
		worksite.WithStaticDir(fc.StaticDir),
	)
	if err := app.Setup(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- app.Start() }()

	select {
	case err := <-errCh:
		app.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.Shutdown(shutdownCtx)
}

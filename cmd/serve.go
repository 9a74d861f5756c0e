package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/hadocs/docs-addon/internal/config"
	"github.com/hadocs/docs-addon/internal/docs"
	"github.com/hadocs/docs-addon/internal/render"
	"github.com/hadocs/docs-addon/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the document viewer server",
	Long: `Starts the HTTP server over the configured docs root. The server
watches the docs root for changes and refreshes listings automatically.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if servePort != 0 {
			cfg.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log := newLogger(cfg.LogLevel)
		slog.SetDefault(log)

		store, err := docs.NewStore(cfg.DocsRoot, cfg.ExcludeFiles, cfg.ExcludeFolders)
		if err != nil {
			return fmt.Errorf("opening docs root: %w", err)
		}
		if !store.FileExists(cfg.DefaultDocument) {
			log.Warn("default document not found, the start page will 404 until it exists",
				"document", cfg.DefaultDocument)
		}

		watcher, err := docs.Watch(store)
		if err != nil {
			log.Warn("filesystem watching unavailable", "error", err)
		} else {
			defer watcher.Close()
		}

		srv := server.New(server.Config{
			Port:            cfg.Port,
			IngressBaseURL:  cfg.IngressBaseURL,
			DefaultDocument: cfg.DefaultDocument,
			AllowAll:        cfg.AllowAllOrigins,
			UploadEnabled:   cfg.Upload.Enabled,
			UploadMaxBytes:  cfg.Upload.MaxBodyMiB << 20,
		}, store, render.New(), log)

		// Graceful shutdown on SIGINT/SIGTERM.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()

		log.Info("starting docs-addon",
			"version", Version,
			"port", cfg.Port,
			"docs_root", cfg.DocsRoot,
			"upload_enabled", cfg.Upload.Enabled,
		)

		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// newLogger builds the process logger. Colored output goes to a terminal,
// plain text otherwise, which is what the supervisor's log collector sees.
func newLogger(level string) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}

	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      lvl,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

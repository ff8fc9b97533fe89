package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/p-n-ai/pai-textbook/internal/content"
	"github.com/p-n-ai/pai-textbook/internal/curriculum"
	"github.com/p-n-ai/pai-textbook/internal/platform/cache"
	"github.com/p-n-ai/pai-textbook/internal/platform/config"
	"github.com/p-n-ai/pai-textbook/internal/platform/database"
	"github.com/p-n-ai/pai-textbook/internal/render"
	"github.com/p-n-ai/pai-textbook/internal/video"
	"github.com/p-n-ai/pai-textbook/internal/vocab"
	"github.com/p-n-ai/pai-textbook/internal/web"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger, err := newLogger(os.Stdout, cfg.Log)
	if err != nil {
		slog.Error("invalid log config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logger)

	// Graceful shutdown on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	handler, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting",
			"addr", srv.Addr,
			"content_source", cfg.Content.Source,
			"cache", cfg.HasCache(),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// newLogger builds the process logger from the log settings.
func newLogger(w io.Writer, cfg config.LogConfig) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return slog.New(slog.NewJSONHandler(w, opts)), nil
}

// buildServer wires the document source, resolver and renderers into the
// HTTP server. cleanup releases the database and cache connections.
func buildServer(ctx context.Context, cfg *config.Config) (http.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	pingers := make(map[string]web.Pinger)

	var source content.Source
	if cfg.UsesPostgres() {
		db, err := database.New(ctx, database.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		closers = append(closers, db.Close)
		pingers["database"] = db

		pg := content.NewPostgresSource(db.Pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("preparing content schema: %w", err)
		}
		source = pg
		slog.Info("serving content from postgres")
	} else {
		source = content.NewDirSource(cfg.Content.Root)
		slog.Info("serving content from directory", "root", cfg.Content.Root)
	}

	if cfg.HasCache() {
		c, err := cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("connecting to cache: %w", err)
		}
		closers = append(closers, func() {
			if err := c.Close(); err != nil {
				slog.Warn("closing cache", "error", err)
			}
		})
		pingers["cache"] = c
		source = content.NewCachedSource(source, c, time.Duration(cfg.Cache.TTLSeconds)*time.Second)
	}

	resolver := curriculum.NewResolver(curriculum.ResolverConfig{
		Documents:   content.NewService(source),
		Paths:       content.NewPaths(cfg.Content.Prefix),
		Concurrency: cfg.Content.FetchConcurrency,
		Strict:      cfg.Content.Strict,
	})

	policy := vocab.FirstOccurrence
	if cfg.Vocab.EveryOccurrence {
		policy = vocab.EveryOccurrence
	}

	srv := web.New(web.Config{
		Resolver:    resolver,
		Transcripts: video.NewTranscriptLoader(source, cfg.Content.TranscriptRoot),
		Renderer:    render.New(render.NewMarkdown(), cfg.Player.Origin),
		VocabPolicy: policy,
		Origin:      cfg.Player.Origin,
		Pingers:     pingers,
	})
	return srv, cleanup, nil
}

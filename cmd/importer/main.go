// Command importer checks a content directory and loads its documents into
// the content_documents table.
//
//	importer [-root dir] [-lint]
//
// Question documents are validated against the question schema; invalid
// documents are reported and skipped. With -lint nothing is written.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/p-n-ai/pai-textbook/internal/content"
	"github.com/p-n-ai/pai-textbook/internal/curriculum"
	"github.com/p-n-ai/pai-textbook/internal/platform/config"
	"github.com/p-n-ai/pai-textbook/internal/platform/database"
)

// Store receives imported documents.
type Store interface {
	Upsert(ctx context.Context, path string, body []byte) error
}

// report counts what an import run saw.
type report struct {
	Documents int
	Questions int
	Invalid   int
}

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var root string
	var lint bool
	flag.StringVar(&root, "root", cfg.Content.Root, "content directory to import")
	flag.BoolVar(&lint, "lint", false, "validate documents without writing them")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	var store Store
	if !lint {
		db, err := database.New(ctx, database.Config{
			URL:      cfg.Database.URL,
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := content.NewPostgresSource(db.Pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			slog.Error("failed to prepare schema", "error", err)
			os.Exit(1)
		}
		store = pg
	}

	rep, err := importTree(ctx, root, store)
	slog.Info("import finished",
		"root", root,
		"lint", lint,
		"documents", rep.Documents,
		"questions", rep.Questions,
		"invalid", rep.Invalid,
	)
	if err != nil {
		slog.Error("import failed", "error", err)
		os.Exit(1)
	}
}

// importTree walks root and writes every YAML and JSON document to store
// under its slash-separated path relative to root. A nil store only
// validates. It returns an error when any document was invalid.
func importTree(ctx context.Context, root string, store Store) (report, error) {
	var rep report

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !isDocument(path) {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", rel, err)
		}

		isQuestion, err := checkDocument(rel, data)
		if err != nil {
			slog.Warn("invalid document", "path", rel, "error", err)
			rep.Invalid++
			return nil
		}
		rep.Documents++
		if isQuestion {
			rep.Questions++
		}

		if store == nil {
			return nil
		}
		if err := store.Upsert(ctx, rel, data); err != nil {
			return fmt.Errorf("storing %s: %w", rel, err)
		}
		slog.Debug("document imported", "path", rel, "bytes", len(data))
		return nil
	})
	if err != nil {
		return rep, err
	}
	if rep.Invalid > 0 {
		return rep, fmt.Errorf("%d invalid documents", rep.Invalid)
	}
	return rep, nil
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".json":
		return true
	}
	return false
}

// checkDocument parses data and, when it looks like a question (a mapping
// with a question key), validates it against the question schema.
func checkDocument(path string, data []byte) (isQuestion bool, err error) {
	doc, err := content.Parse(path, data)
	if err != nil {
		return false, err
	}

	rec, err := doc.Record()
	if err != nil {
		// Transcripts and other non-mapping documents are stored as is.
		return false, nil
	}
	if _, ok := rec["question"]; !ok {
		return false, nil
	}

	if err := curriculum.ValidateQuestion(rec); err != nil {
		var se *curriculum.SchemaError
		if errors.As(err, &se) {
			return true, se
		}
		return true, err
	}
	return true, nil
}

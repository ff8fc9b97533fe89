package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by PostgresSource.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS content_documents (
	path       TEXT PRIMARY KEY,
	body       BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresSource reads documents from the content_documents table.
type PostgresSource struct {
	db DBTX
}

// NewPostgresSource creates a source backed by db.
func NewPostgresSource(db DBTX) *PostgresSource {
	return &PostgresSource{db: db}
}

// EnsureSchema creates the content_documents table if it is missing.
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating content_documents: %w", err)
	}
	return nil
}

func (s *PostgresSource) Open(ctx context.Context, path string) ([]byte, error) {
	var body []byte
	err := s.db.QueryRow(ctx,
		`SELECT body FROM content_documents WHERE path = $1`,
		path,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("query document: %w", err)
	}
	return body, nil
}

// Upsert stores body under path, replacing any previous version.
func (s *PostgresSource) Upsert(ctx context.Context, path string, body []byte) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO content_documents (path, body, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (path) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`,
		path, body,
	)
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", path, err)
	}
	return nil
}

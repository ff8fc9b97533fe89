// Package content loads structured YAML and JSON documents from the textbook
// content tree and resolves the paths that reference them.
package content

import (
	"context"
	"errors"
	"log/slog"
)

// Service fetches and parses documents.
type Service struct {
	source Source
}

// NewService creates a document service reading from source.
func NewService(source Source) *Service {
	return &Service{source: source}
}

// GetDocument fetches and parses the document at path. Any failure is a
// *LoadError.
func (s *Service) GetDocument(ctx context.Context, path string) (*Document, error) {
	data, err := s.source.Open(ctx, path)
	if err != nil {
		reason := "fetch failed"
		if errors.Is(err, ErrNotExist) {
			reason = "not found"
		}
		return nil, &LoadError{Path: path, Reason: reason, Err: err}
	}

	doc, err := Parse(path, data)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "parse failed", Err: err}
	}

	slog.Debug("document loaded", "path", path, "format", doc.Format, "bytes", len(data))
	return doc, nil
}

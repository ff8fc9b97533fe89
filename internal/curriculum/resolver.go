// Package curriculum resolves textbook question banks from concept-map
// documents and exports them.
package curriculum

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/p-n-ai/pai-textbook/internal/content"
)

const defaultConcurrency = 8

// DocumentService fetches parsed documents by content path.
type DocumentService interface {
	GetDocument(ctx context.Context, path string) (*content.Document, error)
}

// Request selects a question bank.
type Request struct {
	MapRef         string // concept-map reference, absolute or page-relative
	CurrentPath    string // path of the page doing the referencing
	ConceptFilter  string // keep only the concept with this exact name
	QuestionFilter string // keep only the question with this exact id
}

// ResolverConfig holds dependencies for the resolver.
type ResolverConfig struct {
	Documents   DocumentService
	Paths       content.Paths
	Concurrency int  // parallel question loads (default 8)
	Strict      bool // validate question documents against the schema
}

// Resolver turns concept-map references into ordered question lists.
type Resolver struct {
	docs        DocumentService
	paths       content.Paths
	concurrency int
	strict      bool
}

// NewResolver creates a resolver.
func NewResolver(cfg ResolverConfig) *Resolver {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	paths := cfg.Paths
	if paths.Prefix == "" {
		paths = content.NewPaths("")
	}
	return &Resolver{
		docs:        cfg.Documents,
		paths:       paths,
		concurrency: concurrency,
		strict:      cfg.Strict,
	}
}

// Resolve loads the questions referenced by req.MapRef in concept-map order.
// Any load failure fails the whole call; partial results are never returned.
func (r *Resolver) Resolve(ctx context.Context, req Request) ([]Question, error) {
	mapPath := r.paths.Resolve(req.MapRef, req.CurrentPath)
	slog.Debug("resolving question bank",
		"map_ref", req.MapRef,
		"current_path", req.CurrentPath,
		"map_path", mapPath,
		"concept_filter", req.ConceptFilter,
		"question_filter", req.QuestionFilter,
	)

	doc, err := r.docs.GetDocument(ctx, mapPath)
	if err != nil {
		return nil, err
	}

	var raw rawMap
	if err := doc.Decode(&raw); err != nil {
		return nil, &content.LoadError{Path: mapPath, Reason: "unrecognized concept map", Err: err}
	}

	var files []string
	switch s := shapeOf(raw); s {
	case shapeConceptMap:
		files = conceptMapFiles(*raw.ConceptMap, req.ConceptFilter)
	case shapeQuestionRefs:
		files, err = questionRefFiles(*raw.Questions)
		if err != nil {
			return nil, &content.LoadError{Path: mapPath, Reason: "invalid question reference", Err: err}
		}
	case shapeInlineQuestions:
		questions, err := decodeInline(*raw.Questions)
		if err != nil {
			return nil, &content.LoadError{Path: mapPath, Reason: "invalid inline question", Err: err}
		}
		return questions, nil
	default:
		slog.Debug("concept map has no recognized shape", "map_path", mapPath)
	}

	if len(files) == 0 {
		return []Question{}, nil
	}

	questions, err := r.loadAll(ctx, content.Dir(mapPath), files)
	if err != nil {
		return nil, err
	}

	if req.QuestionFilter != "" {
		questions = filterByID(questions, req.QuestionFilter)
	}

	slog.Debug("question bank resolved", "map_path", mapPath, "files", len(files), "questions", len(questions))
	return questions, nil
}

// loadAll fetches every file relative to dir in parallel. Results keep the
// order of files regardless of completion order.
func (r *Resolver) loadAll(ctx context.Context, dir string, files []string) ([]Question, error) {
	questions := make([]Question, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)

	for i, file := range files {
		g.Go(func() error {
			q, err := r.loadQuestion(gctx, content.Join(dir, file))
			if err != nil {
				return err
			}
			questions[i] = q
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *Resolver) loadQuestion(ctx context.Context, path string) (Question, error) {
	doc, err := r.docs.GetDocument(ctx, path)
	if err != nil {
		return Question{}, err
	}

	if r.strict {
		rec, err := doc.Record()
		if err != nil {
			return Question{}, &content.LoadError{Path: path, Reason: "parse failed", Err: err}
		}
		if err := ValidateQuestion(rec); err != nil {
			return Question{}, &content.LoadError{Path: path, Reason: "schema validation failed", Err: err}
		}
	}

	var q Question
	if err := doc.Decode(&q); err != nil {
		return Question{}, &content.LoadError{Path: path, Reason: "invalid question", Err: err}
	}
	return q, nil
}

// conceptMapFiles walks categories and concepts collecting question files,
// skipping concepts that do not match filter.
func conceptMapFiles(categories []Category, filter string) []string {
	var files orderedSet
	for _, cat := range categories {
		for _, c := range cat.Concepts {
			if filter != "" && c.Name != filter {
				continue
			}
			for _, f := range c.ExamQuestions {
				files.add(f)
			}
		}
	}
	return files.items
}

func questionRefFiles(nodes []yaml.Node) ([]string, error) {
	var files orderedSet
	for i := range nodes {
		var ref QuestionRef
		if err := nodes[i].Decode(&ref); err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		files.add(ref.File)
	}
	return files.items, nil
}

func decodeInline(nodes []yaml.Node) ([]Question, error) {
	questions := make([]Question, 0, len(nodes))
	for i := range nodes {
		var q Question
		if err := nodes[i].Decode(&q); err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func filterByID(questions []Question, id string) []Question {
	out := make([]Question, 0, 1)
	for _, q := range questions {
		if q.ID == id {
			out = append(out, q)
		}
	}
	return out
}

// orderedSet keeps the first occurrence of each non-empty string in insertion
// order.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}

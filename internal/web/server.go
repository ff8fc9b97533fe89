// Package web serves the textbook components and question data over HTTP.
package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/p-n-ai/pai-textbook/internal/curriculum"
	"github.com/p-n-ai/pai-textbook/internal/render"
	"github.com/p-n-ai/pai-textbook/internal/video"
	"github.com/p-n-ai/pai-textbook/internal/vocab"
)

// Pinger is a dependency checked by the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// QuestionResolver resolves question banks.
type QuestionResolver interface {
	Resolve(ctx context.Context, req curriculum.Request) ([]curriculum.Question, error)
}

// TranscriptLoader loads exam recording transcripts.
type TranscriptLoader interface {
	Load(ctx context.Context, src, currentPath string) ([]video.Segment, error)
}

// Config holds the server's dependencies.
type Config struct {
	Resolver    QuestionResolver
	Transcripts TranscriptLoader
	Renderer    *render.Renderer
	VocabPolicy vocab.Policy
	Origin      string            // page origin passed to embedded players
	Pingers     map[string]Pinger // readiness checks by name
}

// Server routes requests to the component and API handlers.
type Server struct {
	router      chi.Router
	resolver    QuestionResolver
	transcripts TranscriptLoader
	renderer    *render.Renderer
	policy      vocab.Policy
	origin      string
	wsOrigins   []string
	pingers     map[string]Pinger
}

// New creates a Server with its routes registered.
func New(cfg Config) *Server {
	renderer := cfg.Renderer
	if renderer == nil {
		renderer = render.New(nil, cfg.Origin)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(slogMiddleware)
	r.Use(middleware.Recoverer)

	s := &Server{
		router:      r,
		resolver:    cfg.Resolver,
		transcripts: cfg.Transcripts,
		renderer:    renderer,
		policy:      cfg.VocabPolicy,
		origin:      cfg.Origin,
		wsOrigins:   originPatterns(cfg.Origin),
		pingers:     cfg.Pingers,
	}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Get("/questions/export.xlsx", s.handleQuestionsExport)
		r.Post("/vocab/highlight", s.handleHighlight)
		r.Get("/video-id", s.handleVideoID)
	})

	s.router.Route("/components", func(r chi.Router) {
		r.Get("/exam-questions", s.handleExamQuestions)
		r.Get("/exam-browser", s.handleExamBrowser)
		r.Get("/callout", s.handleCallout)
		r.Get("/professor", s.handleProfessor)
	})

	s.router.Get("/ws/player", s.handlePlayer)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for name, p := range s.pingers {
		if err := p.Ping(r.Context()); err != nil {
			slog.Warn("readiness check failed", "dependency", name, "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
				"error":  name + " unreachable",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// originPatterns returns the websocket origin patterns allowed besides the
// request host.
func originPatterns(origin string) []string {
	if origin == "" {
		return nil
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		slog.Warn("ignoring invalid player origin", "origin", origin)
		return nil
	}
	return []string{u.Host}
}

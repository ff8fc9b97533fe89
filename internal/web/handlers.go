package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/p-n-ai/pai-textbook/internal/content"
	"github.com/p-n-ai/pai-textbook/internal/curriculum"
	"github.com/p-n-ai/pai-textbook/internal/render"
	"github.com/p-n-ai/pai-textbook/internal/video"
	"github.com/p-n-ai/pai-textbook/internal/vocab"
)

const (
	htmlContentType = "text/html; charset=utf-8"
	jsonContentType = "application/json"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	maxBodyBytes = 1 << 20
)

func (q questionsQuery) request() curriculum.Request {
	return curriculum.Request{
		MapRef:         q.Map,
		CurrentPath:    q.Page,
		ConceptFilter:  q.Concept,
		QuestionFilter: q.Question,
	}
}

// resolveStatus maps a resolver failure to an API status code.
func resolveStatus(err error) int {
	var le *content.LoadError
	switch {
	case errors.Is(err, content.ErrNotExist):
		return http.StatusNotFound
	case errors.As(err, &le):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) ([]curriculum.Question, bool) {
	var q questionsQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	questions, err := s.resolver.Resolve(r.Context(), q.request())
	if err != nil {
		status := resolveStatus(err)
		if status == http.StatusInternalServerError {
			slog.Error("failed to resolve questions", "map", q.Map, "error", err)
		}
		writeError(w, status, err.Error())
		return nil, false
	}
	return questions, true
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	questions, ok := s.resolve(w, r)
	if !ok {
		return
	}
	body, err := json.Marshal(map[string]any{"questions": questions})
	if err != nil {
		slog.Error("failed to encode questions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to encode questions")
		return
	}
	writeTagged(w, r, jsonContentType, body)
}

func (s *Server) handleQuestionsExport(w http.ResponseWriter, r *http.Request) {
	questions, ok := s.resolve(w, r)
	if !ok {
		return
	}
	data, err := curriculum.ExportXLSX(questions)
	if err != nil {
		slog.Error("failed to export questions", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to export questions")
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="questions.xlsx"`)
	writeTagged(w, r, xlsxContentType, data)
}

type highlightSegment struct {
	Text       string `json:"text"`
	Definition string `json:"definition,omitempty"`
	Tagged     bool   `json:"tagged"`
}

type highlightResponse struct {
	Matched  bool               `json:"matched"`
	Segments []highlightSegment `json:"segments"`
	HTML     template.HTML      `json:"html"`
}

func (s *Server) handleHighlight(w http.ResponseWriter, r *http.Request) {
	var req highlightRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	policy := s.policy
	if req.EveryOccurrence != nil {
		policy = vocab.FirstOccurrence
		if *req.EveryOccurrence {
			policy = vocab.EveryOccurrence
		}
	}
	items := make([]vocab.Item, len(req.Vocab))
	for i, v := range req.Vocab {
		items[i] = vocab.Item{Word: v.Word, Definition: v.Definition}
	}

	res := vocab.Highlight(req.Text, items, policy)
	html, err := vocab.RenderHTML(s.renderer.Markdown(), req.Text, items, policy)
	if err != nil {
		slog.Error("failed to render highlighted text", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render text")
		return
	}

	resp := highlightResponse{Matched: res.Matched(), HTML: html, Segments: make([]highlightSegment, len(res.Segments))}
	for i, seg := range res.Segments {
		resp.Segments[i] = highlightSegment{Text: seg.Text, Definition: seg.Definition, Tagged: seg.Tagged}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVideoID(w http.ResponseWriter, r *http.Request) {
	var q videoIDQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, err := video.ExtractID(q.URL)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":        id,
		"embed_url": video.EmbedURL(id, s.origin),
	})
}

func (s *Server) handleExamQuestions(w http.ResponseWriter, r *http.Request) {
	var q examQuestionsQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	defaults := render.DefaultQuestionBankOptions()
	opts := render.QuestionBankOptions{
		Title:            q.Title,
		ShowAnswers:      boolOr(q.ShowAnswers, defaults.ShowAnswers),
		ShowVideos:       boolOr(q.ShowVideos, defaults.ShowVideos),
		ShowAnswerLevels: boolOr(q.ShowAnswerLevels, defaults.ShowAnswerLevels),
		AnswersOpen:      boolOr(q.AnswersOpen, defaults.AnswersOpen),
		VideosOpen:       boolOr(q.VideosOpen, defaults.VideosOpen),
		LevelsOpen:       boolOr(q.LevelsOpen, defaults.LevelsOpen),
		MaxVideos:        q.MaxVideos,
		Policy:           s.policy,
		Open:             render.ParseOpen(q.Open),
	}

	req := questionsQuery{Map: q.Map, Page: q.Page, Concept: q.Concept, Question: q.Question}.request()
	var buf bytes.Buffer
	questions, err := s.resolver.Resolve(r.Context(), req)
	if err != nil {
		slog.Warn("question bank unavailable", "map", q.Map, "page", q.Page, "error", err)
		err = s.renderer.QuestionBankError(&buf, err)
	} else {
		err = s.renderer.QuestionBank(&buf, questions, opts)
	}
	if err != nil {
		slog.Error("failed to render question bank", "map", q.Map, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render questions")
		return
	}
	writeTagged(w, r, htmlContentType, buf.Bytes())
}

func (s *Server) handleExamBrowser(w http.ResponseWriter, r *http.Request) {
	var q examBrowserQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	opts := render.ExamBrowserOptions{URL: q.URL, Title: q.Title}
	if ref := q.transcriptRef(); ref != "" {
		opts.Transcript, opts.TranscriptErr = s.transcripts.Load(r.Context(), ref, q.Page)
		if opts.TranscriptErr != nil {
			slog.Warn("transcript unavailable", "transcript", ref, "page", q.Page, "error", opts.TranscriptErr)
			opts.Transcript = nil
		}
	}

	var buf bytes.Buffer
	if err := s.renderer.ExamBrowser(&buf, opts); err != nil {
		slog.Error("failed to render exam browser", "url", q.URL, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render exam browser")
		return
	}
	writeTagged(w, r, htmlContentType, buf.Bytes())
}

func (s *Server) handleCallout(w http.ResponseWriter, r *http.Request) {
	var q calloutQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := s.renderer.ProTip(&buf, q.Type, q.Content); err != nil {
		slog.Error("failed to render callout", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render callout")
		return
	}
	writeTagged(w, r, htmlContentType, buf.Bytes())
}

func (s *Server) handleProfessor(w http.ResponseWriter, r *http.Request) {
	var q calloutQuery
	if err := bindQuery(r.URL.Query(), &q); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var buf bytes.Buffer
	if err := s.renderer.AsAProfessor(&buf, q.Content); err != nil {
		slog.Error("failed to render professor aside", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to render professor aside")
		return
	}
	writeTagged(w, r, htmlContentType, buf.Bytes())
}

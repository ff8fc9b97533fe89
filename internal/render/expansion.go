package render

import (
	"strings"

	"github.com/p-n-ai/pai-textbook/internal/curriculum"
)

// Sections of a question that can be expanded. Answer levels use their
// level key, e.g. "answer_kindergarten".
const (
	SectionAnswer = "answer"
	SectionVideos = "videos"
)

// ExpansionKey names one collapsible section of one question.
type ExpansionKey struct {
	Question string
	Section  string
}

// Expansion records which sections are open. Missing keys are closed.
type Expansion map[ExpansionKey]bool

// IsOpen reports whether the section is open.
func (e Expansion) IsOpen(question, section string) bool {
	return e[ExpansionKey{Question: question, Section: section}]
}

// Toggle flips the section and returns its new state.
func (e Expansion) Toggle(question, section string) bool {
	k := ExpansionKey{Question: question, Section: section}
	e[k] = !e[k]
	return e[k]
}

// Open marks the section open.
func (e Expansion) Open(question, section string) {
	e[ExpansionKey{Question: question, Section: section}] = true
}

// InitialExpansion returns the starting state for questions: main answers
// follow AnswersOpen, video lists open with VideosOpen when the question has
// videos, and each present answer level opens with LevelsOpen. Keys listed in
// opts.Open are opened on top of that.
func InitialExpansion(questions []curriculum.Question, opts QuestionBankOptions) Expansion {
	e := make(Expansion)
	for i, q := range questions {
		key := q.Key(i)
		e[ExpansionKey{Question: key, Section: SectionAnswer}] = opts.AnswersOpen
		if opts.VideosOpen && len(q.ExampleVideos) > 0 {
			e.Open(key, SectionVideos)
		}
		if opts.LevelsOpen {
			for _, l := range curriculum.Levels {
				if q.LevelAnswer(l) != "" {
					e.Open(key, l.Key)
				}
			}
		}
	}
	for _, k := range opts.Open {
		e[k] = true
	}
	return e
}

// ParseOpen reads a comma-separated list of question:section pairs, as sent
// in the open query parameter. Malformed pairs are skipped.
func ParseOpen(s string) []ExpansionKey {
	var keys []ExpansionKey
	for _, part := range strings.Split(s, ",") {
		q, section, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || q == "" || section == "" {
			continue
		}
		keys = append(keys, ExpansionKey{Question: q, Section: section})
	}
	return keys
}

package curriculum

import "strconv"

// ConceptMap is the top-level question-bank document. Exactly one of its
// shapes applies; see shapeOf.
type ConceptMap struct {
	Categories []Category `yaml:"concept_map" json:"concept_map,omitempty"`
}

// Category groups concepts under a heading.
type Category struct {
	Name     string    `yaml:"name" json:"name"`
	Concepts []Concept `yaml:"concepts" json:"concepts"`
}

// Concept references the question files that exercise it, in display order.
type Concept struct {
	Name          string   `yaml:"name" json:"name"`
	ExamQuestions []string `yaml:"exam_questions" json:"exam_questions"`
}

// QuestionRef is the legacy indirection to a question document.
type QuestionRef struct {
	File string `yaml:"file" json:"file"`
}

// VocabItem is a term and the definition shown when hovering it.
type VocabItem struct {
	Word       string `yaml:"word" json:"word"`
	Definition string `yaml:"definition" json:"definition"`
}

// Question is a single quiz item with graded answer variants.
type Question struct {
	ID            string      `yaml:"id" json:"id"`
	Question      string      `yaml:"question" json:"question"`
	Answer        string      `yaml:"answer" json:"answer,omitempty"`
	ExampleVideos []string    `yaml:"example_videos" json:"example_videos,omitempty"`
	Topics        []string    `yaml:"topics" json:"topics,omitempty"`
	VocabAnswer   []VocabItem `yaml:"vocab_answer" json:"vocab_answer,omitempty"`

	AnswerKindergarten  string `yaml:"answer_kindergarten" json:"answer_kindergarten,omitempty"`
	AnswerThirdGrade    string `yaml:"answer_3rd_grade" json:"answer_3rd_grade,omitempty"`
	AnswerSeventhGrade  string `yaml:"answer_7th_grade" json:"answer_7th_grade,omitempty"`
	AnswerHighSchool    string `yaml:"answer_high_school" json:"answer_high_school,omitempty"`
	AnswerUndergraduate string `yaml:"answer_undergraduate" json:"answer_undergraduate,omitempty"`

	VocabKindergarten  []VocabItem `yaml:"vocab_kindergarten" json:"vocab_kindergarten,omitempty"`
	VocabThirdGrade    []VocabItem `yaml:"vocab_3rd_grade" json:"vocab_3rd_grade,omitempty"`
	VocabSeventhGrade  []VocabItem `yaml:"vocab_7th_grade" json:"vocab_7th_grade,omitempty"`
	VocabHighSchool    []VocabItem `yaml:"vocab_high_school" json:"vocab_high_school,omitempty"`
	VocabUndergraduate []VocabItem `yaml:"vocab_undergraduate" json:"vocab_undergraduate,omitempty"`
}

// Key identifies a question within a rendered list: its ID, or its position
// when the ID is missing.
func (q Question) Key(index int) string {
	if q.ID != "" {
		return q.ID
	}
	return strconv.Itoa(index)
}

// Level is one of the progressively simpler answer variants.
type Level struct {
	Key   string // answer field name, e.g. "answer_kindergarten"
	Label string
}

// VocabKey is the field name of the vocabulary list paired with the level.
func (l Level) VocabKey() string {
	return "vocab_" + l.Key[len("answer_"):]
}

// Levels lists the answer variants in display order, simplest first.
var Levels = []Level{
	{Key: "answer_kindergarten", Label: "🧸 Tell Me Like I'm 5"},
	{Key: "answer_3rd_grade", Label: "📚 A little bit harder please..."},
	{Key: "answer_7th_grade", Label: "🤔 Even harder!"},
	{Key: "answer_high_school", Label: "🎓 I want to impress people"},
	{Key: "answer_undergraduate", Label: "🧠 I want to go to grad school"},
}

// LevelAnswer returns the answer text for level, or "" when absent.
func (q Question) LevelAnswer(l Level) string {
	switch l.Key {
	case "answer_kindergarten":
		return q.AnswerKindergarten
	case "answer_3rd_grade":
		return q.AnswerThirdGrade
	case "answer_7th_grade":
		return q.AnswerSeventhGrade
	case "answer_high_school":
		return q.AnswerHighSchool
	case "answer_undergraduate":
		return q.AnswerUndergraduate
	}
	return ""
}

// LevelVocab returns the vocabulary paired with level.
func (q Question) LevelVocab(l Level) []VocabItem {
	switch l.Key {
	case "answer_kindergarten":
		return q.VocabKindergarten
	case "answer_3rd_grade":
		return q.VocabThirdGrade
	case "answer_7th_grade":
		return q.VocabSeventhGrade
	case "answer_high_school":
		return q.VocabHighSchool
	case "answer_undergraduate":
		return q.VocabUndergraduate
	}
	return nil
}

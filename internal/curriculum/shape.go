package curriculum

import "gopkg.in/yaml.v3"

// shape is the recognized layout of a concept-map document.
type shape int

const (
	shapeUnknown shape = iota
	shapeConceptMap
	shapeQuestionRefs
	shapeInlineQuestions
)

func (s shape) String() string {
	switch s {
	case shapeConceptMap:
		return "concept_map"
	case shapeQuestionRefs:
		return "question_refs"
	case shapeInlineQuestions:
		return "inline_questions"
	default:
		return "unknown"
	}
}

// rawMap captures only what shape detection needs. Pointers distinguish a
// missing field from an empty list.
type rawMap struct {
	ConceptMap *[]Category  `yaml:"concept_map"`
	Questions  *[]yaml.Node `yaml:"questions"`
}

// shapeRules are checked in order; the first match wins.
var shapeRules = []struct {
	shape shape
	match func(rawMap) bool
}{
	{shapeConceptMap, func(m rawMap) bool { return m.ConceptMap != nil }},
	{shapeQuestionRefs, func(m rawMap) bool {
		return m.Questions != nil && len(*m.Questions) > 0 && firstHasFile(*m.Questions)
	}},
	{shapeInlineQuestions, func(m rawMap) bool { return m.Questions != nil }},
}

func shapeOf(m rawMap) shape {
	for _, r := range shapeRules {
		if r.match(m) {
			return r.shape
		}
	}
	return shapeUnknown
}

func firstHasFile(nodes []yaml.Node) bool {
	var ref QuestionRef
	if err := nodes[0].Decode(&ref); err != nil {
		return false
	}
	return ref.File != ""
}

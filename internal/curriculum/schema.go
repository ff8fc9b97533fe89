package curriculum

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const vocabListSchema = `{
	"type": ["array", "null"],
	"items": {
		"type": "object",
		"required": ["word", "definition"],
		"properties": {
			"word": {"type": "string", "minLength": 1},
			"definition": {"type": "string"}
		}
	}
}`

var questionSchema = gojsonschema.NewStringLoader(`{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["question"],
	"properties": {
		"id": {"type": ["string", "integer"]},
		"question": {"type": "string", "minLength": 1},
		"answer": {"type": ["string", "null"]},
		"example_videos": {"type": ["array", "null"], "items": {"type": "string"}},
		"topics": {"type": ["array", "null"], "items": {"type": "string"}},
		"answer_kindergarten": {"type": ["string", "null"]},
		"answer_3rd_grade": {"type": ["string", "null"]},
		"answer_7th_grade": {"type": ["string", "null"]},
		"answer_high_school": {"type": ["string", "null"]},
		"answer_undergraduate": {"type": ["string", "null"]},
		"vocab_answer": ` + vocabListSchema + `,
		"vocab_kindergarten": ` + vocabListSchema + `,
		"vocab_3rd_grade": ` + vocabListSchema + `,
		"vocab_7th_grade": ` + vocabListSchema + `,
		"vocab_high_school": ` + vocabListSchema + `,
		"vocab_undergraduate": ` + vocabListSchema + `
	}
}`)

// SchemaError lists every violation found in a question document.
type SchemaError struct {
	Violations []string
}

func (e *SchemaError) Error() string {
	return "question schema: " + strings.Join(e.Violations, "; ")
}

// ValidateQuestion checks a decoded question document against the question
// schema. It returns *SchemaError when the document is invalid.
func ValidateQuestion(record map[string]any) error {
	result, err := gojsonschema.Validate(questionSchema, gojsonschema.NewGoLoader(record))
	if err != nil {
		return fmt.Errorf("validating question: %w", err)
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		violations = append(violations, e.String())
	}
	return &SchemaError{Violations: violations}
}

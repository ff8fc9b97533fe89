package curriculum

import (
	"errors"
	"testing"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		record  map[string]any
		wantErr bool
	}{
		{
			name:   "minimal",
			record: map[string]any{"question": "Why?"},
		},
		{
			name: "full",
			record: map[string]any{
				"id":                  "Q1",
				"question":            "Why?",
				"answer":              "Because.",
				"example_videos":      []any{"https://youtu.be/dQw4w9WgXcQ"},
				"topics":              []any{"cells"},
				"vocab_answer":        []any{map[string]any{"word": "cell", "definition": "unit of life"}},
				"answer_kindergarten": "Tiny blocks.",
			},
		},
		{
			name:   "numeric id",
			record: map[string]any{"id": 3, "question": "Why?"},
		},
		{
			name:    "missing question",
			record:  map[string]any{"id": "Q1"},
			wantErr: true,
		},
		{
			name:    "vocab without definition",
			record:  map[string]any{"question": "Why?", "vocab_3rd_grade": []any{map[string]any{"word": "cell"}}},
			wantErr: true,
		},
		{
			name:    "topics not a list",
			record:  map[string]any{"question": "Why?", "topics": "cells"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.record)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateQuestion() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				var se *SchemaError
				if !errors.As(err, &se) || len(se.Violations) == 0 {
					t.Errorf("error = %v, want *SchemaError with violations", err)
				}
			}
		})
	}
}

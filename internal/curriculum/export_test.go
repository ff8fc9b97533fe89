package curriculum

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX(t *testing.T) {
	questions := []Question{
		{
			ID:                 "Q1",
			Question:           "What is a cell?",
			Answer:             "The unit of life.",
			Topics:             []string{"biology", "cells"},
			AnswerKindergarten: "A tiny building block.",
		},
		{Question: "No id here"},
	}

	data, err := ExportXLSX(questions)
	if err != nil {
		t.Fatalf("ExportXLSX() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader() error = %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Questions")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3 (header + 2)", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][5] != "answer_kindergarten" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Q1" || rows[1][3] != "biology, cells" || rows[1][5] != "A tiny building block." {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "1" {
		t.Errorf("row 2 id = %q, want positional key 1", rows[2][0])
	}
	if names := f.GetSheetList(); len(names) != 1 {
		t.Errorf("sheets = %v, want only Questions", names)
	}
}

func TestLevels(t *testing.T) {
	q := Question{
		AnswerThirdGrade: "third",
		VocabThirdGrade:  []VocabItem{{Word: "cell", Definition: "unit"}},
	}
	if len(Levels) != 5 {
		t.Fatalf("Levels = %d, want 5", len(Levels))
	}
	if Levels[0].Key != "answer_kindergarten" || Levels[4].Key != "answer_undergraduate" {
		t.Errorf("Levels order = %v", Levels)
	}
	l := Levels[1]
	if l.VocabKey() != "vocab_3rd_grade" {
		t.Errorf("VocabKey() = %q", l.VocabKey())
	}
	if q.LevelAnswer(l) != "third" || len(q.LevelVocab(l)) != 1 {
		t.Errorf("LevelAnswer/LevelVocab did not return third grade fields")
	}
	if q.LevelAnswer(Levels[0]) != "" || q.LevelVocab(Levels[0]) != nil {
		t.Errorf("absent level should be empty")
	}
}

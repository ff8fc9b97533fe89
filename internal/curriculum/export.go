package curriculum

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Questions"

// ExportXLSX writes one row per question: id, prompt, answer, topics, videos
// and every answer level.
func ExportXLSX(questions []Question) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	headers := []string{"ID", "Question", "Answer", "Topics", "Example Videos"}
	for _, l := range Levels {
		headers = append(headers, l.Key)
	}
	if err := writeRow(f, 1, headers); err != nil {
		return nil, err
	}

	for i, q := range questions {
		row := []string{
			q.Key(i),
			q.Question,
			q.Answer,
			strings.Join(q.Topics, ", "),
			strings.Join(q.ExampleVideos, "\n"),
		}
		for _, l := range Levels {
			row = append(row, q.LevelAnswer(l))
		}
		if err := writeRow(f, i+2, row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(exportSheet, cell, v); err != nil {
			return fmt.Errorf("setting %s: %w", cell, err)
		}
	}
	return nil
}

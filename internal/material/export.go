package material

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetQuizzes    = "Quizzes"
	sheetFlashcards = "Flashcards"
	sheetNotes      = "Notes"
)

// ExportSummary counts what ExportWorkbook wrote.
type ExportSummary struct {
	Questions int
	Cards     int
	Notes     int
	Skipped   int
}

// ExportWorkbook writes quizzes, flashcard decks and notes to an xlsx
// workbook, one sheet per kind and one row per question, card or note.
// Uploaded PDFs are skipped.
func ExportWorkbook(items []SavedMaterial, w io.Writer) (ExportSummary, error) {
	f := excelize.NewFile()
	defer f.Close()

	var sum ExportSummary
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return sum, fmt.Errorf("create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []any
	}{
		{sheetQuizzes, []any{"Subject", "Topic", "Grade", "Title", "No.", "Question", "Options", "Answer", "Explanation"}},
		{sheetFlashcards, []any{"Subject", "Topic", "Grade", "Title", "Front", "Back"}},
		{sheetNotes, []any{"Subject", "Topic", "Grade", "Title", "Notes"}},
	}
	for _, s := range sheets {
		if _, err := f.NewSheet(s.name); err != nil {
			return sum, fmt.Errorf("create sheet %s: %w", s.name, err)
		}
		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return sum, err
		}
		if err := f.SetRowStyle(s.name, 1, 1, bold); err != nil {
			return sum, err
		}
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(0)

	rows := map[string]int{sheetQuizzes: 1, sheetFlashcards: 1, sheetNotes: 1}
	put := func(sheet string, values []any) error {
		rows[sheet]++
		cell, err := excelize.CoordinatesToCellName(1, rows[sheet])
		if err != nil {
			return err
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	for _, m := range items {
		base := []any{m.SubjectName, m.Topic, int(m.Grade), m.Title}
		switch m.Kind {
		case KindQuiz:
			for n, q := range m.Content.Questions {
				answer := ""
				if q.CorrectAnswerIndex >= 0 && q.CorrectAnswerIndex < len(q.Options) {
					answer = q.Options[q.CorrectAnswerIndex]
				}
				row := append(append([]any{}, base...), n+1, q.Question, optionList(q.Options), answer, q.Explanation)
				if err := put(sheetQuizzes, row); err != nil {
					return sum, err
				}
				sum.Questions++
			}
		case KindFlashcard:
			for _, c := range m.Content.Cards {
				if err := put(sheetFlashcards, append(append([]any{}, base...), c.Front, c.Back)); err != nil {
					return sum, err
				}
				sum.Cards++
			}
		case KindNote:
			if err := put(sheetNotes, append(append([]any{}, base...), m.Content.Text)); err != nil {
				return sum, err
			}
			sum.Notes++
		default:
			sum.Skipped++
		}
	}

	if err := f.Write(w); err != nil {
		return sum, fmt.Errorf("write workbook: %w", err)
	}
	return sum, nil
}

func optionList(opts []string) string {
	out := ""
	for i, o := range opts {
		if i > 0 {
			out += "\n"
		}
		out += fmt.Sprintf("%c) %s", 'A'+i, o)
	}
	return out
}

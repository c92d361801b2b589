package material

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

var setsClass = Classification{SubjectID: "math", SubjectName: "Mathematics", Topic: "Sets", Grade: 10}

func TestImportPDF(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	body := []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n%%EOF\n")

	m, err := ImportPDF(ctx, s, "/tmp/past-paper.pdf", bytes.NewReader(body), setsClass)
	require.NoError(t, err)
	assert.Equal(t, KindPDF, m.Kind)
	assert.Equal(t, "past-paper.pdf", m.Title)

	saved, ok := s.Get(ctx, m.ID)
	require.True(t, ok)
	raw, err := DecodePDF(saved)
	require.NoError(t, err)
	assert.Equal(t, body, raw)
}

func TestImportPDF_Rejects(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		file string
		data []byte
	}{
		{"wrong extension", "notes.docx", []byte("%PDF-1.4")},
		{"not a pdf", "fake.pdf", []byte("hello, this is plain text")},
		{"empty", "empty.pdf", nil},
		{"too large", "big.pdf", append([]byte("%PDF-1.4\n"), bytes.Repeat([]byte("x"), MaxUploadBytes)...)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportPDF(ctx, s, tt.file, bytes.NewReader(tt.data), setsClass)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}
	assert.Empty(t, s.List(ctx))
}

type fakeGenerator struct {
	quiz  []QuizQuestion
	notes string
	cards []Flashcard
	err   error
	calls int
}

func (f *fakeGenerator) GenerateQuiz(context.Context, string, string, syllabus.Grade) ([]QuizQuestion, error) {
	f.calls++
	return f.quiz, f.err
}

func (f *fakeGenerator) GenerateStudyNotes(context.Context, string, string, syllabus.Grade) (string, error) {
	f.calls++
	return f.notes, f.err
}

func (f *fakeGenerator) GenerateFlashcards(context.Context, string, string, syllabus.Grade) ([]Flashcard, error) {
	f.calls++
	return f.cards, f.err
}

func TestRegenerate(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	orig := SavedMaterial{ID: "f1", Kind: KindFlashcard, SubjectID: "math", SubjectName: "Mathematics", Topic: "Sets",
		Content: FlashcardContent([]Flashcard{{Front: "old", Back: "old"}})}
	require.NoError(t, s.Save(ctx, orig))

	gen := &fakeGenerator{cards: []Flashcard{{Front: "Union", Back: "A ∪ B"}}}
	r := &Regenerator{Store: s, Generator: gen}

	updated, err := r.Regenerate(ctx, orig)
	require.NoError(t, err)
	assert.Equal(t, "Union", updated.Content.Cards[0].Front)
	assert.Equal(t, 1, gen.calls)
}

func TestRegenerate_Refusals(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	n := note("n1", "math", "Sets")
	require.NoError(t, s.Save(ctx, n))

	gen := &fakeGenerator{}
	r := &Regenerator{Store: s, Generator: gen}

	_, err := r.Regenerate(ctx, SavedMaterial{ID: "p", Kind: KindPDF})
	assert.ErrorIs(t, err, ErrNotRegenerable)
	assert.Zero(t, gen.calls)

	_, err = r.Regenerate(ctx, n)
	assert.ErrorIs(t, err, ErrEmptyContent)

	gen.err = errors.New("offline")
	_, err = r.Regenerate(ctx, n)
	assert.EqualError(t, err, "offline")

	kept, _ := s.Get(ctx, "n1")
	assert.Equal(t, n.Content, kept.Content)
}

func TestExportWorkbook(t *testing.T) {
	items := []SavedMaterial{
		{Kind: KindQuiz, SubjectName: "Mathematics", Topic: "Sets", Grade: 10, Title: "Quiz: Sets",
			Content: QuizContent([]QuizQuestion{
				{Question: "Q1", Options: []string{"a", "b"}, CorrectAnswerIndex: 1, Explanation: "e1"},
				{Question: "Q2", Options: []string{"c", "d"}, CorrectAnswerIndex: 0, Explanation: "e2"},
			})},
		{Kind: KindFlashcard, SubjectName: "History", Topic: "Colonisation", Grade: 9, Title: "Flashcards: Colonisation",
			Content: FlashcardContent([]Flashcard{{Front: "1890", Back: "BSAC charter"}})},
		{Kind: KindNote, SubjectName: "Geography", Topic: "Population", Grade: 11, Content: NoteContent("# Population")},
		{Kind: KindPDF, Title: "paper.pdf", Content: PDFContent("JVBERi0=")},
	}

	var buf bytes.Buffer
	sum, err := ExportWorkbook(items, &buf)
	require.NoError(t, err)
	assert.Equal(t, ExportSummary{Questions: 2, Cards: 1, Notes: 1, Skipped: 1}, sum)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Quizzes", "Flashcards", "Notes"}, f.GetSheetList())

	rows, err := f.GetRows("Quizzes")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Question", rows[0][5])
	assert.Equal(t, "Q1", rows[1][5])
	assert.True(t, strings.HasPrefix(rows[1][6], "A) a"))
	assert.Equal(t, "b", rows[1][7])

	cards, err := f.GetRows("Flashcards")
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "BSAC charter", cards[1][5])
}

func TestKindHelpers(t *testing.T) {
	assert.True(t, KindQuiz.Generated())
	assert.False(t, KindPDF.Generated())
	assert.False(t, Kind("video").Valid())
	assert.Equal(t, "Study Notes: Sets", DefaultTitle(KindNote, "Sets"))
	assert.True(t, NoteContent("").Empty(KindNote))
	assert.False(t, QuizContent([]QuizQuestion{{}}).Empty(KindQuiz))
}

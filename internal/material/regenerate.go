package material

import (
	"context"
	"errors"
	"fmt"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// Generator produces fresh content for a subject topic.
type Generator interface {
	GenerateQuiz(ctx context.Context, subject, topic string, grade syllabus.Grade) ([]QuizQuestion, error)
	GenerateStudyNotes(ctx context.Context, subject, topic string, grade syllabus.Grade) (string, error)
	GenerateFlashcards(ctx context.Context, subject, topic string, grade syllabus.Grade) ([]Flashcard, error)
}

var (
	// ErrNotRegenerable is returned for uploaded documents.
	ErrNotRegenerable = errors.New("uploaded documents cannot be regenerated")

	// ErrEmptyContent is returned when the generator produced nothing.
	ErrEmptyContent = errors.New("could not generate new content")
)

// Regenerator replaces a saved material's content with a newly
// generated version of the same kind.
type Regenerator struct {
	Store     Store
	Generator Generator
}

// Regenerate regenerates m and stores the result. It returns the updated
// material as now stored.
func (r *Regenerator) Regenerate(ctx context.Context, m SavedMaterial) (SavedMaterial, error) {
	if !m.Kind.Generated() {
		return m, ErrNotRegenerable
	}

	content, err := Generate(ctx, r.Generator, m.Kind, m.SubjectName, m.Topic, m.Grade)
	if err != nil {
		return m, err
	}
	if content.Empty(m.Kind) {
		return m, ErrEmptyContent
	}
	if err := r.Store.Update(ctx, m.ID, content); err != nil {
		return m, err
	}
	if updated, ok := r.Store.Get(ctx, m.ID); ok {
		return updated, nil
	}
	return m, nil
}

// Generate asks g for one kind of content.
func Generate(ctx context.Context, g Generator, kind Kind, subject, topic string, grade syllabus.Grade) (Content, error) {
	switch kind {
	case KindQuiz:
		qs, err := g.GenerateQuiz(ctx, subject, topic, grade)
		return QuizContent(qs), err
	case KindNote:
		md, err := g.GenerateStudyNotes(ctx, subject, topic, grade)
		return NoteContent(md), err
	case KindFlashcard:
		cs, err := g.GenerateFlashcards(ctx, subject, topic, grade)
		return FlashcardContent(cs), err
	}
	return Content{}, fmt.Errorf("%w: %s", ErrNotRegenerable, kind)
}

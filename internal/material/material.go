// Package material holds saved study materials (quizzes, notes,
// flashcard decks and uploaded PDFs) for offline review.
package material

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/zambezi-learn/zambezi/internal/syllabus"
)

// Kind is the type of a saved material.
type Kind string

const (
	KindQuiz      Kind = "quiz"
	KindNote      Kind = "note"
	KindFlashcard Kind = "flashcard"
	KindPDF       Kind = "pdf"
)

// Kinds lists every kind in display order.
func Kinds() []Kind {
	return []Kind{KindQuiz, KindNote, KindFlashcard, KindPDF}
}

func (k Kind) Valid() bool {
	switch k {
	case KindQuiz, KindNote, KindFlashcard, KindPDF:
		return true
	}
	return false
}

// Label is the human name of the kind.
func (k Kind) Label() string {
	switch k {
	case KindQuiz:
		return "Quiz"
	case KindNote:
		return "Study Notes"
	case KindFlashcard:
		return "Flashcards"
	case KindPDF:
		return "PDF"
	}
	return string(k)
}

// Generated reports whether materials of this kind come from the
// generation service (and so can be regenerated).
func (k Kind) Generated() bool {
	return k == KindQuiz || k == KindNote || k == KindFlashcard
}

// QuizQuestion is one multiple-choice question.
type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation"`
}

// Correct reports whether choice is the right option.
func (q QuizQuestion) Correct(choice int) bool {
	return choice == q.CorrectAnswerIndex
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Content is the payload of a material. Exactly one field is meaningful,
// chosen by the material's Kind: Questions for quizzes, Cards for
// flashcards, Text for notes (markdown) and PDFs (base64).
type Content struct {
	Questions []QuizQuestion
	Cards     []Flashcard
	Text      string
}

func QuizContent(qs []QuizQuestion) Content { return Content{Questions: qs} }
func NoteContent(md string) Content         { return Content{Text: md} }
func FlashcardContent(cs []Flashcard) Content {
	return Content{Cards: cs}
}
func PDFContent(base64Data string) Content { return Content{Text: base64Data} }

// Empty reports whether c carries nothing for kind k.
func (c Content) Empty(k Kind) bool {
	switch k {
	case KindQuiz:
		return len(c.Questions) == 0
	case KindFlashcard:
		return len(c.Cards) == 0
	default:
		return c.Text == ""
	}
}

// SavedMaterial is one stored study artifact with its classification.
type SavedMaterial struct {
	ID          string
	Kind        Kind
	SubjectID   string
	SubjectName string
	Topic       string
	Grade       syllabus.Grade
	Title       string
	Content     Content
	Timestamp   time.Time
}

// DefaultTitle is the title given to a freshly generated material.
func DefaultTitle(k Kind, topic string) string {
	return fmt.Sprintf("%s: %s", k.Label(), topic)
}

// Slot identifies one material slot: a kind within a subject topic.
type Slot struct {
	SubjectID string
	Topic     string
	Kind      Kind
}

func (m SavedMaterial) Slot() Slot {
	return Slot{SubjectID: m.SubjectID, Topic: m.Topic, Kind: m.Kind}
}

// wireMaterial is the persisted shape. Timestamps are unix milliseconds.
type wireMaterial struct {
	ID          string          `json:"id"`
	Type        Kind            `json:"type"`
	SubjectID   string          `json:"subjectId"`
	SubjectName string          `json:"subjectName"`
	Topic       string          `json:"topic"`
	Grade       syllabus.Grade  `json:"grade"`
	Title       string          `json:"title"`
	Content     json.RawMessage `json:"content"`
	Timestamp   int64           `json:"timestamp"`
}

func (m SavedMaterial) MarshalJSON() ([]byte, error) {
	var payload any
	switch m.Kind {
	case KindQuiz:
		payload = nonNil(m.Content.Questions)
	case KindFlashcard:
		payload = nonNil(m.Content.Cards)
	default:
		payload = m.Content.Text
	}
	content, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wireMaterial{
		ID:          m.ID,
		Type:        m.Kind,
		SubjectID:   m.SubjectID,
		SubjectName: m.SubjectName,
		Topic:       m.Topic,
		Grade:       m.Grade,
		Title:       m.Title,
		Content:     content,
		Timestamp:   m.Timestamp.UnixMilli(),
	})
}

func (m *SavedMaterial) UnmarshalJSON(b []byte) error {
	var w wireMaterial
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if !w.Type.Valid() {
		return fmt.Errorf("material %s: unknown type %q", w.ID, w.Type)
	}

	var c Content
	if len(w.Content) > 0 && string(w.Content) != "null" {
		var err error
		switch w.Type {
		case KindQuiz:
			err = json.Unmarshal(w.Content, &c.Questions)
		case KindFlashcard:
			err = json.Unmarshal(w.Content, &c.Cards)
		default:
			err = json.Unmarshal(w.Content, &c.Text)
		}
		if err != nil {
			return fmt.Errorf("material %s content: %w", w.ID, err)
		}
	}

	*m = SavedMaterial{
		ID:          w.ID,
		Kind:        w.Type,
		SubjectID:   w.SubjectID,
		SubjectName: w.SubjectName,
		Topic:       w.Topic,
		Grade:       w.Grade,
		Title:       w.Title,
		Content:     c,
		Timestamp:   time.UnixMilli(w.Timestamp),
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Package viewer shows one study material: a quiz to take, notes to
// read, a flashcard deck to flip through or an uploaded PDF.
package viewer

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
)

// Mode decides whether a finished quiz counts toward progress.
type Mode int

const (
	// Practice scores quizzes into the learner's progress.
	Practice Mode = iota
	// Review replays a saved quiz without scoring.
	Review
)

// body is the kind-specific part of the viewer.
type body interface {
	update(msg tea.KeyMsg) tea.Cmd
	view(width, height int) string
	hints() []layout.KeyHint
}

// ViewerScreen hosts one material.
type ViewerScreen struct {
	m    material.SavedMaterial
	body body
}

var _ screen.Screen = (*ViewerScreen)(nil)
var _ screen.KeyHintProvider = (*ViewerScreen)(nil)

// New opens m. Materials without an id are unsaved generated content.
func New(state *session.State, m material.SavedMaterial, mode Mode) *ViewerScreen {
	v := &ViewerScreen{m: m}
	switch m.Kind {
	case material.KindQuiz:
		v.body = newQuiz(state, m, mode)
	case material.KindNote:
		v.body = newNotes(m)
	case material.KindFlashcard:
		v.body = newDeck(m)
	default:
		v.body = newPDF(m)
	}
	return v
}

func (v *ViewerScreen) Init() tea.Cmd {
	return nil
}

func (v *ViewerScreen) Title() string {
	if v.m.Title != "" {
		return v.m.Title
	}
	return material.DefaultTitle(v.m.Kind, v.m.Topic)
}

func (v *ViewerScreen) KeyHints() []layout.KeyHint {
	return append(v.body.hints(), layout.KeyHint{Key: "Esc", Description: "Close"})
}

func (v *ViewerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v, v.body.update(msg)
	case quizRecordedMsg:
		if q, ok := v.body.(*quiz); ok {
			q.recorded(msg)
		}
	case pdfWrittenMsg:
		if p, ok := v.body.(*pdfInfo); ok {
			p.written(msg)
		}
	}
	return v, nil
}

func (v *ViewerScreen) View(width, height int) string {
	return v.body.view(width, height)
}

package downloads

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/llm"
	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/session/sessiontest"
)

func key(r rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: r, Text: string(r)} }

func seed(t *testing.T, state *session.State, items ...material.SavedMaterial) {
	t.Helper()
	for _, m := range items {
		require.NoError(t, state.Materials.Save(context.Background(), m))
	}
}

func notes(id, topic string) material.SavedMaterial {
	return material.SavedMaterial{
		ID: id, Kind: material.KindNote, SubjectID: "math", SubjectName: "Mathematics", Topic: topic, Grade: 10,
		Title: material.DefaultTitle(material.KindNote, topic), Content: material.NoteContent("# " + topic),
	}
}

func TestEmpty(t *testing.T) {
	state, _ := sessiontest.New(t)
	view := New(state).View(100, 30)

	assert.Contains(t, view, "0 items saved")
	assert.Contains(t, view, "No downloads yet.")
	assert.Contains(t, view, "Generate quizzes, notes, or flashcards to save them here.")
}

func TestListAndOpen(t *testing.T) {
	state, _ := sessiontest.New(t)
	seed(t, state, notes("a", "Sets"), notes("b", "Algebra"))
	s := New(state)

	view := s.View(100, 30)
	assert.Contains(t, view, "2 items saved")
	assert.Contains(t, view, "Study Notes: Algebra")
	assert.Contains(t, view, "Offline")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Study Notes: Algebra", push.Screen.Title())
}

func TestDeleteAsksFirst(t *testing.T) {
	state, _ := sessiontest.New(t)
	seed(t, state, notes("a", "Sets"))
	s := New(state)

	s.Update(key('d'))
	assert.Contains(t, s.View(100, 30), "Are you sure you want to delete this item?")
	_, cmd := s.Update(key('n'))
	assert.Nil(t, cmd)
	assert.Len(t, state.Materials.List(context.Background()), 1)

	s.Update(key('d'))
	_, cmd = s.Update(key('y'))
	require.NotNil(t, cmd)
	s.Update(cmd())
	assert.Empty(t, state.Materials.List(context.Background()))
	assert.Contains(t, s.View(100, 30), "No downloads yet.")
}

func TestRegenerate(t *testing.T) {
	state, mock := sessiontest.New(t, llm.MockText("# Sets\n\nFresh notes."))
	seed(t, state, notes("a", "Sets"))
	s := New(state)

	s.Update(key('r'))
	assert.Contains(t, s.View(100, 30), `Update "Study Notes: Sets"? This will regenerate the content using AI.`)
	_, cmd := s.Update(key('y'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	got, ok := state.Materials.Get(context.Background(), "a")
	require.True(t, ok)
	assert.Equal(t, "# Sets\n\nFresh notes.", got.Content.Text)
	assert.Equal(t, 1, mock.CallCount())

	s.Update(key('r'))
	_, cmd = s.Update(key('y'))
	s.Update(cmd())
	assert.Contains(t, s.View(100, 30), "Failed to update material. Please check your connection.")
	got, _ = state.Materials.Get(context.Background(), "a")
	assert.Equal(t, "# Sets\n\nFresh notes.", got.Content.Text)
}

func TestRegenerateRefusals(t *testing.T) {
	state, mock := sessiontest.New(t)
	pdf := material.SavedMaterial{ID: "p", Kind: material.KindPDF, SubjectID: "math", Topic: "Sets", Title: "paper.pdf",
		Content: material.PDFContent("JVBERi0=")}
	seed(t, state, pdf)
	s := New(state)

	s.Update(key('r'))
	assert.Contains(t, s.View(100, 30), "Uploaded PDFs cannot be updated.")

	seed(t, state, notes("a", "Sets"))
	state.Online = false
	s = New(state)
	s.Update(key('r'))
	assert.Contains(t, s.View(100, 30), "You're offline.")
	assert.Zero(t, mock.CallCount())
}

func TestRegenerateEmptyContent(t *testing.T) {
	state, _ := sessiontest.New(t)
	seed(t, state, notes("a", "Sets"))
	s := New(state)

	s.Update(regeneratedMsg{Err: material.ErrEmptyContent})
	assert.Contains(t, s.View(100, 30), "Could not generate new content. Please try again.")
}

func TestExport(t *testing.T) {
	state, _ := sessiontest.New(t)
	seed(t, state, notes("a", "Sets"))
	s := New(state)
	s.dir = t.TempDir()

	_, cmd := s.Update(key('e'))
	require.NotNil(t, cmd)
	s.Update(cmd())

	assert.Contains(t, s.View(120, 30), "Exported 0 questions, 0 cards and 1 notes")
	_, err := os.Stat(filepath.Join(s.dir, ExportFile))
	assert.NoError(t, err)
}

package subjects

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/session/sessiontest"
)

var (
	down  = tea.KeyPressMsg{Code: tea.KeyDown}
	enter = tea.KeyPressMsg{Code: tea.KeyEnter}
)

func TestTopicsForGrade(t *testing.T) {
	state, _ := sessiontest.New(t)
	sessiontest.SignIn(t, state, 8)
	s := New(state)

	assert.Contains(t, s.View(100, 40), "Grade 8 syllabus")

	_, cmd := s.Update(enter)
	assert.Nil(t, cmd)
	assert.Equal(t, "Mathematics", s.Title())
	view := s.View(100, 40)
	assert.Contains(t, view, "Algebra")
	assert.NotContains(t, view, "Calculus")

	handled, _ := s.HandleBack()
	assert.True(t, handled)
	assert.Equal(t, "Subjects", s.Title())
	handled, _ = s.HandleBack()
	assert.False(t, handled)
}

func TestOpenTopicShowsSavedCount(t *testing.T) {
	state, _ := sessiontest.New(t)
	sessiontest.SignIn(t, state, 10)
	require.NoError(t, state.Materials.Save(context.Background(), material.SavedMaterial{
		ID: "n1", Kind: material.KindNote, SubjectID: "math", SubjectName: "Mathematics", Topic: "Algebra",
		Grade: 10, Content: material.NoteContent("# Algebra"),
	}))
	s := New(state)

	s.Update(enter)
	assert.Contains(t, s.View(100, 40), "1 saved")

	_, cmd := s.Update(enter)
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Mathematics · Algebra", push.Screen.Title())

	s.Update(down)
	_, cmd = s.Update(enter)
	require.NotNil(t, cmd)
	push = cmd().(router.PushScreenMsg)
	assert.Equal(t, "Mathematics · Geometry", push.Screen.Title())
}

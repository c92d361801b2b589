// Package subjects lists the syllabus for the learner's grade.
package subjects

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/presentation"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/screens/topic"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// SubjectsScreen shows the subjects, then the topics of the chosen one.
type SubjectsScreen struct {
	state    *session.State
	subjects components.Menu
	topics   *components.Menu
	subject  syllabus.Subject
}

var _ screen.Screen = (*SubjectsScreen)(nil)
var _ screen.BackHandler = (*SubjectsScreen)(nil)

func New(state *session.State) *SubjectsScreen {
	s := &SubjectsScreen{state: state}
	grade := state.Grade()

	var items []components.MenuItem
	for _, subj := range syllabus.Subjects() {
		n := len(subj.TopicsFor(grade))
		items = append(items, components.MenuItem{
			Label:    subj.Icon.Glyph() + "  " + subj.Name,
			Hint:     fmt.Sprintf("%d topics · %d%% mastery", n, state.Stats.Mastery(subj.ID)),
			Disabled: n == 0,
			Action:   func() tea.Cmd { return s.open(subj) },
		})
	}
	s.subjects = components.NewMenu(items)
	return s
}

func (s *SubjectsScreen) Init() tea.Cmd {
	return nil
}

func (s *SubjectsScreen) Title() string {
	if s.topics != nil {
		return s.subject.Name
	}
	return "Subjects"
}

// HandleBack closes the topic list.
func (s *SubjectsScreen) HandleBack() (bool, tea.Cmd) {
	if s.topics == nil {
		return false, nil
	}
	s.topics = nil
	return true, nil
}

func (s *SubjectsScreen) open(subj syllabus.Subject) tea.Cmd {
	grade := s.state.Grade()
	var items []components.MenuItem
	for _, t := range subj.TopicsFor(grade) {
		saved := len(s.state.Materials.ListForTopic(context.Background(), subj.ID, t.Name))
		hint := ""
		if saved > 0 {
			hint = fmt.Sprintf("%d saved", saved)
		}
		items = append(items, components.MenuItem{
			Label: t.Name,
			Hint:  hint,
			Action: func() tea.Cmd {
				return router.Push(topic.New(s.state, presentation.Topic{
					SubjectID:   subj.ID,
					SubjectName: subj.Name,
					Name:        t.Name,
					Grade:       grade,
				}))
			},
		})
	}
	m := components.NewMenu(items)
	s.subject = subj
	s.topics = &m
	return nil
}

func (s *SubjectsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	var cmd tea.Cmd
	if s.topics != nil {
		*s.topics, cmd = s.topics.Update(kmsg)
		return s, cmd
	}
	s.subjects, cmd = s.subjects.Update(kmsg)
	return s, cmd
}

func (s *SubjectsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SubjectsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	if s.topics == nil {
		b.WriteString(heading.Render("Subjects") + "\n")
		b.WriteString(theme.Hint.Render(s.state.Grade().String()+" syllabus") + "\n\n")
		b.WriteString(s.subjects.View())
	} else {
		b.WriteString(heading.Render(s.subject.Icon.Glyph()+"  "+s.subject.Name) + "\n")
		b.WriteString(theme.Hint.Render("Pick a topic to study") + "\n\n")
		b.WriteString(s.topics.View())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

// Package profile is the three-step profile setup shown after payment.
package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/account"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type savedMsg struct {
	User account.User
	Err  error
}

// ProfileScreen drives an account.ProfileWizard.
type ProfileScreen struct {
	state    *session.State
	wizard   *account.ProfileWizard
	name     components.TextInput
	nickname components.TextInput
	focus    int // 0 name, 1 nickname
	grades   components.Menu
	saving   bool
	errMsg   string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)
var _ screen.BackHandler = (*ProfileScreen)(nil)

func New(state *session.State) *ProfileScreen {
	var u account.User
	if state.User != nil {
		u = *state.User
	}
	s := &ProfileScreen{
		state:    state,
		wizard:   account.NewProfileWizard(u),
		name:     components.NewTextInput("Full name", false, 60),
		nickname: components.NewTextInput("What should we call you? (optional)", false, 30),
	}
	s.name.SetValue(u.Name)
	s.nickname.SetValue(u.Nickname)
	s.nickname.Blur()

	items := make([]components.MenuItem, 0, len(syllabus.Grades()))
	for _, g := range syllabus.Grades() {
		items = append(items, components.MenuItem{
			Label:  g.String(),
			Action: func() tea.Cmd { return s.chooseGrade(g) },
		})
	}
	s.grades = components.NewMenu(items)
	return s
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *ProfileScreen) Title() string {
	return fmt.Sprintf("Profile Setup (%d of 3)", s.wizard.Step())
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	switch s.wizard.Step() {
	case account.StepName:
		return []layout.KeyHint{
			{Key: "Tab", Description: "Next field"},
			{Key: "Enter", Description: "Continue"},
		}
	case account.StepGrade:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Grade"},
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Go to Dashboard"},
		{Key: "Esc", Description: "Back"},
	}
}

// HandleBack moves the wizard back one step.
func (s *ProfileScreen) HandleBack() (bool, tea.Cmd) {
	if s.saving {
		return true, nil
	}
	if s.wizard.Step() == account.StepName {
		return false, nil
	}
	s.wizard.Back()
	s.errMsg = ""
	if s.wizard.Step() == account.StepName {
		return true, s.focusField(0)
	}
	return true, nil
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		s.saving = false
		if msg.Err != nil {
			s.errMsg = "Could not save your profile. Please try again."
			s.state.Log.Error("saving profile", "error", msg.Err)
			return s, nil
		}
		if err := s.state.SetUser(context.Background(), msg.User); err != nil {
			s.state.Log.Warn("saving grade", "error", err)
		}
		return s, func() tea.Msg { return session.RouteMsg{} }

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *ProfileScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.saving {
		return s, nil
	}
	var cmd tea.Cmd
	switch s.wizard.Step() {
	case account.StepName:
		switch msg.String() {
		case "tab", "shift+tab", "down", "up":
			return s, s.focusField(1 - s.focus)
		case "enter":
			if err := s.wizard.SetName(s.name.Value(), s.nickname.Value()); err != nil {
				s.errMsg = message(err)
				return s, nil
			}
			s.errMsg = ""
			s.name.Blur()
			s.nickname.Blur()
			return s, nil
		}
		if s.focus == 0 {
			s.name, cmd = s.name.Update(msg)
		} else {
			s.nickname, cmd = s.nickname.Update(msg)
		}

	case account.StepGrade:
		s.grades, cmd = s.grades.Update(msg)

	case account.StepFinish:
		if msg.String() == "enter" {
			return s, s.save()
		}
	}
	return s, cmd
}

func (s *ProfileScreen) focusField(i int) tea.Cmd {
	s.focus = i
	if i == 0 {
		s.nickname.Blur()
		return s.name.Focus()
	}
	s.name.Blur()
	return s.nickname.Focus()
}

func (s *ProfileScreen) chooseGrade(g syllabus.Grade) tea.Cmd {
	if err := s.wizard.SetGrade(g); err != nil {
		s.errMsg = message(err)
		return nil
	}
	s.errMsg = ""
	return nil
}

func (s *ProfileScreen) save() tea.Cmd {
	s.saving = true
	var u account.User
	if s.state.User != nil {
		u = *s.state.User
	}
	accounts, w := s.state.Accounts, s.wizard
	return func() tea.Msg {
		saved, err := accounts.CompleteProfile(context.Background(), u, w)
		return savedMsg{User: saved, Err: err}
	}
}

func message(err error) string {
	var verr *account.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}

func (s *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	heading := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)

	var b strings.Builder
	b.WriteString(steps(s.wizard.Step()) + "\n\n")
	switch s.wizard.Step() {
	case account.StepName:
		b.WriteString(heading.Render("What's your name?") + "\n\n")
		b.WriteString(theme.Body.Render("Full name") + "\n" + s.name.View() + "\n\n")
		b.WriteString(theme.Body.Render("Nickname") + "\n" + s.nickname.View())

	case account.StepGrade:
		b.WriteString(heading.Render("Which grade are you in?") + "\n")
		b.WriteString(theme.Hint.Render("We'll show topics from your syllabus.") + "\n\n")
		b.WriteString(s.grades.View())

	case account.StepFinish:
		name := s.wizard.Nickname()
		if name == "" {
			name = s.wizard.Name()
		}
		b.WriteString(heading.Render(fmt.Sprintf("You're All Set, %s!", name)) + "\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("We've customized the app for Grade %d.", int(s.wizard.Grade()))) + "\n\n")
		if s.saving {
			b.WriteString(theme.Hint.Render("Saving..."))
		} else {
			b.WriteString(components.Button("Go to Dashboard", true))
		}
	}

	if s.errMsg != "" {
		b.WriteString("\n\n" + theme.ErrorText.Render(s.errMsg))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}

func steps(current int) string {
	parts := make([]string, 0, 3)
	for i := account.StepName; i <= account.StepFinish; i++ {
		style := lipgloss.NewStyle().Foreground(theme.Border)
		if i <= current {
			style = lipgloss.NewStyle().Foreground(theme.Primary)
		}
		parts = append(parts, style.Render("━━━━━━"))
	}
	return strings.Join(parts, " ")
}

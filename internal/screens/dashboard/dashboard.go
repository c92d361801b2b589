// Package dashboard is the home screen of a signed-in learner.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/screens/downloads"
	"github.com/zambezi-learn/zambezi/internal/screens/subjects"
	"github.com/zambezi-learn/zambezi/internal/screens/tutor"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/syllabus"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// DashboardScreen shows progress and the main menu.
type DashboardScreen struct {
	state  *session.State
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

func New(state *session.State) *DashboardScreen {
	d := &DashboardScreen{state: state}
	d.menu = components.NewMenu([]components.MenuItem{
		{Label: "Subjects", Hint: "Quizzes, notes and flashcards", Action: func() tea.Cmd {
			return router.Push(subjects.New(state))
		}},
		{Label: "AI Tutor", Hint: "Ask anything about your syllabus", Action: func() tea.Cmd {
			return router.Push(tutor.New(state, ""))
		}},
		{Label: "Downloads", Hint: "Saved for offline study", Action: func() tea.Cmd {
			return router.Push(downloads.New(state))
		}},
		{Label: "Log out", Action: d.logout},
	})
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		d.menu, cmd = d.menu.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *DashboardScreen) logout() tea.Cmd {
	if err := d.state.Logout(context.Background()); err != nil {
		d.state.Log.Error("logout failed", "error", err)
		d.errMsg = "Could not log out. Please try again."
		return nil
	}
	return func() tea.Msg { return session.RouteMsg{} }
}

func (d *DashboardScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	p := d.state.Stats

	name := "Learner"
	if d.state.User != nil {
		name = d.state.User.DisplayName()
	}
	greeting := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("Welcome back!") + "  " +
		theme.Body.Render(name) + "\n" +
		theme.Hint.Render(fmt.Sprintf("%s syllabus", d.state.Grade()))

	statBox := func(value, label string) string {
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Width((cw-4)/3).
			Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(value) + "\n" +
				theme.Hint.Render(label))
	}
	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		statBox(fmt.Sprintf("%d", p.StreakDays), "Day Streak"),
		statBox(fmt.Sprintf("%d", p.CompletedQuizzes), "Quizzes"),
		statBox(fmt.Sprintf("%d%%", p.AverageScore), "Average Score"),
	)

	var mastery strings.Builder
	mastery.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Subject Mastery") + "\n")
	for _, s := range syllabus.Subjects() {
		bar := components.NewProgressBar(s.Icon.Glyph()+" "+s.Name, float64(p.Mastery(s.ID))/100, true, cw)
		bar.LabelWidth = 22
		mastery.WriteString(bar.View() + "\n")
	}

	sections := []string{greeting, "", stats, "", mastery.String(), d.menu.View()}
	if d.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(d.errMsg))
	}
	content := lipgloss.NewStyle().Width(cw).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, content)
}

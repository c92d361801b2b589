package viewer

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// passMark is the percentage at which a result is praised.
const passMark = 70

type quizRecordedMsg struct{ Err error }

type quiz struct {
	state    *session.State
	m        material.SavedMaterial
	mode     Mode
	current  int
	score    int
	choice   components.MultiChoice
	finished bool
	saveErr  string
}

func newQuiz(state *session.State, m material.SavedMaterial, mode Mode) *quiz {
	q := &quiz{state: state, m: m, mode: mode}
	q.load()
	return q
}

func (q *quiz) questions() []material.QuizQuestion {
	return q.m.Content.Questions
}

func (q *quiz) load() {
	if q.current < len(q.questions()) {
		cur := q.questions()[q.current]
		q.choice = components.NewMultiChoice(cur.Question, cur.Options, cur.CorrectAnswerIndex)
	}
}

func (q *quiz) hints() []layout.KeyHint {
	switch {
	case q.finished:
		return []layout.KeyHint{{Key: "R", Description: "Try again"}, {Key: "Enter", Description: "Done"}}
	case q.choice.Submitted:
		return []layout.KeyHint{{Key: "Enter", Description: q.nextLabel()}}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Choose"}, {Key: "A-D", Description: "Answer"}, {Key: "Enter", Description: "Submit"}}
}

func (q *quiz) nextLabel() string {
	if q.current+1 >= len(q.questions()) {
		return "Finish Quiz"
	}
	return "Next Question"
}

func (q *quiz) update(msg tea.KeyMsg) tea.Cmd {
	if len(q.questions()) == 0 {
		return nil
	}
	if q.finished {
		switch msg.String() {
		case "r", "R":
			q.current, q.score, q.finished, q.saveErr = 0, 0, false, ""
			q.load()
		case "enter":
			return router.Pop
		}
		return nil
	}

	if !q.choice.Submitted {
		q.choice, _ = q.choice.Update(msg)
		if q.choice.Submitted && q.choice.IsCorrect() {
			q.score++
		}
		return nil
	}

	if msg.String() != "enter" {
		return nil
	}
	if q.current+1 < len(q.questions()) {
		q.current++
		q.load()
		return nil
	}
	return q.finish()
}

// finish shows the result and, in practice mode, records it once.
func (q *quiz) finish() tea.Cmd {
	q.finished = true
	if q.mode != Practice {
		return nil
	}
	err := q.state.ApplyQuiz(context.Background(), q.score, len(q.questions()), q.m.SubjectID)
	return func() tea.Msg { return quizRecordedMsg{Err: err} }
}

func (q *quiz) recorded(msg quizRecordedMsg) {
	if msg.Err != nil {
		q.saveErr = "Your score could not be saved."
		q.state.Log.Error("saving quiz result", "error", msg.Err)
	}
}

func (q *quiz) percent() int {
	n := len(q.questions())
	if n == 0 {
		return 0
	}
	return q.score * 100 / n
}

func (q *quiz) view(width, height int) string {
	cw := components.ContentWidth(width)
	n := len(q.questions())
	if n == 0 {
		return components.Centered(theme.Hint.Render("This quiz has no questions."), width, height)
	}

	var b strings.Builder
	if q.finished {
		heading := "Keep Practicing!"
		color := theme.Warning
		if q.percent() >= passMark {
			heading, color = "Great Job!", theme.Success
		}
		b.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(heading) + "\n\n")
		b.WriteString(theme.Body.Render(fmt.Sprintf("You scored %d out of %d in %s.", q.score, n, q.m.SubjectName)) + "\n\n")
		b.WriteString(components.NewProgressBar("", float64(q.score)/float64(n), true, cw-6).View() + "\n")
		if q.mode == Review {
			b.WriteString("\n" + theme.Hint.Render("Review mode: this result is not added to your progress."))
		}
		if q.saveErr != "" {
			b.WriteString("\n" + theme.ErrorText.Render(q.saveErr))
		}
		return components.Centered(components.Card(b.String(), cw), width, height)
	}

	b.WriteString(theme.Hint.Render(fmt.Sprintf("Question %d of %d", q.current+1, n)) + "\n")
	b.WriteString(components.NewProgressBar("", float64(q.current)/float64(n), false, cw-6).View() + "\n\n")
	b.WriteString(q.choice.View())

	if q.choice.Submitted {
		cur := q.questions()[q.current]
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Explanation:") + "\n")
		b.WriteString(theme.Body.Render(cur.Explanation) + "\n\n")
		b.WriteString(components.Button(q.nextLabel(), true))
	}
	return components.Centered(components.Card(b.String(), cw), width, height)
}

// Package tutor is the AI tutor chat.
package tutor

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	"github.com/zambezi-learn/zambezi/internal/gateway"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

const connectionTrouble = "I'm having trouble connecting to the knowledge base. Please check your internet connection or try again later."

// Message is one line of the transcript.
type Message struct {
	ID    string
	Role  string
	Text  string
	Error bool
}

type replyMsg struct {
	seq  int
	text string
	err  error
}

// TutorScreen holds the conversation for as long as it is on the stack.
type TutorScreen struct {
	state   *session.State
	subject string

	messages []Message
	input    components.TextInput
	vp       viewport.Model
	waiting  bool
	seq      int
	cancel   context.CancelFunc
	dirty    bool
}

var _ screen.Screen = (*TutorScreen)(nil)
var _ screen.KeyHintProvider = (*TutorScreen)(nil)
var _ screen.Leaver = (*TutorScreen)(nil)

// New opens a chat. subject may be empty for a general session.
func New(state *session.State, subject string) *TutorScreen {
	welcome := fmt.Sprintf("Hello! I'm your Zambezi AI Tutor. I can help you with your Grade %d studies. What topic are you working on today?", int(state.Grade()))
	return &TutorScreen{
		state:    state,
		subject:  subject,
		messages: []Message{{ID: uuid.NewString(), Role: gateway.RoleModel, Text: welcome}},
		input:    components.NewTextInput("Ask a question about your subjects...", false, 500),
		vp:       viewport.New(viewport.WithWidth(76), viewport.WithHeight(12)),
		dirty:    true,
	}
}

func (s *TutorScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TutorScreen) Title() string {
	if s.subject != "" {
		return "AI Tutor · " + s.subject
	}
	return "AI Tutor"
}

// Leave abandons a reply still in flight.
func (s *TutorScreen) Leave() {
	s.seq++
	s.waiting = false
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *TutorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Messages returns the transcript, welcome line included.
func (s *TutorScreen) Messages() []Message {
	return s.messages
}

func (s *TutorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.seq != s.seq || !s.waiting {
			return s, nil
		}
		s.waiting = false
		s.cancel = nil
		if msg.err != nil {
			s.state.Log.Warn("tutor reply failed", "error", msg.err)
			s.append(gateway.RoleModel, connectionTrouble, true)
			return s, nil
		}
		s.append(gateway.RoleModel, msg.text, false)
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			return s, s.send()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			s.vp, cmd = s.vp.Update(msg)
			return s, cmd
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *TutorScreen) append(role, text string, isErr bool) {
	s.messages = append(s.messages, Message{ID: uuid.NewString(), Role: role, Text: text, Error: isErr})
	s.dirty = true
}

// history is every successful turn since the learner first spoke.
// Error lines and the opening greeting are not sent.
func (s *TutorScreen) history() []gateway.Turn {
	var out []gateway.Turn
	for _, m := range s.messages {
		if m.Error {
			continue
		}
		if len(out) == 0 && m.Role != gateway.RoleUser {
			continue
		}
		out = append(out, gateway.Turn{Role: m.Role, Text: m.Text})
	}
	return out
}

func (s *TutorScreen) send() tea.Cmd {
	text := strings.TrimSpace(s.input.Value())
	if text == "" || s.waiting {
		return nil
	}
	if !s.state.Online {
		return nil
	}

	history := s.history()
	s.append(gateway.RoleUser, text, false)
	s.input.SetValue("")
	s.waiting = true
	s.seq++

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	seq, gw, grade, subject := s.seq, s.state.Gateway, s.state.Grade(), s.subject
	return func() tea.Msg {
		defer cancel()
		reply, err := gw.GenerateTutorReply(ctx, history, text, grade, subject)
		return replyMsg{seq: seq, text: reply, err: err}
	}
}

func (s *TutorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var foot strings.Builder
	switch {
	case !s.state.Online:
		foot.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("You're offline. The tutor needs an internet connection.") + "\n")
	case s.waiting:
		foot.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("Thinking...") + "\n")
	}
	foot.WriteString(s.input.View())
	footer := foot.String()

	vh := max(height-lipgloss.Height(footer)-1, 3)
	if s.vp.Width() != cw || s.vp.Height() != vh {
		s.vp.SetWidth(cw)
		s.vp.SetHeight(vh)
		s.dirty = true
	}
	if s.dirty {
		s.vp.SetContent(s.transcript(cw))
		s.vp.GotoBottom()
		s.dirty = false
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.JoinVertical(lipgloss.Left, s.vp.View(), "", footer))
}

func (s *TutorScreen) transcript(cw int) string {
	you := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	tutor := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	body := lipgloss.NewStyle().Width(cw - 2).Foreground(theme.Text)

	lines := make([]string, 0, len(s.messages)*3)
	for _, m := range s.messages {
		switch {
		case m.Role == gateway.RoleUser:
			lines = append(lines, you.Render("You"))
		default:
			lines = append(lines, tutor.Render("Tutor"))
		}
		text := body.Render(m.Text)
		if m.Error {
			text = theme.ErrorText.Width(cw - 2).Render(m.Text)
		}
		lines = append(lines, "  "+strings.ReplaceAll(text, "\n", "\n  "), "")
	}
	return strings.Join(lines, "\n")
}

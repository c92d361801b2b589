// Package topic is the study page for one syllabus topic: generate,
// save and open quizzes, notes and flashcards, and attach PDFs.
package topic

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/presentation"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/screens/tutor"
	"github.com/zambezi-learn/zambezi/internal/screens/viewer"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type generatedMsg struct {
	Kind material.Kind
	Err  error
}

type savedMsg struct {
	Material material.SavedMaterial
	Err      error
}

type uploadedMsg struct {
	Material material.SavedMaterial
	Err      error
}

// TopicScreen lists one row per material kind.
type TopicScreen struct {
	state     *session.State
	board     *presentation.Board
	kinds     []material.Kind
	cursor    int
	uploading bool
	path      components.TextInput
	status    string
	errMsg    string
}

var _ screen.Screen = (*TopicScreen)(nil)
var _ screen.KeyHintProvider = (*TopicScreen)(nil)
var _ screen.BackHandler = (*TopicScreen)(nil)
var _ screen.Leaver = (*TopicScreen)(nil)

func New(state *session.State, t presentation.Topic) *TopicScreen {
	path := components.NewTextInput("/path/to/past-paper.pdf", false, 0)
	path.Blur()
	return &TopicScreen{
		state: state,
		board: presentation.NewBoard(context.Background(), t, state.Materials, state.Gateway, state.Log),
		kinds: material.Kinds(),
		path:  path,
	}
}

func (s *TopicScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicScreen) Title() string {
	t := s.board.Topic()
	return t.SubjectName + " · " + t.Name
}

// Leave cancels a generation still in flight.
func (s *TopicScreen) Leave() {
	s.board.Leave()
}

// HandleBack closes the upload prompt.
func (s *TopicScreen) HandleBack() (bool, tea.Cmd) {
	if !s.uploading {
		return false, nil
	}
	s.uploading = false
	s.path.Blur()
	return true, nil
}

func (s *TopicScreen) KeyHints() []layout.KeyHint {
	if s.uploading {
		return []layout.KeyHint{{Key: "Enter", Description: "Import PDF"}, {Key: "Esc", Description: "Cancel"}}
	}
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Select"}, {Key: "Enter", Description: "Open"}}
	if s.state.Online {
		hints = append(hints, layout.KeyHint{Key: "G", Description: "Generate"})
	}
	return append(hints,
		layout.KeyHint{Key: "S", Description: "Save"},
		layout.KeyHint{Key: "U", Description: "Upload PDF"},
		layout.KeyHint{Key: "T", Description: "Ask Tutor"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (s *TopicScreen) selected() material.Kind {
	return s.kinds[s.cursor]
}

func (s *TopicScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		switch {
		case errors.Is(msg.Err, presentation.ErrStale):
		case msg.Err != nil:
			s.errMsg = session.UserMessage(msg.Err)
			s.state.Log.Warn("generation failed", "kind", string(msg.Kind), "error", msg.Err)
		default:
			s.status = msg.Kind.Label() + " ready. Press Enter to open or S to save for offline use."
		}
		return s, nil

	case savedMsg:
		if msg.Err != nil {
			s.errMsg = session.UserMessage(msg.Err)
			return s, nil
		}
		s.status = "Saved to Downloads."
		return s, nil

	case uploadedMsg:
		if msg.Err != nil {
			s.errMsg = session.UserMessage(msg.Err)
			return s, nil
		}
		s.uploading = false
		s.path.SetValue("")
		s.path.Blur()
		s.status = fmt.Sprintf("Uploaded %s.", msg.Material.Title)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *TopicScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.uploading {
		if msg.String() == "enter" {
			return s, s.upload()
		}
		var cmd tea.Cmd
		s.path, cmd = s.path.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.kinds)-1 {
			s.cursor++
		}
	case "enter":
		return s, s.open()
	case "g", "G":
		return s, s.generate(s.selected())
	case "q":
		return s, s.generate(material.KindQuiz)
	case "n":
		return s, s.generate(material.KindNote)
	case "f":
		return s, s.generate(material.KindFlashcard)
	case "s", "S":
		return s, s.save()
	case "d", "D":
		if s.board.Slot(s.selected()).State == presentation.GeneratedUnsaved {
			if err := s.board.Discard(s.selected()); err == nil {
				s.status = "Discarded."
			}
		}
	case "u", "U":
		s.clear()
		s.uploading = true
		return s, s.path.Focus()
	case "t", "T":
		t := s.board.Topic()
		return s, router.Push(tutor.New(s.state, t.SubjectName))
	}
	return s, nil
}

func (s *TopicScreen) clear() {
	s.status, s.errMsg = "", ""
}

func (s *TopicScreen) generate(kind material.Kind) tea.Cmd {
	s.clear()
	if !kind.Generated() {
		s.errMsg = "PDFs are uploaded, not generated. Press U to upload one."
		return nil
	}
	run, err := s.board.Start(context.Background(), kind, s.state.Online)
	if err != nil {
		s.errMsg = session.UserMessage(err)
		return nil
	}
	s.cursor = indexOf(s.kinds, kind)
	return func() tea.Msg {
		_, err := run()
		return generatedMsg{Kind: kind, Err: err}
	}
}

func (s *TopicScreen) save() tea.Cmd {
	s.clear()
	kind := s.selected()
	if s.board.Slot(kind).State != presentation.GeneratedUnsaved {
		s.errMsg = "Nothing new to save. Generate content first."
		return nil
	}
	board := s.board
	return func() tea.Msg {
		m, err := board.Save(context.Background(), kind)
		return savedMsg{Material: m, Err: err}
	}
}

func (s *TopicScreen) upload() tea.Cmd {
	path := strings.TrimSpace(s.path.Value())
	if path == "" {
		return nil
	}
	s.clear()
	board := s.board
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return uploadedMsg{Err: &material.ValidationError{Field: "file", Message: "Could not open " + path + "."}}
		}
		defer f.Close()
		m, err := board.Upload(context.Background(), path, f)
		return uploadedMsg{Material: m, Err: err}
	}
}

// open shows unsaved content if there is any, else the saved copy.
func (s *TopicScreen) open() tea.Cmd {
	s.clear()
	kind := s.selected()
	slot := s.board.Slot(kind)
	t := s.board.Topic()

	if slot.State == presentation.GeneratedUnsaved {
		return router.Push(viewer.New(s.state, material.SavedMaterial{
			Kind: kind, SubjectID: t.SubjectID, SubjectName: t.SubjectName, Topic: t.Name, Grade: t.Grade,
			Title: material.DefaultTitle(kind, t.Name), Content: slot.Content,
		}, viewer.Practice))
	}
	if m, ok := s.board.Saved(context.Background(), kind); ok {
		return router.Push(viewer.New(s.state, m, viewer.Practice))
	}
	if s.board.Render(context.Background(), kind, s.state.Online) == presentation.Unavailable {
		s.errMsg = "Not available offline. Connect to generate, or open something you saved."
		return nil
	}
	if kind == material.KindPDF {
		s.uploading = true
		return s.path.Focus()
	}
	return s.generate(kind)
}

func indexOf(kinds []material.Kind, k material.Kind) int {
	for i, kk := range kinds {
		if kk == k {
			return i
		}
	}
	return 0
}

func (s *TopicScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	ctx := context.Background()
	t := s.board.Topic()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(t.Name) + "\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · Grade %d", t.SubjectName, int(t.Grade))) + "\n")
	if !s.state.Online {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Warning).Render("Offline: showing saved materials only.") + "\n")
	}
	b.WriteString("\n")

	for i, kind := range s.kinds {
		b.WriteString(s.row(ctx, kind, i == s.cursor, cw) + "\n")
	}

	if s.uploading {
		b.WriteString("\n" + theme.Body.Render("Path to a PDF (max 2 MiB)") + "\n" + s.path.View() + "\n")
	}
	if s.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Success).Render(s.status))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.ErrorText.Render(s.errMsg))
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		lipgloss.NewStyle().Width(cw).Render(b.String()))
}

func (s *TopicScreen) row(ctx context.Context, kind material.Kind, selected bool, cw int) string {
	slot := s.board.Slot(kind)
	view := s.board.Render(ctx, kind, s.state.Online)

	var state string
	switch {
	case slot.State == presentation.Generating:
		state = lipgloss.NewStyle().Foreground(theme.Accent).Render("Generating...")
	case slot.State == presentation.GeneratedUnsaved:
		state = lipgloss.NewStyle().Foreground(theme.Secondary).Render("Ready · not saved")
	case view == presentation.Unavailable:
		state = theme.Disabled.Render("Not available offline")
	case slot.State == presentation.Saved || view == presentation.ShowSaved:
		state = components.Badge("Saved", lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Success))
	case kind == material.KindPDF:
		state = theme.Hint.Render("Upload a past paper")
	default:
		state = theme.Hint.Render("Generate")
	}

	label := kind.Label()
	prefix := "    "
	style := theme.Unselected
	if selected {
		prefix = "  ▸ "
		style = theme.Selected
	}
	left := style.Render(prefix + label)
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(state)-2, 1)
	return left + strings.Repeat(" ", gap) + state
}

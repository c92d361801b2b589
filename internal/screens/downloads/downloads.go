// Package downloads lists saved materials for offline study.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/router"
	"github.com/zambezi-learn/zambezi/internal/screen"
	"github.com/zambezi-learn/zambezi/internal/screens/viewer"
	"github.com/zambezi-learn/zambezi/internal/session"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// ExportFile is the workbook written by the export action.
const ExportFile = "zambezi-downloads.xlsx"

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmRegenerate
)

type deletedMsg struct {
	ID  string
	Err error
}

type regeneratedMsg struct {
	Material material.SavedMaterial
	Err      error
}

type exportedMsg struct {
	Path    string
	Summary material.ExportSummary
	Err     error
}

// DownloadsScreen lists everything the learner saved, newest first.
type DownloadsScreen struct {
	state   *session.State
	items   []material.SavedMaterial
	cursor  int
	confirm confirmKind
	busy    string
	status  string
	errMsg  string

	// dir receives exported workbooks.
	dir string
}

var _ screen.Screen = (*DownloadsScreen)(nil)
var _ screen.KeyHintProvider = (*DownloadsScreen)(nil)
var _ screen.BackHandler = (*DownloadsScreen)(nil)

func New(state *session.State) *DownloadsScreen {
	s := &DownloadsScreen{state: state, dir: "."}
	s.reload()
	return s
}

func (s *DownloadsScreen) Init() tea.Cmd {
	return nil
}

func (s *DownloadsScreen) Title() string {
	return "Downloads"
}

func (s *DownloadsScreen) reload() {
	s.items = s.state.Materials.List(context.Background())
	if s.cursor >= len(s.items) {
		s.cursor = max(len(s.items)-1, 0)
	}
}

func (s *DownloadsScreen) selected() (material.SavedMaterial, bool) {
	if len(s.items) == 0 {
		return material.SavedMaterial{}, false
	}
	return s.items[s.cursor], true
}

// HandleBack dismisses an open confirmation.
func (s *DownloadsScreen) HandleBack() (bool, tea.Cmd) {
	if s.confirm == confirmNone {
		return false, nil
	}
	s.confirm = confirmNone
	return true, nil
}

func (s *DownloadsScreen) KeyHints() []layout.KeyHint {
	if s.confirm != confirmNone {
		return []layout.KeyHint{{Key: "Y", Description: "Confirm"}, {Key: "N", Description: "Cancel"}}
	}
	if len(s.items) == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Open"},
		{Key: "D", Description: "Delete"},
	}
	if m, ok := s.selected(); ok && s.canRegenerate(m) {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Update"})
	}
	return append(hints, layout.KeyHint{Key: "E", Description: "Export"}, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *DownloadsScreen) canRegenerate(m material.SavedMaterial) bool {
	return s.state.Online && m.Kind.Generated()
}

func (s *DownloadsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case deletedMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = session.UserMessage(msg.Err)
			return s, nil
		}
		s.reload()
		s.status = "Deleted."
		return s, nil

	case regeneratedMsg:
		s.busy = ""
		switch {
		case errors.Is(msg.Err, material.ErrEmptyContent):
			s.errMsg = "Could not generate new content. Please try again."
		case msg.Err != nil:
			s.state.Log.Warn("regenerate failed", "id", msg.Material.ID, "error", msg.Err)
			s.errMsg = "Failed to update material. Please check your connection."
		default:
			s.reload()
			s.status = fmt.Sprintf("Updated %q.", msg.Material.Title)
		}
		return s, nil

	case exportedMsg:
		s.busy = ""
		if msg.Err != nil {
			s.errMsg = "Could not export: " + msg.Err.Error()
			return s, nil
		}
		s.status = fmt.Sprintf("Exported %d questions, %d cards and %d notes to %s.",
			msg.Summary.Questions, msg.Summary.Cards, msg.Summary.Notes, msg.Path)
		return s, nil

	case tea.KeyMsg:
		if s.confirm != confirmNone {
			return s, s.answer(msg.String())
		}
		if s.busy != "" {
			return s, nil
		}
		return s, s.handleKey(msg.String())
	}
	return s, nil
}

func (s *DownloadsScreen) handleKey(key string) tea.Cmd {
	switch key {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
		return nil
	case "down", "j":
		if s.cursor < len(s.items)-1 {
			s.cursor++
		}
		return nil
	case "e", "E":
		return s.export()
	}

	m, ok := s.selected()
	if !ok {
		return nil
	}
	switch key {
	case "enter":
		return router.Push(viewer.New(s.state, m, viewer.Review))
	case "d", "D":
		s.clear()
		s.confirm = confirmDelete
	case "r", "R":
		s.clear()
		switch {
		case !m.Kind.Generated():
			s.errMsg = "Uploaded PDFs cannot be updated."
		case !s.state.Online:
			s.errMsg = "You're offline. Connect to the internet to update materials."
		default:
			s.confirm = confirmRegenerate
		}
	}
	return nil
}

func (s *DownloadsScreen) clear() {
	s.status, s.errMsg = "", ""
}

func (s *DownloadsScreen) answer(key string) tea.Cmd {
	kind := s.confirm
	switch key {
	case "y", "Y", "enter":
		s.confirm = confirmNone
	case "n", "N":
		s.confirm = confirmNone
		return nil
	default:
		return nil
	}

	m, ok := s.selected()
	if !ok {
		return nil
	}
	ctx := context.Background()
	switch kind {
	case confirmDelete:
		s.busy = "Deleting..."
		store := s.state.Materials
		return func() tea.Msg {
			return deletedMsg{ID: m.ID, Err: store.Delete(ctx, m.ID)}
		}
	case confirmRegenerate:
		s.busy = "Updating..."
		regen := s.state.Regenerator
		return func() tea.Msg {
			updated, err := regen.Regenerate(ctx, m)
			return regeneratedMsg{Material: updated, Err: err}
		}
	}
	return nil
}

func (s *DownloadsScreen) export() tea.Cmd {
	s.clear()
	if len(s.items) == 0 {
		return nil
	}
	s.busy = "Exporting..."
	items := append([]material.SavedMaterial(nil), s.items...)
	path := filepath.Join(s.dir, ExportFile)
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return exportedMsg{Err: err}
		}
		sum, err := material.ExportWorkbook(items, f)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return exportedMsg{Path: path, Summary: sum, Err: err}
	}
}

func (s *DownloadsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render("Downloaded Materials") + "\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d items saved", len(s.items))) + "\n\n")

	if len(s.items) == 0 {
		empty := theme.Body.Render("No downloads yet.") + "\n" +
			theme.Hint.Render("Generate quizzes, notes, or flashcards to save them here.")
		b.WriteString(components.Card(empty, cw))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, b.String())
	}

	rows := max(layout.ContentHeight(height)/2-2, 3)
	start := max(min(s.cursor-rows/2, len(s.items)-rows), 0)
	end := min(start+rows, len(s.items))
	for i := start; i < end; i++ {
		b.WriteString(s.row(s.items[i], i == s.cursor, cw) + "\n")
	}

	switch s.confirm {
	case confirmDelete:
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render("Are you sure you want to delete this item?") + "  " + theme.Hint.Render("[y/n]"))
	case confirmRegenerate:
		m, _ := s.selected()
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(
			fmt.Sprintf("Update %q? This will regenerate the content using AI.", m.Title)) + "  " + theme.Hint.Render("[y/n]"))
	}
	if s.busy != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.busy))
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

func (s *DownloadsScreen) row(m material.SavedMaterial, selected bool, cw int) string {
	prefix := "    "
	style := theme.Unselected
	if selected {
		prefix = "  ▸ "
		style = theme.Selected
	}
	badge := components.Badge("Offline", lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Success))
	left := style.Render(prefix + m.Title)
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(badge)-2, 1)

	meta := fmt.Sprintf("%s%s · %s · %s", strings.Repeat(" ", len(prefix)), m.Kind.Label(), m.SubjectName, humanize.Time(m.Timestamp))
	return left + strings.Repeat(" ", gap) + badge + "\n" + theme.Hint.Render(meta)
}

package viewer

import (
	"fmt"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type notes struct {
	m  material.SavedMaterial
	vp viewport.Model
}

func newNotes(m material.SavedMaterial) *notes {
	vp := viewport.New(viewport.WithWidth(76), viewport.WithHeight(16))
	vp.SetContent(m.Content.Text)
	return &notes{m: m, vp: vp}
}

func (n *notes) hints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}, {Key: "PgUp/PgDn", Description: "Page"}}
}

func (n *notes) update(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	n.vp, cmd = n.vp.Update(msg)
	return cmd
}

func (n *notes) view(width, height int) string {
	w := min(width-4, 96)
	if n.vp.Width() != w || n.vp.Height() != height-3 {
		n.vp.SetWidth(w)
		n.vp.SetHeight(max(height-3, 3))
		n.vp.SetContent(lipgloss.NewStyle().Width(w).Render(n.m.Content.Text))
	}
	head := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(n.m.Topic) + "  " +
		theme.Hint.Render(fmt.Sprintf("%s · %3.f%%", n.m.SubjectName, n.vp.ScrollPercent()*100))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, head+"\n\n"+n.vp.View())
}

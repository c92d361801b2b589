package viewer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/material"
	"github.com/zambezi-learn/zambezi/internal/ui/components"
	"github.com/zambezi-learn/zambezi/internal/ui/layout"
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

type deck struct {
	cards   []material.Flashcard
	current int
	flipped bool
}

func newDeck(m material.SavedMaterial) *deck {
	return &deck{cards: m.Content.Cards}
}

func (d *deck) hints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Space", Description: "Flip"}, {Key: "←→", Description: "Prev/Next"}}
}

func (d *deck) update(msg tea.KeyMsg) tea.Cmd {
	if len(d.cards) == 0 {
		return nil
	}
	switch msg.String() {
	case "space", " ", "enter":
		d.flipped = !d.flipped
	case "right", "l", "n":
		if d.current < len(d.cards)-1 {
			d.current++
			d.flipped = false
		}
	case "left", "h", "p":
		if d.current > 0 {
			d.current--
			d.flipped = false
		}
	}
	return nil
}

func (d *deck) view(width, height int) string {
	if len(d.cards) == 0 {
		return components.Centered(theme.Hint.Render("This deck is empty."), width, height)
	}
	cw := components.ContentWidth(width)
	card := d.cards[d.current]

	side, text, color := "Front", card.Front, theme.Primary
	if d.flipped {
		side, text, color = "Back", card.Back, theme.Secondary
	}
	face := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Width(cw).
		Height(9).
		Align(lipgloss.Center, lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Text).Bold(!d.flipped).Render(text))

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("Card %d of %d", d.current+1, len(d.cards))) + "\n")
	b.WriteString(face + "\n")
	b.WriteString(theme.Hint.Render(side + " · tap space to flip"))
	return components.Centered(b.String(), width, height)
}

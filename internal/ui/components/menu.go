package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// MenuItem is one entry in a navigation menu.
type MenuItem struct {
	Label    string
	Hint     string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu. Disabled items are skipped.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

// Current returns the selected item, if any.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		for i := m.Selected - 1; i >= 0; i-- {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "down", "j":
		for i := m.Selected + 1; i < len(m.Items); i++ {
			if !m.Items[i].Disabled {
				m.Selected = i
				break
			}
		}
	case "enter":
		if item, ok := m.Current(); ok && item.Action != nil && !item.Disabled {
			return m, item.Action()
		}
	}
	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		label := item.Label
		if item.Hint != "" {
			label += "  " + theme.Hint.Render(item.Hint)
		}
		switch {
		case item.Disabled:
			s += "    " + theme.Disabled.Render(item.Label) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render("  ▸ ") + theme.Selected.Render(item.Label)
			if item.Hint != "" {
				s += "  " + theme.Hint.Render(item.Hint)
			}
			s += "\n"
		default:
			s += "    " + theme.Unselected.Render(label) + "\n"
		}
	}
	return s
}

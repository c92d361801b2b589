package components

import (
	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// ContentWidth returns the inner width used for cards so that stacked
// boxes align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	return max(30, min(w, 76))
}

// Card wraps content in a rounded border at the given content width.
func Card(content string, cw int) string {
	return theme.Card.Width(cw).Render(content)
}

// Centered places content in the middle of a width x height box.
func Centered(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Badge renders a small inline label.
func Badge(label string, color lipgloss.Style) string {
	return color.Padding(0, 1).Render(label)
}

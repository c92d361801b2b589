package components

import (
	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

// Button renders a call-to-action. Active buttons are filled.
func Button(label string, active bool) string {
	if active {
		return theme.ButtonActive.Render("▸ " + label)
	}
	return theme.ButtonInactive.Render(label)
}

package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zambezi-learn/zambezi/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Leaver is implemented by screens that hold work to cancel when they
// are removed from the stack.
type Leaver interface {
	Leave()
}

// BackHandler is implemented by screens that consume Esc themselves,
// for example to step back inside a wizard. HandleBack reports whether
// it did.
type BackHandler interface {
	HandleBack() (bool, tea.Cmd)
}

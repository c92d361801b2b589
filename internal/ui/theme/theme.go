package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, taken from the flag: green field, copper eagle, red,
// black and orange stripes.
var (
	Primary   = lipgloss.Color("#198A00") // Flag green
	Secondary = lipgloss.Color("#EF7D00") // Orange
	Accent    = lipgloss.Color("#D4A017") // Copper
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#DE2010") // Flag red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1410") // Near black
	BgCard    = lipgloss.Color("#16241C") // Dark green slate
	Border    = lipgloss.Color("#2F4A3A") // Muted green
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim).
			Strikethrough(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)

	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Foreground(TextDim).
			Padding(0, 2)

	BannerSuccess = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Success).
			Bold(true).
			Padding(0, 2)

	BannerWarning = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(Warning).
			Bold(true).
			Padding(0, 2)
)

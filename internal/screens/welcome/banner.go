package welcome

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/zambezi-learn/zambezi/internal/ui/theme"
)

const bannerArt = `
 ███████╗ █████╗ ███╗   ███╗██████╗ ███████╗███████╗██╗
 ╚══███╔╝██╔══██╗████╗ ████║██╔══██╗██╔════╝╚══███╔╝██║
   ███╔╝ ███████║██╔████╔██║██████╔╝█████╗    ███╔╝ ██║
  ███╔╝  ██╔══██║██║╚██╔╝██║██╔══██╗██╔══╝   ███╔╝  ██║
 ███████╗██║  ██║██║ ╚═╝ ██║██████╔╝███████╗███████╗██║
 ╚══════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═════╝ ╚══════╝╚══════╝╚═╝`

const bannerCompact = "Z A M B E Z I"

// RenderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

// flag renders the four vertical stripes.
func flag() string {
	stripe := func(c color.Color) string {
		return lipgloss.NewStyle().Background(c).Render("  ")
	}
	return stripe(theme.Error) + stripe(theme.BgDark) + stripe(theme.Secondary)
}

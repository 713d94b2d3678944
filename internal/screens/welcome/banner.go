package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

const bannerArt = `
 ███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗     ██████╗ ███████╗
 ██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝    ██╔═══██╗██╔════╝
 ███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝     ██║   ██║███████╗
 ╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝      ██║   ██║╚════██║
 ███████║   ██║   ╚██████╔╝██████╔╝   ██║       ╚██████╔╝███████║
 ╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝        ╚═════╝ ╚══════╝`

const bannerCompact = "S T U D Y   O S"

// RenderBanner returns the STUDY OS banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 68 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 68 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

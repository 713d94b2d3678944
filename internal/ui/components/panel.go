package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

// ContentWidth returns the uniform inner width used for stacked cards so
// they visually align.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 4
	if w > 96 {
		w = 96
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content under a heading in a rounded box of width cw.
func Card(heading, content string, cw int) string {
	body := content
	if heading != "" {
		body = theme.SectionHeading.Render(heading) + "\n" + content
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(0, 1).
		Render(body)
}

// Wrap renders text soft-wrapped to width.
func Wrap(text string, width int, fg color.Color) string {
	return lipgloss.NewStyle().Width(width).Foreground(fg).Render(text)
}

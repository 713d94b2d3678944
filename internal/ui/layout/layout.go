// Package layout frames every screen: header bar, content area and the
// key hint footer.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const (
	brand        = "◆ StudyOS"
	hintSep      = "  │  "
	barPadding   = 2
	borderAndPad = 4 + 2*barPadding
)

type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal is below MinWidth x MinHeight.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains of totalHeight between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

func RenderMinSizeMessage(width, height int) string {
	body := fmt.Sprintf("터미널 창이 너무 작습니다.\n\n최소 %d x %d 이상으로\n크기를 조정해 주세요.\n\n현재: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(body))
}

// RenderHeader draws the brand and a breadcrumb for title on the left and
// status flush right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(brand)
	if title != "" {
		left += theme.Hint.Render("  ›  ") + lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-borderAndPad, 0)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// status goes first when the row overflows
		right, gap = "", max(inner-lipgloss.Width(left), 0)
	}

	return bar(left+strings.Repeat(" ", gap)+right, width)
}

// RenderFooter draws the key hints, dropping trailing ones that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	inner := max(width-borderAndPad, 0)

	var b strings.Builder
	for i, h := range hints {
		part := keyStyle.Render(h.Key) + " " + theme.Hint.Render(h.Description)
		if i > 0 {
			part = theme.Hint.Render(hintSep) + part
		}
		if lipgloss.Width(b.String())+lipgloss.Width(part) > inner {
			break
		}
		b.WriteString(part)
	}
	return bar(b.String(), width)
}

// bar boxes a single row, truncating content that would wrap.
func bar(content string, width int) string {
	content = lipgloss.NewStyle().MaxWidth(max(width-borderAndPad, 1)).Render(content)
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, barPadding).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	contentHeight := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/ui/theme"
)

// Entry is one read-only configuration line.
type Entry struct {
	Label string
	Value string
}

// SettingsScreen shows the effective configuration. Values come from the
// environment and flags; nothing is editable here.
type SettingsScreen struct {
	entries []Entry
}

var _ screen.Screen = (*SettingsScreen)(nil)

func New(entries []Entry) *SettingsScreen {
	return &SettingsScreen{entries: entries}
}

func (p *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (p *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *SettingsScreen) View(width, height int) string {
	labelWidth := 0
	for _, e := range p.entries {
		labelWidth = max(labelWidth, lipgloss.Width(e.Label))
	}

	var b strings.Builder
	for _, e := range p.entries {
		pad := strings.Repeat(" ", labelWidth-lipgloss.Width(e.Label))
		value := e.Value
		if value == "" {
			value = theme.Hint.Render("(없음)")
		}
		b.WriteString(fmt.Sprintf("%s%s   %s\n", theme.SectionHeading.Render(e.Label), pad, theme.Body.Render(value)))
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("환경 변수나 .env 파일로 변경할 수 있습니다. (studyos --help)"))

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(b.String())
}

func (p *SettingsScreen) Title() string {
	return "설정"
}

package dashboard

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/screens/weakness"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/theme"
)

const insight = `AI 분석: 이번 주 병리학 점수가 5% 하락했습니다. "염증 반응의 역학" 단원을 중점적으로 복습하는 것을 추천합니다.`

func renderGreeting(due, cw int) string {
	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("좋은 아침입니다, 의대생님")
	sub := theme.Body.Render(fmt.Sprintf("오늘 복습해야 할 카드가 %d개 있습니다.", due))
	return lipgloss.NewStyle().
		Width(cw).
		Padding(0, 1).
		Render(title + "\n" + sub)
}

func renderQueue(items []library.ReviewItem) string {
	var lines []string
	for _, it := range items {
		lines = append(lines, priorityMarker(it.Priority)+" "+theme.Body.Render(it.Title))
		lines = append(lines, "  "+theme.Hint.Render("기한: "+it.Due))
	}
	return strings.Join(lines, "\n")
}

func priorityMarker(p library.Priority) string {
	switch p {
	case library.PriorityHigh:
		return lipgloss.NewStyle().Foreground(theme.Error).Render("●")
	case library.PriorityMedium:
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("●")
	default:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("●")
	}
}

func renderScores(scores []library.SubjectScore, width int) string {
	lines := make([]string, len(scores))
	for i, sc := range scores {
		lines[i] = weakness.RenderScore(sc, width)
	}
	return strings.Join(lines, "\n")
}

func renderInsight(cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Width(cw).
		Padding(0, 1).
		Render(components.Wrap(insight, cw-4, theme.Accent))
}

// renderLLMBanner renders a warning banner when no LLM API key is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Accent).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ API 키가 없어 학습 조교가 응답하지 않습니다 (studyos --help 참고)")
}

// renderUpdateNote renders a dim one-line update notification.
func renderUpdateNote(latestVersion string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(fmt.Sprintf("새 버전 %s 사용 가능 (studyos update)", latestVersion))
}

func joinColumns(left, right string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

// renderPage centers content horizontally at the top of the area.
func renderPage(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

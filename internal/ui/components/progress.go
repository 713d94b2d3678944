package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

// ScoreBar draws a 0-100 score as a block bar followed by the number.
// Scores under Warn are filled in the error color.
type ScoreBar struct {
	Score int
	Width int
	Warn  int
}

func NewScoreBar(score, width int) ScoreBar {
	return ScoreBar{Score: score, Width: width}
}

// WarnBelow returns a copy that highlights scores under threshold.
func (b ScoreBar) WarnBelow(threshold int) ScoreBar {
	b.Warn = threshold
	return b
}

func (b ScoreBar) View() string {
	score := min(max(b.Score, 0), 100)
	suffix := fmt.Sprintf(" %3d", score)

	cells := max(b.Width-len(suffix), 4)
	filled := cells * score / 100

	fill := theme.ProgressFilled
	if score < b.Warn {
		fill = lipgloss.NewStyle().Background(theme.Error)
	}

	return fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		theme.Hint.Render(suffix)
}

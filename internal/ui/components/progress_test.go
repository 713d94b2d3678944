package components

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestScoreBar_Width(t *testing.T) {
	for _, score := range []int{-5, 0, 38, 100, 140} {
		bar := NewScoreBar(score, 30).View()
		if w := lipgloss.Width(bar); w != 30 {
			t.Errorf("score %d: width = %d, want 30", score, w)
		}
	}
}

func TestScoreBar_ClampsScore(t *testing.T) {
	if got := NewScoreBar(140, 30).View(); !strings.Contains(got, "100") {
		t.Errorf("expected clamped score in %q", got)
	}
	if got := NewScoreBar(-5, 30).View(); !strings.Contains(got, "  0") {
		t.Errorf("expected zero score in %q", got)
	}
}

func TestScoreBar_NarrowWidth(t *testing.T) {
	bar := NewScoreBar(50, 2).View()
	if w := lipgloss.Width(bar); w != 8 {
		t.Errorf("width = %d, want minimum bar plus suffix", w)
	}
}

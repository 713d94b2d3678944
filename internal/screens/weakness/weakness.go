// Package weakness shows subject scores and the study aid's analysis of
// the weak ones.
package weakness

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
	"github.com/abhisek/studyos/internal/ui/theme"
)

const analysisTimeout = 90 * time.Second

type analysisReadyMsg struct {
	Text string
}

type Screen struct {
	deps     screens.Deps
	topics   []string
	scores   []library.SubjectScore
	analysis string
	loading  bool
}

var _ screen.Screen = (*Screen)(nil)

// New analyses topics; nil means the dashboard's weak subjects.
func New(deps screens.Deps, topics []string) *Screen {
	if topics == nil {
		topics = library.WeakSubjects()
	}
	return &Screen{
		deps:   deps,
		topics: topics,
		scores: library.SubjectScores(),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.analyze()
}

func (s *Screen) analyze() tea.Cmd {
	s.loading = true
	summarizer, topics := s.deps.Weakness, s.topics
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), analysisTimeout)
		defer cancel()
		return analysisReadyMsg{Text: summarizer.SummarizeWeaknesses(ctx, topics)}
	}
}

func (s *Screen) Title() string {
	return "약점 분석"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "다시 분석"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analysisReadyMsg:
		s.loading = false
		s.analysis = msg.Text
		return s, nil
	case tea.KeyMsg:
		if msg.String() == "r" && !s.loading {
			return s, s.analyze()
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var bars strings.Builder
	for _, sc := range s.scores {
		bars.WriteString(RenderScore(sc, cw-4))
		bars.WriteString("\n")
	}

	var text string
	if s.loading {
		text = theme.Typing.Render("분석 중...")
	} else {
		text = components.Wrap(s.analysis, cw-4, theme.Text)
	}
	heading := fmt.Sprintf("AI 분석: %s", strings.Join(s.topics, ", "))

	content := components.Card("과목별 성취도", strings.TrimRight(bars.String(), "\n"), cw) +
		"\n" + components.Card(heading, text, cw)

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Top).
		Render(content)
}

// RenderScore draws one subject bar; weak subjects get a red label.
func RenderScore(sc library.SubjectScore, width int) string {
	label := fmt.Sprintf("%-8s", sc.Subject)
	if sc.Weak() {
		label = theme.Incorrect.Render(label)
	}
	bar := components.NewScoreBar(sc.Score, width-lipgloss.Width(label)-1).WarnBelow(library.WeakThreshold)
	return label + " " + bar.View()
}

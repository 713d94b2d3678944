// Package quiz runs a generated three-question quiz inside the TUI.
package quiz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/quiz"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
	"github.com/abhisek/studyos/internal/ui/theme"
)

const generateTimeout = 90 * time.Second

// quizReadyMsg carries the generated quiz or the generation error.
type quizReadyMsg struct {
	Quiz *quiz.Quiz
	Err  error
}

// Screen walks through the questions one at a time.
type Screen struct {
	deps  screens.Deps
	topic library.Topic
	view  library.View

	quiz    *quiz.Quiz
	err     error
	current int
	choice  components.Choice
	answers []int
}

var _ screen.Screen = (*Screen)(nil)

func New(deps screens.Deps, topic library.Topic, view library.View) *Screen {
	return &Screen{deps: deps, topic: topic, view: view}
}

func (s *Screen) Init() tea.Cmd {
	gen, topic, view := s.deps.Quiz, s.topic, s.view
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
		defer cancel()
		q, err := gen.Generate(ctx, topic, view)
		return quizReadyMsg{Quiz: q, Err: err}
	}
}

func (s *Screen) Title() string {
	return "퀴즈"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.quiz == nil:
		return []layout.KeyHint{{Key: "Esc", Description: "뒤로"}}
	case s.finished():
		return []layout.KeyHint{
			{Key: "Enter", Description: "학습으로 돌아가기"},
			{Key: "Esc", Description: "뒤로"},
		}
	case s.choice.Answered():
		return []layout.KeyHint{{Key: "Enter", Description: "다음 문제"}}
	default:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "선택"},
			{Key: "1-4", Description: "바로 답하기"},
			{Key: "Enter", Description: "제출"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case quizReadyMsg:
		if msg.Err != nil {
			s.err = msg.Err
			s.deps.Log().Warn("quiz generation failed", "topic_id", s.topic.ID, "error", msg.Err)
			return s, nil
		}
		s.quiz = msg.Quiz
		s.load(0)
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.err != nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.quiz == nil {
		return s, nil
	}
	if s.finished() {
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	if s.choice.Answered() {
		if msg.String() == "enter" {
			s.load(s.current + 1)
		}
		return s, nil
	}

	s.choice, _ = s.choice.Update(msg)
	if s.choice.Answered() {
		s.answers = append(s.answers, s.choice.Picked())
	}
	return s, nil
}

func (s *Screen) load(i int) {
	s.current = i
	if i >= len(s.quiz.Questions) {
		return
	}
	q := s.quiz.Questions[i]
	s.choice = components.NewChoice(q.Text, q.Choices, q.Answer).WithExplanation(q.Explanation)
}

func (s *Screen) finished() bool {
	return s.quiz != nil && s.current >= len(s.quiz.Questions)
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var body string
	switch {
	case s.err != nil:
		body = components.Card("퀴즈를 만들 수 없습니다",
			components.Wrap(s.err.Error(), cw-4, theme.Error)+"\n\n"+theme.Hint.Render("아무 키나 누르면 돌아갑니다."), cw)
	case s.quiz == nil:
		body = components.Card("", theme.Typing.Render(fmt.Sprintf("'%s' 퀴즈를 만드는 중...", s.topic.Title)), cw)
	case s.finished():
		body = s.renderScore(cw)
	default:
		heading := fmt.Sprintf("문제 %d / %d · %s", s.current+1, len(s.quiz.Questions), s.view.Label())
		body = components.Card(heading, s.choice.View(cw-4), cw)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}

func (s *Screen) renderScore(cw int) string {
	score := s.quiz.Score(s.answers)
	total := len(s.quiz.Questions)

	var b strings.Builder
	style := theme.Correct
	if score*2 < total {
		style = theme.Incorrect
	}
	b.WriteString(style.Render(fmt.Sprintf("%d / %d 정답", score, total)))
	b.WriteString("\n\n")
	for i, q := range s.quiz.Questions {
		mark := theme.Correct.Render("O")
		if i >= len(s.answers) || !q.Correct(s.answers[i]) {
			mark = theme.Incorrect.Render("X")
		}
		b.WriteString(fmt.Sprintf("%s %d. %s (정답 %s)\n", mark, i+1, q.Text, quiz.ChoiceLabel(q.Answer)))
	}
	return components.Card(s.topic.Title, b.String(), cw)
}

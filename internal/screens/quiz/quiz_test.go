package quiz

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/logging"
	"github.com/abhisek/studyos/internal/quiz"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screens"
)

type fakeGenerator struct {
	quiz *quiz.Quiz
	err  error
}

func (f fakeGenerator) Generate(context.Context, library.Topic, library.View) (*quiz.Quiz, error) {
	return f.quiz, f.err
}

func sampleQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		TopicID: "t1",
		View:    library.ViewQuestions,
		Questions: []quiz.Question{
			{Text: "Q1", Choices: []string{"a", "b", "c", "d"}, Answer: 1, Explanation: "b because"},
			{Text: "Q2", Choices: []string{"a", "b", "c", "d"}, Answer: 0},
			{Text: "Q3", Choices: []string{"a", "b", "c", "d"}, Answer: 3},
		},
	}
}

func newScreen(gen fakeGenerator) *Screen {
	deps := screens.Deps{Quiz: gen, Logger: logging.Discard()}
	return New(deps, library.Topic{ID: "t1", Title: "심박출량"}, library.ViewQuestions)
}

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestQuizScreen_FullRun(t *testing.T) {
	s := newScreen(fakeGenerator{quiz: sampleQuiz()})
	if !strings.Contains(s.View(100, 30), "만드는 중") {
		t.Error("expected loading view")
	}
	s.Update(s.Init()())

	s.Update(key('2')) // correct
	if !strings.Contains(s.View(100, 30), "b because") {
		t.Error("expected explanation after answering")
	}
	s.Update(enter())

	s.Update(key('3')) // wrong
	s.Update(enter())

	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	s.Update(key('d')) // correct
	s.Update(enter())

	if !s.finished() {
		t.Fatal("expected quiz finished")
	}
	if !strings.Contains(s.View(100, 30), "2 / 3 정답") {
		t.Errorf("unexpected score view:\n%s", s.View(100, 30))
	}

	_, cmd := s.Update(enter())
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestQuizScreen_EnterBeforeAnswerSubmitsSelection(t *testing.T) {
	s := newScreen(fakeGenerator{quiz: sampleQuiz()})
	s.Update(s.Init()())

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(enter())
	if len(s.answers) != 1 || s.answers[0] != 1 {
		t.Errorf("answers = %v, want [1]", s.answers)
	}
}

func TestQuizScreen_Error(t *testing.T) {
	s := newScreen(fakeGenerator{err: errors.New("rate limited")})
	s.Update(s.Init()())

	if !strings.Contains(s.View(100, 30), "rate limited") {
		t.Error("expected error text")
	}
	_, cmd := s.Update(key('x'))
	if cmd == nil {
		t.Fatal("expected pop after error")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestQuizScreen_KeysIgnoredWhileLoading(t *testing.T) {
	s := newScreen(fakeGenerator{quiz: sampleQuiz()})
	if _, cmd := s.Update(key('1')); cmd != nil {
		t.Error("expected no command while loading")
	}
}

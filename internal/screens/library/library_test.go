package library

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/conversation"
	lib "github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/logging"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
)

type nopAsker struct{}

func (nopAsker) Ask(context.Context, string, string) string { return "" }

func testScreen() *Screen {
	return New(screens.Deps{
		Catalog:       lib.DefaultCatalog(),
		Conversations: conversation.NewController(nopAsker{}, conversation.WithLogger(logging.Discard())),
	})
}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestLibrary_ShowsAllTopics(t *testing.T) {
	s := testScreen()
	if s.Subject() != lib.AllSubjects {
		t.Errorf("subject = %q, want %q", s.Subject(), lib.AllSubjects)
	}
	if len(s.Topics()) != len(lib.DefaultCatalog().All()) {
		t.Errorf("topics = %d", len(s.Topics()))
	}
	view := s.View(100, 30)
	// the first rune sits under the cursor
	if !strings.Contains(view, "제 검색...") {
		t.Error("expected search placeholder")
	}
}

func TestLibrary_SubjectTabs(t *testing.T) {
	s := testScreen()

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	subject := s.Subject()
	if subject == lib.AllSubjects {
		t.Fatal("expected a concrete subject after right arrow")
	}
	for _, topic := range s.Topics() {
		if topic.Subject != subject {
			t.Errorf("topic %s has subject %q, want %q", topic.ID, topic.Subject, subject)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Subject() != lib.AllSubjects {
		t.Error("left arrow should return to 전체")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	subjects := lib.DefaultCatalog().Subjects()
	if s.Subject() != subjects[len(subjects)-1] {
		t.Error("left arrow should wrap to the last subject")
	}
}

func TestLibrary_SearchFilters(t *testing.T) {
	s := testScreen()
	typeText(s, "cardiac")

	topics := s.Topics()
	if len(topics) != 1 || topics[0].ID != "t1" {
		t.Fatalf("search results = %+v", topics)
	}

	typeText(s, "zzz")
	if len(s.Topics()) != 0 {
		t.Error("expected no results")
	}
	if !strings.Contains(s.View(100, 30), "검색 결과가 없습니다") {
		t.Error("expected empty-state message")
	}
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("enter on an empty list should do nothing")
	}
}

func TestLibrary_EnterOpensStudy(t *testing.T) {
	s := testScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if push.Screen.Title() != s.Topics()[1].Title {
		t.Errorf("opened %q, want %q", push.Screen.Title(), s.Topics()[1].Title)
	}
	if c, ok := push.Screen.(screen.Closer); ok {
		c.Close()
	}
}

func TestLibrary_CursorBounds(t *testing.T) {
	s := testScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	if s.cursor != 0 {
		t.Errorf("cursor = %d, want 0", s.cursor)
	}
	for i := 0; i < 20; i++ {
		s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	}
	if s.cursor != len(s.Topics())-1 {
		t.Errorf("cursor = %d, want %d", s.cursor, len(s.Topics())-1)
	}
}

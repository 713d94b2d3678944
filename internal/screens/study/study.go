// Package study is the topic study view: content tabs on the left and the
// study-aid chat panel on the right.
package study

import (
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	quizscreen "github.com/abhisek/studyos/internal/screens/quiz"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
)

const (
	// Greeting is the static banner shown above the conversation. It is
	// rendered by the view and never enters the session log.
	Greeting = "안녕하세요! 이 주제에 대해 도와드릴 준비가 되었습니다. 요약이나 퀴즈를 요청해 보세요."

	Thinking        = "생각 중..."
	chatPlaceholder = "이 주제에 대해 질문하세요..."
	panelTitle      = "학습 조교"

	maxQueryLen = 1000
)

// Screen is the study view for one topic.
type Screen struct {
	deps    screens.Deps
	session *conversation.Session

	chatOpen bool
	input    components.TextInput
	waiter   int

	attaching bool
	pathInput components.TextInput
	notice    string
	noticeErr bool
}

var (
	_ screen.Screen  = (*Screen)(nil)
	_ screen.Closer  = (*Screen)(nil)
	_ screen.Resumer = (*Screen)(nil)

	_ screen.EscapeCapturer = (*Screen)(nil)
)

// New opens a conversation session on topic. The session is closed when
// the screen leaves the router stack.
func New(deps screens.Deps, topic library.Topic) *Screen {
	return &Screen{
		deps:     deps,
		session:  deps.Conversations.Open(topic),
		chatOpen: true,
		input:    components.NewTextInput(chatPlaceholder, maxQueryLen),
	}
}

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(
		s.input.Init(),
		waitForChange(s.session.Changes(), s.waiter),
	)
}

// Resume runs when a covering screen such as the quiz is popped. Replies
// that landed meanwhile were routed to that screen, so the input state is
// re-read from the session and a fresh waiter is armed.
func (s *Screen) Resume() tea.Cmd {
	s.input.Disabled = s.session.Pending()
	s.waiter++
	return waitForChange(s.session.Changes(), s.waiter)
}

func (s *Screen) Title() string {
	return s.session.Topic().Title
}

func (s *Screen) Close() {
	s.session.Close()
}

// CapturesEscape keeps Esc on the screen while the attach prompt is open.
func (s *Screen) CapturesEscape() bool {
	return s.attaching
}

// Session exposes the underlying conversation, mainly for tests.
func (s *Screen) Session() *conversation.Session {
	return s.session
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.attaching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "첨부"},
			{Key: "Esc", Description: "취소"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "탭 전환"},
		{Key: "Ctrl+B", Description: "채팅"},
	}
	if s.chatOpen {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: "전송"})
	}
	if s.deps.Catalog != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+F", Description: "PDF 첨부"})
	}
	if s.deps.Quiz != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+Q", Description: "퀴즈"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "뒤로"})
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionChangedMsg:
		s.input.Disabled = s.session.Pending()
		if msg.gen != s.waiter {
			return s, nil
		}
		return s, waitForChange(s.session.Changes(), s.waiter)

	case sessionClosedMsg:
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.attaching {
		return s.handleAttachKey(msg)
	}

	switch msg.String() {
	case "tab":
		s.session.SetView(s.session.View().Next())
		return s, nil
	case "shift+tab":
		s.session.SetView(s.session.View().Prev())
		return s, nil
	case "ctrl+b":
		s.chatOpen = !s.chatOpen
		return s, nil
	case "ctrl+f":
		if s.deps.Catalog == nil {
			return s, nil
		}
		s.attaching = true
		s.pathInput = components.NewTextInput("/path/to/lecture.pdf", 0)
		return s, s.pathInput.Init()
	case "ctrl+q":
		if s.deps.Quiz == nil {
			return s, nil
		}
		q := quizscreen.New(s.deps, s.session.Topic(), s.session.View())
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: q} }
	}

	if !s.chatOpen {
		switch msg.String() {
		case "left", "h":
			s.session.SetView(s.session.View().Prev())
		case "right", "l":
			s.session.SetView(s.session.View().Next())
		}
		return s, nil
	}

	if msg.String() == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit hands the input to the session. Rejected submissions (blank or
// while a reply is pending) leave the input untouched.
func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	if !s.session.Submit(s.input.Value()) {
		return s, nil
	}
	s.input.Reset()
	s.input.Disabled = true
	return s, nil
}

func (s *Screen) handleAttachKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.attaching = false
		return s, nil
	case "enter":
	default:
		var cmd tea.Cmd
		s.pathInput, cmd = s.pathInput.Update(msg)
		return s, cmd
	}

	s.attaching = false
	if s.pathInput.Blank() {
		return s, nil
	}
	s.attach(s.pathInput.Value())
	return s, nil
}

func (s *Screen) attach(path string) {
	topicID := s.session.Topic().ID
	doc, err := s.deps.Catalog.AttachDocument(topicID, path)
	if err != nil {
		s.noticeErr = true
		switch {
		case errors.Is(err, library.ErrNotPDF):
			s.notice = "PDF 파일만 첨부할 수 있습니다."
		default:
			s.notice = fmt.Sprintf("첨부 실패: %v", err)
		}
		s.deps.Log().Warn("attach document failed", "topic_id", topicID, "error", err)
		return
	}

	topic, err := s.deps.Catalog.Get(topicID)
	if err != nil {
		s.noticeErr = true
		s.notice = err.Error()
		return
	}
	s.session.SetTopic(topic)
	s.session.SetView(library.ViewDetail)
	s.noticeErr = false
	s.notice = fmt.Sprintf("%s 첨부됨", doc.Name)
}

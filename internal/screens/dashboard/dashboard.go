// Package dashboard is the home screen: greeting, review queue, subject
// scores and the quick actions.
package dashboard

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/screens/history"
	libraryscreen "github.com/abhisek/studyos/internal/screens/library"
	"github.com/abhisek/studyos/internal/screens/quiz"
	"github.com/abhisek/studyos/internal/screens/settings"
	"github.com/abhisek/studyos/internal/screens/study"
	"github.com/abhisek/studyos/internal/screens/weakness"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
)

// Notices are the optional banners shown under the greeting.
type Notices struct {
	// LLMUnavailable is set when no provider credential was found.
	LLMUnavailable bool
	// LatestVersion is a newer release, if one was found.
	LatestVersion string
}

// Screen is the dashboard.
type Screen struct {
	deps    screens.Deps
	notices Notices
	menu    components.Menu
	queue   []library.ReviewItem
	scores  []library.SubjectScore
}

var _ screen.Screen = (*Screen)(nil)

func New(deps screens.Deps, notices Notices) *Screen {
	s := &Screen{
		deps:    deps,
		notices: notices,
		queue:   library.ReviewQueue(),
		scores:  library.SubjectScores(),
	}

	items := []components.MenuItem{
		{Label: "학습 시작", Action: push(func() screen.Screen {
			return libraryscreen.New(deps)
		})},
		{Label: "약점 집중 공략", Hint: "정답률 낮은 주제 복습 (병리학)", Action: push(func() screen.Screen {
			return weakness.New(deps, nil)
		})},
		{Label: "오답 노트", Hint: "어제 틀린 15문제 다시 풀기", Action: s.openTopic(s.overdueTopic(), library.ViewQuestions)},
		{Label: "실전 모의고사", Hint: "전범위 무작위 20문항 생성", Disabled: deps.Quiz == nil, Action: s.startQuiz()},
		{Label: "사용 기록", Disabled: deps.Events == nil, Action: push(func() screen.Screen {
			return history.New(deps.Events)
		})},
		{Label: "설정", Action: push(func() screen.Screen {
			return settings.New(deps.Settings)
		})},
		{Label: "종료", Action: func() tea.Cmd { return tea.Quit }},
	}
	s.menu = components.NewMenu(items)
	return s
}

func push(build func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		next := build()
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

// overdueTopic is the first review item that is past due, else the head of
// the queue.
func (s *Screen) overdueTopic() string {
	for _, it := range s.queue {
		if it.Due == "어제" {
			return it.TopicID
		}
	}
	if len(s.queue) > 0 {
		return s.queue[0].TopicID
	}
	return ""
}

func (s *Screen) openTopic(id string, view library.View) func() tea.Cmd {
	return func() tea.Cmd {
		topic, err := s.deps.Catalog.Get(id)
		if err != nil {
			s.deps.Log().Warn("review topic missing", "topic_id", id, "error", err)
			return nil
		}
		next := study.New(s.deps, topic)
		next.Session().SetView(view)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *Screen) startQuiz() func() tea.Cmd {
	return func() tea.Cmd {
		if len(s.queue) == 0 {
			return nil
		}
		topic, err := s.deps.Catalog.Get(s.queue[0].TopicID)
		if err != nil {
			return nil
		}
		next := quiz.New(s.deps, topic, library.ViewQuestions)
		return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "홈"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "선택"},
		{Key: "L", Description: "라이브러리"},
		{Key: "W", Description: "약점 분석"},
		{Key: "S", Description: "설정"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "l":
			return s, push(func() screen.Screen { return libraryscreen.New(s.deps) })()
		case "w":
			return s, push(func() screen.Screen { return weakness.New(s.deps, nil) })()
		case "s":
			return s, push(func() screen.Screen { return settings.New(s.deps.Settings) })()
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderGreeting(len(s.queue), cw))
	if s.notices.LLMUnavailable {
		sections = append(sections, renderLLMBanner(cw))
	}
	if s.notices.LatestVersion != "" {
		sections = append(sections, renderUpdateNote(s.notices.LatestVersion, cw))
	}

	if compact {
		sections = append(sections, components.Card("", s.menu.View(), cw))
	} else {
		half := cw / 2
		sections = append(sections, joinColumns(
			components.Card("빠른 실행", s.menu.View(), half),
			components.Card("오늘의 복습 큐(SR)", renderQueue(s.queue), cw-half),
		))
		sections = append(sections, components.Card("과목별 성취도", renderScores(s.scores, cw-4), cw))
		sections = append(sections, renderInsight(cw))
	}

	return renderPage(strings.Join(sections, "\n"), width, height)
}

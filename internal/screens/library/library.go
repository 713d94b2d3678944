// Package library is the topic browser: subject tabs, a search box and
// the topic list.
package library

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	lib "github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/screens/study"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
	"github.com/abhisek/studyos/internal/ui/theme"
)

const searchPlaceholder = "주제 검색..."

type Screen struct {
	deps     screens.Deps
	subjects []string
	subject  int
	search   components.TextInput
	topics   []lib.Topic
	cursor   int
	offset   int
}

var _ screen.Screen = (*Screen)(nil)

func New(deps screens.Deps) *Screen {
	s := &Screen{
		deps:     deps,
		subjects: deps.Catalog.Subjects(),
		search:   components.NewTextInput(searchPlaceholder, 40),
	}
	s.refresh()
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.search.Init()
}

func (s *Screen) Title() string {
	return "라이브러리"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "과목"},
		{Key: "↑↓", Description: "이동"},
		{Key: "Enter", Description: "학습"},
		{Key: "Esc", Description: "뒤로"},
	}
}

// Subject is the active subject filter.
func (s *Screen) Subject() string {
	return s.subjects[s.subject]
}

// Topics is the filtered list as displayed.
func (s *Screen) Topics() []lib.Topic {
	return s.topics
}

func (s *Screen) refresh() {
	s.topics = s.deps.Catalog.Filter(s.Subject(), s.search.Value())
	if s.cursor >= len(s.topics) {
		s.cursor = max(len(s.topics)-1, 0)
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		s.search, cmd = s.search.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "left":
		s.subject = (s.subject - 1 + len(s.subjects)) % len(s.subjects)
		s.refresh()
		return s, nil
	case "right":
		s.subject = (s.subject + 1) % len(s.subjects)
		s.refresh()
		return s, nil
	case "up":
		if s.cursor > 0 {
			s.cursor--
		}
		return s, nil
	case "down":
		if s.cursor < len(s.topics)-1 {
			s.cursor++
		}
		return s, nil
	case "enter":
		if len(s.topics) == 0 {
			return s, nil
		}
		// re-read so a document attached since filtering is visible
		topic, err := s.deps.Catalog.Get(s.topics[s.cursor].ID)
		if err != nil {
			return s, nil
		}
		next := study.New(s.deps, topic)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	before := s.search.Value()
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	if s.search.Value() != before {
		s.cursor = 0
		s.refresh()
	}
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("라이브러리"))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render("학습 자료와 주제 카드를 관리하세요."))
	b.WriteString("\n\n")
	b.WriteString(components.Tabs(s.subjects, s.subject))
	b.WriteString("\n")
	b.WriteString(s.search.View(cw - 2))
	b.WriteString("\n")

	header := b.String()
	const rowHeight = 3
	visible := (height - lipgloss.Height(header) - 1) / rowHeight
	if visible < 1 {
		visible = 1
	}
	s.scrollTo(visible)

	var list strings.Builder
	if len(s.topics) == 0 {
		list.WriteString(theme.Hint.Render("  검색 결과가 없습니다."))
	}
	end := min(s.offset+visible, len(s.topics))
	for i := s.offset; i < end; i++ {
		list.WriteString(renderTopic(s.topics[i], i == s.cursor, cw))
		list.WriteString("\n")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(header + list.String())
}

func (s *Screen) scrollTo(visible int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
}

func renderTopic(t lib.Topic, selected bool, width int) string {
	prefix := "  "
	title := theme.Unselected.Render(t.Title)
	if selected {
		prefix = theme.Selected.Render("▸ ")
		title = theme.Selected.Render(t.Title)
	}
	doc := ""
	if t.HasDocument() {
		doc = " " + theme.Tag.Render("[PDF]")
	}

	bar := components.NewScoreBar(t.Mastery, 28)
	meta := theme.Hint.Render(fmt.Sprintf("%s · %s · %s", t.Subject, t.Professor, t.LastStudied))
	tags := make([]string, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = "#" + tag
	}

	line1 := prefix + title + doc
	line2 := "   " + meta + "  " + theme.Tag.Render(strings.Join(tags, " "))
	line3 := "   " + bar.View()
	return lipgloss.NewStyle().MaxWidth(width).Render(line1 + "\n" + line2 + "\n" + line3)
}

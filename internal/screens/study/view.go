package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/ui/components"
	"github.com/abhisek/studyos/internal/ui/layout"
	"github.com/abhisek/studyos/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	topic := s.session.Topic()
	view := s.session.View()

	var top strings.Builder
	top.WriteString(theme.SectionHeading.Render("  " + topic.Title))
	top.WriteString("\n")
	top.WriteString(theme.Hint.Render(fmt.Sprintf("  %s · %s · 최근 학습 %s", topic.Subject, topic.Professor, topic.LastStudied)))
	top.WriteString("\n  ")
	top.WriteString(components.Tabs(viewLabels(), tabIndex(view)))
	if s.notice != "" {
		style := lipgloss.NewStyle().Foreground(theme.Success)
		if s.noticeErr {
			style = style.Foreground(theme.Error)
		}
		top.WriteString("   " + style.Render(s.notice))
	}
	header := top.String()

	bodyHeight := height - lipgloss.Height(header) - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	var body string
	switch {
	case !s.chatOpen:
		body = s.renderNotes(topic, view, width, bodyHeight)
	case layout.IsCompactWidth(width):
		body = s.renderChat(width, bodyHeight)
	default:
		chatWidth := width * 2 / 5
		notes := s.renderNotes(topic, view, width-chatWidth, bodyHeight)
		chat := s.renderChat(chatWidth, bodyHeight)
		body = lipgloss.JoinHorizontal(lipgloss.Top, notes, chat)
	}

	return header + "\n" + body
}

func (s *Screen) renderNotes(topic library.Topic, view library.View, width, height int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}

	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render(view.Label()))
	b.WriteString("\n\n")

	if view == library.ViewDetail && topic.HasDocument() {
		doc := topic.Document
		b.WriteString(theme.Body.Render("원본 문서: " + doc.Name))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%s · %s 첨부", humanize.Bytes(uint64(doc.Size)), humanize.Time(doc.AttachedAt))))
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(doc.Path))
		b.WriteString("\n\n")
	}

	if note := topic.Note(view); note != "" {
		b.WriteString(components.Wrap(note, inner, theme.Text))
	} else {
		b.WriteString(theme.Hint.Render("이 화면에 대한 노트가 아직 없습니다."))
	}

	if view == library.ViewDetail && !topic.HasDocument() && s.deps.Catalog != nil {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Ctrl+F로 강의 PDF를 첨부하면 원본 문서를 기준으로 답변합니다."))
	}

	if len(topic.Tags) > 0 {
		b.WriteString("\n\n")
		tags := make([]string, len(topic.Tags))
		for i, t := range topic.Tags {
			tags[i] = "#" + t
		}
		b.WriteString(theme.Tag.Render(strings.Join(tags, " ")))
	}

	if s.attaching {
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Render("첨부할 PDF 경로:"))
		b.WriteString("\n")
		b.WriteString(s.pathInput.View(inner - 2))
	}

	return theme.Panel.
		Width(width).
		Height(height).
		Render(b.String())
}

func (s *Screen) renderChat(width, height int) string {
	inner := width - 4
	if inner < 10 {
		inner = 10
	}
	bubble := inner - 2

	head := theme.SectionHeading.Render(panelTitle)
	if s.deps.ModelName != "" {
		head += "  " + theme.Hint.Render(s.deps.ModelName)
	}

	var lines []string
	lines = append(lines, theme.AssistantBubble.Width(bubble).Render(Greeting), "")
	for _, m := range s.session.Messages() {
		lines = append(lines, renderMessage(m, bubble), "")
	}
	if s.session.Pending() {
		lines = append(lines, theme.Typing.Render(Thinking))
	}

	input := s.input.View(inner - 2)

	// keep the newest lines that fit between the heading and the input
	avail := height - 2 - lipgloss.Height(head) - lipgloss.Height(input) - 1
	log := strings.Split(strings.Join(lines, "\n"), "\n")
	if avail > 0 && len(log) > avail {
		log = log[len(log)-avail:]
	}

	content := head + "\n" + strings.Join(log, "\n")
	pad := height - 2 - lipgloss.Height(content) - lipgloss.Height(input)
	if pad > 0 {
		content += strings.Repeat("\n", pad)
	}
	content += "\n" + input

	return theme.Panel.
		BorderForeground(theme.Primary).
		Width(width).
		Height(height).
		Render(content)
}

func renderMessage(m conversation.Message, width int) string {
	if m.Role == conversation.RoleUser {
		w := lipgloss.Width(m.Text) + 2
		if w > width {
			w = width
		}
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Right).
			Render(theme.UserBubble.Width(w).Render(m.Text))
	}
	return theme.AssistantBubble.Width(width).Render(m.Text)
}

func viewLabels() []string {
	views := library.AllViews()
	labels := make([]string, len(views))
	for i, v := range views {
		labels[i] = v.Label()
	}
	return labels
}

func tabIndex(v library.View) int {
	for i, x := range library.AllViews() {
		if x == v {
			return i
		}
	}
	return 0
}

package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"

	"github.com/abhisek/studyos/internal/llm"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/store"
	"github.com/abhisek/studyos/internal/ui/layout"
	"github.com/abhisek/studyos/internal/ui/theme"
)

// EventReader is the read side of the LLM audit log.
type EventReader interface {
	Query(ctx context.Context, opts store.QueryOpts) ([]store.LLMRequestEvent, error)
	UsageByPurpose(ctx context.Context) ([]store.PurposeUsage, error)
}

type historyLoadedMsg struct {
	Events []store.LLMRequestEvent
	Usage  []store.PurposeUsage
	Err    error
}

// HistoryScreen lists recent study-aid requests with their token usage.
type HistoryScreen struct {
	events   EventReader
	rows     []store.LLMRequestEvent
	usage    []store.PurposeUsage
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(events EventReader) *HistoryScreen {
	return &HistoryScreen{
		events:   events,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	events := s.events
	return func() tea.Msg {
		ctx := context.Background()

		rows, err := events.Query(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		usage, err := events.UsageByPurpose(ctx)
		if err != nil {
			return historyLoadedMsg{Events: rows}
		}
		return historyLoadedMsg{Events: rows, Usage: usage}
	}
}

func (s *HistoryScreen) Title() string {
	return "사용 기록"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "상세"},
		{Key: "↑↓", Description: "이동"},
		{Key: "Esc", Description: "뒤로"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.rows = msg.Events
			s.usage = msg.Usage
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.rows)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render("\n\n오류: " + s.errMsg)
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  기록을 불러오는 중...")
	}
	if len(s.rows) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).Render("\n\n  아직 학습 조교에게 질문한 기록이 없습니다.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, u := range s.usage {
		line := fmt.Sprintf("%s  %d회 (실패 %d)  토큰 %s/%s  평균 %dms",
			u.Purpose, u.Calls, u.Failures,
			humanize.Comma(int64(u.InputTokens)), humanize.Comma(int64(u.OutputTokens)), u.AvgLatencyMs)
		b.WriteString(center.Render(theme.SectionHeading.Render(line)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for i, ev := range s.rows {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		status := theme.Correct.Render("✓")
		if !ev.Success {
			status = theme.Incorrect.Render("✗")
		}

		line := fmt.Sprintf("%s%s  %-9s %-22s %5d→%-5d %6dms  %s",
			prefix, humanize.Time(ev.Timestamp), ev.Purpose, ev.Model,
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, costLabel(ev))
		b.WriteString(center.Render(style.Render(line) + " " + status))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := ev.ResponseBody
			if !ev.Success {
				detail = ev.ErrorMessage
			}
			if len([]rune(detail)) > 160 {
				detail = string([]rune(detail)[:160]) + "..."
			}
			b.WriteString(center.Render(theme.Hint.Render("    " + detail)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func costLabel(ev store.LLMRequestEvent) string {
	c := llm.LookupCost(ev.Model)
	if c == nil {
		return "-"
	}
	return fmt.Sprintf("$%.4f", c.Cost(ev.InputTokens, ev.OutputTokens))
}

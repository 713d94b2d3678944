package history

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyos/internal/store"
)

type fakeEvents struct {
	rows  []store.LLMRequestEvent
	usage []store.PurposeUsage
	err   error
}

func (f *fakeEvents) Query(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return f.rows, f.err
}

func (f *fakeEvents) UsageByPurpose(context.Context) ([]store.PurposeUsage, error) {
	return f.usage, nil
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestHistory_ListsEvents(t *testing.T) {
	f := &fakeEvents{
		rows: []store.LLMRequestEvent{
			{ID: 2, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{Purpose: "study-aid", Model: "gemini-2.5-flash", Success: true, ResponseBody: "심박출량은..."}},
			{ID: 1, Timestamp: time.Now(), LLMRequestEventData: store.LLMRequestEventData{Purpose: "weakness", Model: "gemini-2.5-flash", ErrorMessage: "rate limited"}},
		},
		usage: []store.PurposeUsage{{Purpose: "study-aid", Calls: 1}},
	}
	s := New(f)
	load(t, s)

	view := s.View(120, 30)
	assert.Contains(t, view, "study-aid")
	assert.Contains(t, view, "weakness")
	assert.NotContains(t, view, "rate limited")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(120, 30), "rate limited")
}

func TestHistory_Empty(t *testing.T) {
	s := New(&fakeEvents{})
	load(t, s)
	assert.True(t, strings.Contains(s.View(80, 24), "기록이 없습니다"))
}

func TestHistory_Error(t *testing.T) {
	s := New(&fakeEvents{err: errors.New("db locked")})
	load(t, s)
	assert.Contains(t, s.View(80, 24), "db locked")
}

func TestHistory_Loading(t *testing.T) {
	s := New(&fakeEvents{})
	assert.Contains(t, s.View(80, 24), "불러오는 중")
}

func TestHistory_RendersStoredEvents(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	ctx := context.Background()
	repo := st.LLMEvents()
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "study-aid",
		InputTokens: 1200, OutputTokens: 300, LatencyMs: 900, Success: true,
		ResponseBody: "심박출량은 1회 박출량과 심박수의 곱입니다.",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, store.LLMRequestEventData{
		Provider: "gemini", Model: "homegrown-1", Purpose: "weakness",
		LatencyMs: 100, ErrorMessage: "rate limited",
	}))

	s := New(repo)
	load(t, s)

	view := s.View(140, 40)
	assert.Contains(t, view, "study-aid  1회 (실패 0)  토큰 1,200/300  평균 900ms")
	assert.Contains(t, view, "weakness  1회 (실패 1)")
	assert.Contains(t, view, "$0.0011", "priced model shows its cost")
	assert.Contains(t, view, "homegrown-1")

	// newest first: the failed weakness call is on top
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(140, 40), "rate limited")
}

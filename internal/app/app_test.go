package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/conversation"
	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/logging"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/screens/settings"
	"github.com/abhisek/studyos/internal/screens/study"
)

type nopAsker struct{}

func (nopAsker) Ask(context.Context, string, string) string { return "" }

func testOptions(skipSplash bool) Options {
	return Options{
		Deps: screens.Deps{
			Catalog:       library.DefaultCatalog(),
			Conversations: conversation.NewController(nopAsker{}, conversation.WithLogger(logging.Discard())),
			ModelName:     "gemini-2.5-flash",
			Logger:        logging.Discard(),
		},
		SkipSplash: skipSplash,
	}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(AppModel)
}

func TestApp_StartsOnSplash(t *testing.T) {
	m := newAppModel(testOptions(false))
	if m.router.Active().Title() != "" {
		t.Errorf("expected splash first, got %q", m.router.Active().Title())
	}
	if m.Init() == nil {
		t.Error("expected splash tick on Init")
	}
}

func TestApp_SkipSplash(t *testing.T) {
	m := newAppModel(testOptions(true))
	if got := m.router.Active().Title(); got != "홈" {
		t.Errorf("active = %q, want 홈", got)
	}
}

func TestApp_HeaderAndFooter(t *testing.T) {
	m := sized(newAppModel(testOptions(true)))
	content := m.render()

	for _, want := range []string{"StudyOS", "홈", "gemini-2.5-flash", "복습 3", "라이브러리"} {
		if !strings.Contains(content, want) {
			t.Errorf("frame missing %q", want)
		}
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newAppModel(testOptions(true))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(updated.(AppModel).render(), "너무 작습니다") {
		t.Error("expected minimum size message")
	}
}

func TestApp_EscPops(t *testing.T) {
	m := sized(newAppModel(testOptions(true)))
	m.router.Push(settings.New(nil))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_EscClosesPromptBeforePopping(t *testing.T) {
	opts := testOptions(true)
	m := sized(newAppModel(opts))
	topic, err := opts.Deps.Catalog.Get("t1")
	if err != nil {
		t.Fatal(err)
	}
	st := study.New(opts.Deps, topic)
	t.Cleanup(st.Close)
	m.router.Push(st)

	m.Update(tea.KeyPressMsg{Code: 'f', Mod: tea.ModCtrl})
	if !st.CapturesEscape() {
		t.Fatal("expected attach prompt open")
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Fatal("esc popped the study screen instead of closing the prompt")
		}
	}
	if st.CapturesEscape() {
		t.Error("expected attach prompt closed")
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("second esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestApp_EscAtRootIsNoop(t *testing.T) {
	m := sized(newAppModel(testOptions(true)))
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(true))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/library"
	"github.com/abhisek/studyos/internal/router"
	"github.com/abhisek/studyos/internal/screen"
	"github.com/abhisek/studyos/internal/screens"
	"github.com/abhisek/studyos/internal/screens/dashboard"
	"github.com/abhisek/studyos/internal/screens/welcome"
	"github.com/abhisek/studyos/internal/ui/layout"
)

// Options configure the TUI.
type Options struct {
	Deps    screens.Deps
	Notices dashboard.Notices

	// SkipSplash starts directly on the dashboard.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status string
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the splash screen.
func newAppModel(opts Options) AppModel {
	home := func() screen.Screen {
		return dashboard.New(opts.Deps, opts.Notices)
	}

	var initial screen.Screen
	if opts.SkipSplash {
		initial = home()
	} else {
		initial = welcome.New(home)
	}

	status := fmt.Sprintf("복습 %d", len(library.ReviewQueue()))
	if opts.Deps.ModelName != "" {
		status = opts.Deps.ModelName + "   " + status
	}

	return AppModel{
		router: router.New(initial),
		status: status,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	v.SetContent(m.render())
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "뒤로"},
			{Key: "Ctrl+C", Description: "종료"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "계속"},
		{Key: "Ctrl+C", Description: "종료"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	model := newAppModel(opts)
	p := tea.NewProgram(model)
	_, err := p.Run()
	model.router.CloseAll()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

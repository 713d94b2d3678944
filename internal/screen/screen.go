// Package screen is the contract between the router and the TUI screens.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studyos/internal/ui/layout"
)

// Screen is one page of the TUI. The app draws the header and footer;
// View fills the area in between.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title is the breadcrumb shown in the header. The splash has none.
	Title() string
}

// KeyHintProvider replaces the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer releases what a screen holds, such as an open study session,
// when the router drops it from the stack.
type Closer interface {
	Close()
}

// Resumer is notified when the screen above it is popped and it becomes
// active again. Messages routed while it was covered never reached it.
type Resumer interface {
	Resume() tea.Cmd
}

// EscapeCapturer claims Esc while it has a modal prompt open, so the app
// delivers the key instead of popping the screen.
type EscapeCapturer interface {
	CapturesEscape() bool
}

package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with StudyOS styling.
type TextInput struct {
	Model    textinput.Model
	MaxWidth int
	Disabled bool
}

// NewTextInput creates a new styled, focused text input. maxWidth caps
// the number of characters; zero means unlimited.
func NewTextInput(placeholder string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model:    ti,
		MaxWidth: maxWidth,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Key presses are dropped while disabled.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok && t.Disabled {
		return t, nil
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input inside a rounded box of the given width.
// The field fills the box minus the border, the prompt and the cursor cell.
func (t TextInput) View(width int) string {
	t.Model.SetWidth(max(1, width-2-lipgloss.Width(t.Model.Prompt)-1))

	border := theme.Primary
	if t.Disabled {
		border = theme.Border
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(width).
		Render(t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Blank reports whether the input holds only whitespace.
func (t TextInput) Blank() bool {
	return strings.TrimSpace(t.Model.Value()) == ""
}

// Reset clears the input.
func (t *TextInput) Reset() {
	t.Model.SetValue("")
}

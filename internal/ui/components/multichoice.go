package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studyos/internal/ui/theme"
)

// Choice is a single-answer question. An option is picked with the arrows
// and enter, or at once with 1-4 / a-d. After the pick the answer is
// revealed and further keys are ignored.
type Choice struct {
	question    string
	options     []string
	answer      int
	explanation string

	cursor int
	picked int // -1 until answered
}

func NewChoice(question string, options []string, answer int) Choice {
	return Choice{question: question, options: options, answer: answer, picked: -1}
}

// WithExplanation sets the text revealed after answering.
func (c Choice) WithExplanation(text string) Choice {
	c.explanation = text
	return c
}

func (c Choice) Answered() bool { return c.picked >= 0 }

// Picked is the chosen option, or -1.
func (c Choice) Picked() int { return c.picked }

func (c Choice) Correct() bool {
	return c.Answered() && c.picked == c.answer
}

func (c Choice) Update(msg tea.Msg) (Choice, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Answered() {
		return c, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		c.cursor = max(c.cursor-1, 0)
	case "down", "j":
		c.cursor = min(c.cursor+1, len(c.options)-1)
	case "enter":
		c.picked = c.cursor
	default:
		if i, ok := directChoice(key, len(c.options)); ok {
			c.cursor, c.picked = i, i
		}
	}
	return c, nil
}

// directChoice maps "1".."4" and "a".."d" to an option index.
func directChoice(key string, n int) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	switch k := key[0]; {
	case k >= '1' && int(k-'1') < n:
		return int(k - '1'), true
	case k >= 'a' && int(k-'a') < n:
		return int(k - 'a'), true
	}
	return 0, false
}

// View renders the question and options wrapped to width.
func (c Choice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(width).Render(c.question))
	b.WriteString("\n\n")

	for i, opt := range c.options {
		marker := "  "
		if !c.Answered() && i == c.cursor {
			marker = "▸ "
		}
		if c.Answered() {
			switch i {
			case c.answer:
				marker = "✓ "
			case c.picked:
				marker = "✗ "
			}
		}

		line := lipgloss.NewStyle().Width(width).Render(fmt.Sprintf("%s%c) %s", marker, 'A'+i, opt))
		b.WriteString(c.optionStyle(i).Render(line))
		b.WriteString("\n")
	}

	if c.Answered() && c.explanation != "" {
		b.WriteString("\n")
		b.WriteString(Wrap(c.explanation, width, theme.TextDim))
		b.WriteString("\n")
	}
	return b.String()
}

func (c Choice) optionStyle(i int) lipgloss.Style {
	switch {
	case !c.Answered() && i == c.cursor:
		return theme.Selected
	case !c.Answered():
		return theme.Unselected
	case i == c.answer:
		return theme.Correct
	case i == c.picked:
		return theme.Incorrect
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim)
	}
}

package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"peprep/internal/question"
	"peprep/internal/ui/theme"
)

// ChoiceList renders the lettered options of one question and moves a
// cursor over them. Selection itself belongs to the session state machine;
// the list only reports which option the cursor is on.
type ChoiceList struct {
	Question *question.Question
	Cursor   int
}

// NewChoiceList creates a choice list positioned on the first option.
func NewChoiceList(q *question.Question) ChoiceList {
	return ChoiceList{Question: q}
}

// Init returns nil.
func (c ChoiceList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Choice toggling is handled by the
// owning screen so it can route through the session.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || c.Question == nil {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Question.Options)-1 {
			c.Cursor++
		}
	}

	return c, nil
}

// View renders the options with their letter, a cursor marker, and a
// selection box. Multi-select questions show [x] checkboxes; single-select
// show (o) radio markers.
func (c ChoiceList) View() string {
	q := c.Question
	if q == nil {
		return ""
	}

	multi := q.MultiSelect()

	var s string
	for i, opt := range q.Options {
		cursor := "  "
		if i == c.Cursor {
			cursor = "▸ "
		}

		box := "( )"
		if multi {
			box = "[ ]"
		}
		if q.Selections[i] {
			if multi {
				box = "[x]"
			} else {
				box = "(o)"
			}
		}

		line := fmt.Sprintf("%s%s %s. %s", cursor, box, question.Letter(i), opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == c.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		case q.Selections[i]:
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		s += style.Render(line) + "\n"
	}

	return s
}

package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Choice is one answer row.
type Choice struct {
	Label    string // "A".."D"
	Text     string
	Selected bool
	Correct  bool
}

// AnswerList renders the answers of a question. Multi lists use check
// boxes, single lists use radio marks. With Reveal set, correct answers
// are green and wrong picks red.
type AnswerList struct {
	Choices []Choice
	Cursor  int
	Multi   bool
	Reveal  bool
}

// MoveUp moves the cursor up one row.
func (a *AnswerList) MoveUp() {
	if a.Cursor > 0 {
		a.Cursor--
	}
}

// MoveDown moves the cursor down one row.
func (a *AnswerList) MoveDown() {
	if a.Cursor < len(a.Choices)-1 {
		a.Cursor++
	}
}

func (a AnswerList) mark(c Choice) string {
	switch {
	case a.Multi && c.Selected:
		return "[x]"
	case a.Multi:
		return "[ ]"
	case c.Selected:
		return "(•)"
	default:
		return "( )"
	}
}

// View renders the list at most width wide.
func (a AnswerList) View(width int) string {
	var b strings.Builder
	for i, c := range a.Choices {
		cursor := "  "
		if i == a.Cursor && !a.Reveal {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%s %s.  %s", cursor, a.mark(c), c.Label, c.Text)

		style := theme.Unselected
		switch {
		case a.Reveal && c.Correct:
			style = theme.Correct
		case a.Reveal && c.Selected:
			style = theme.Incorrect
		case a.Reveal:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == a.Cursor || c.Selected:
			style = theme.Selected
		}
		b.WriteString(style.MaxWidth(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

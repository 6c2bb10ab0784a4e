package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// Confirm is a yes/no prompt. Left/right move between the two buttons,
// y and n answer directly.
type Confirm struct {
	Prompt string
	Detail string
	Yes    string
	No     string
	focus  bool // true when Yes has focus
}

// ConfirmResult is the outcome of a key press on a Confirm.
type ConfirmResult int

const (
	ConfirmPending ConfirmResult = iota
	ConfirmYes
	ConfirmNo
)

// NewConfirm creates a prompt with No focused.
func NewConfirm(prompt, detail, yes, no string) Confirm {
	return Confirm{Prompt: prompt, Detail: detail, Yes: yes, No: no}
}

// Update handles one key press.
func (c Confirm) Update(msg tea.KeyPressMsg) (Confirm, ConfirmResult) {
	switch msg.String() {
	case "y", "Y":
		return c, ConfirmYes
	case "n", "N", "esc":
		return c, ConfirmNo
	case "left", "right", "h", "l", "tab":
		c.focus = !c.focus
	case "enter":
		if c.focus {
			return c, ConfirmYes
		}
		return c, ConfirmNo
	}
	return c, ConfirmPending
}

// View renders the prompt centered across width.
func (c Confirm) View(width int) string {
	yes, no := theme.ButtonInactive, theme.ButtonActive
	if c.focus {
		yes, no = theme.ButtonActive, theme.ButtonInactive
	}
	buttons := yes.Render("[Y] "+c.Yes) + "   " + no.Render("[N] "+c.No)

	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	s := "\n\n\n" + center.Foreground(theme.Text).Bold(true).Render(c.Prompt) + "\n"
	if c.Detail != "" {
		s += center.Foreground(theme.TextDim).Render(c.Detail) + "\n"
	}
	return s + "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, buttons)
}

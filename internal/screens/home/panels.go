package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// maxProblems caps the import problems listed on the home screen.
const maxProblems = 6

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 64))
}

// renderStatsBar renders bank and session defaults in a bordered box.
func renderStatsBar(questions, sources int, mode string, minutes int, strict bool, cw int) string {
	bankStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	bank := dim.Render("no bank loaded")
	if questions > 0 {
		bank = bankStyle.Render(fmt.Sprintf("%d questions", questions)) +
			dim.Render(fmt.Sprintf(" from %d file%s", sources, plural(sources)))
	}
	settings := fmt.Sprintf("%s · %d min", mode, minutes)
	if strict {
		settings += " · strict"
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bank + "   " + lipgloss.NewStyle().Foreground(theme.Accent).Render(settings))
}

// renderProblems lists import problems, most important first.
func renderProblems(msgs []string, cw int) string {
	if len(msgs) == 0 {
		return ""
	}
	shown := msgs
	if len(shown) > maxProblems {
		shown = shown[:maxProblems]
	}
	var b strings.Builder
	b.WriteString(theme.Incorrect.Render("Import problems"))
	for _, m := range shown {
		b.WriteString("\n")
		b.WriteString(theme.Warning.MaxWidth(cw).Render("• " + m))
	}
	if extra := len(msgs) - len(shown); extra > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("…and %d more (run quizdeck check)", extra)))
	}
	return lipgloss.NewStyle().Width(cw).Render(b.String())
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderButtonMenu renders each menu item as a fixed-width button.
func renderButtonMenu(menu components.Menu, cw int) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selected := base.Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normal := base.Foreground(theme.Text).BorderForeground(theme.Border)
	disabled := base.Foreground(theme.Border).BorderForeground(theme.Border)

	var buttons []string
	for i, item := range menu.Items {
		label := item.Label
		if item.Hint != "" {
			label += " (" + item.Hint + ")"
		}
		switch {
		case item.Disabled:
			buttons = append(buttons, disabled.Render(label))
		case i == menu.Selected:
			buttons = append(buttons, selected.Render("▸ "+label))
		default:
			buttons = append(buttons, normal.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

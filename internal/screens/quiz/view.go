package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/timer"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.dialog != dialogNone {
		return s.confirm.View(width)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) renderQuestion(width int) string {
	q := s.session.Current()
	var b strings.Builder

	// Info line: position and flags on the left, clock on the right.
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", s.session.Position(), s.session.Total()))
	if q.Flagged {
		left += "  " + theme.Flagged.Render("⚑ flagged")
	}
	right := s.renderClock()

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	textWidth := min(width-8, 72)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Bold(true).Render(q.Text)))
	b.WriteString("\n")
	if q.Multi {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Width(textWidth).Render(theme.Hint.Render("Select all that apply."))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	reveal := s.session.Mode() == exam.ModeStudy && revealed(q)
	list := s.answerList(q)
	list.Reveal = reveal
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(textWidth).Render(list.View(textWidth))))
	b.WriteString("\n")

	if reveal {
		b.WriteString(renderFeedback(q, width))
		b.WriteString("\n")
	}

	bar := components.ProgressBar{
		Label: "Answered",
		Done:  s.session.AnsweredCount(),
		Total: s.session.Total(),
		Width: textWidth,
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	return b.String()
}

// answerList builds the answer list of q at the screen's cursor.
func (s *QuizScreen) answerList(q exam.QuestionView) components.AnswerList {
	list := components.AnswerList{Cursor: s.cursor, Multi: q.Multi}
	for _, a := range q.Answers {
		list.Choices = append(list.Choices, components.Choice{
			Label:    a.Letter.String(),
			Text:     a.Text,
			Selected: q.Selected.Has(a.Letter),
			Correct:  q.Correct.Has(a.Letter),
		})
	}
	return list
}

func (s *QuizScreen) renderClock() string {
	remaining := s.session.Remaining()
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if remaining <= 60 {
		style = theme.Warning.Bold(true)
	}
	return style.Render("⏱ " + timer.Format(remaining))
}

func renderFeedback(q exam.QuestionView, width int) string {
	if q.IsCorrect() {
		return layout.Centered(width, theme.Correct, "Correct!")
	}
	return layout.Centered(width, theme.Incorrect, "Not quite. Correct: "+q.Correct.String())
}

// revealed reports whether study feedback is due: a single-answer question
// once answered, a multi-answer one once as many letters as the key holds
// are picked.
func revealed(q exam.QuestionView) bool {
	if q.Multi {
		return q.Selected.Len() >= q.Correct.Len()
	}
	return q.Answered()
}

// renderError renders a fatal session error.
func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go home.", errMsg))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

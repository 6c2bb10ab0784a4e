package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/timer"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// RetakeFunc starts a new session over the same bank and returns the
// screen that runs it.
type RetakeFunc func() (screen.Screen, error)

// SummaryScreen displays the outcome of a completed session.
type SummaryScreen struct {
	summary exam.Summary
	retake  RetakeFunc
	offset  int
	missed  bool
	errMsg  string
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. retake may be nil, which hides the option.
func New(sum exam.Summary, retake RetakeFunc) *SummaryScreen {
	return &SummaryScreen{summary: sum, retake: retake}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "M", Description: "Missed only"},
	}
	if s.retake != nil {
		hints = append(hints, layout.KeyHint{Key: "R", Description: "Retake"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc", "q":
		return s, router.Cmd(router.PopToRootMsg{})
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.results())-1 {
			s.offset++
		}
	case "m":
		s.missed = !s.missed
		s.offset = 0
	case "r":
		if s.retake == nil {
			return s, nil
		}
		next, err := s.retake()
		if err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, router.Cmd(router.ReplaceScreenMsg{Screen: next})
	}
	return s, nil
}

func (s *SummaryScreen) results() []exam.Result {
	if s.missed {
		return s.summary.Missed()
	}
	return s.summary.Results
}

// Headline describes how the session ended.
func Headline(sum exam.Summary) string {
	switch sum.Reason {
	case exam.ReasonExpired:
		return "Time's up!"
	case exam.ReasonAllAnswered:
		return "Study set complete"
	default:
		return "Exam graded"
	}
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	var b strings.Builder

	headStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if sum.Reason == exam.ReasonExpired {
		headStyle = headStyle.Foreground(theme.Accent)
	}
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, headStyle, Headline(sum)))
	b.WriteString("\n\n")

	scoreStyle := theme.Correct
	if sum.Score.Percent() < 50 {
		scoreStyle = theme.Incorrect
	}
	b.WriteString(layout.Centered(width, scoreStyle.Bold(true),
		fmt.Sprintf("Score %s  (%d%%)", sum.Score, sum.Score.Percent())))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint, fmt.Sprintf(
		"Answered %d · Flagged %d · Time %s of %s",
		sum.Answered, sum.Flagged, timer.Format(sum.Elapsed), timer.Format(sum.TimeLimit))))
	b.WriteString("\n\n")

	label := "All questions"
	if s.missed {
		label = "Missed questions"
	}
	b.WriteString(layout.Centered(width, theme.Hint, label))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width, 60))
	b.WriteString("\n")

	results := s.results()
	if len(results) == 0 {
		b.WriteString(layout.Centered(width, theme.Correct, "Nothing missed."))
		b.WriteString("\n")
	}
	rows := max((height-10)/2, 1)
	end := min(s.offset+rows, len(results))
	lineWidth := min(width-8, 72)
	for _, r := range results[min(s.offset, len(results)):end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderResult(r, lineWidth)))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.Incorrect, s.errMsg))
	}
	return b.String()
}

func renderResult(r exam.Result, width int) string {
	mark, style := "✓", theme.Correct
	if !r.IsCorrect {
		mark, style = "✗", theme.Incorrect
	}
	flag := ""
	if r.Flagged {
		flag = " ⚑"
	}
	text := r.Text
	if room := width - 8; room > 0 && len([]rune(text)) > room {
		text = string([]rune(text)[:room-1]) + "…"
	}
	head := style.Render(fmt.Sprintf("%s %3d.", mark, r.Number)) + " " +
		lipgloss.NewStyle().Foreground(theme.Text).Render(text) + theme.Flagged.Render(flag)

	detail := fmt.Sprintf("      answer %s", r.Correct)
	if !r.IsCorrect {
		detail = fmt.Sprintf("      yours %s · answer %s", r.Selected, r.Correct)
	}
	return lipgloss.NewStyle().Width(width).Render(head + "\n" + theme.Hint.Render(detail))
}

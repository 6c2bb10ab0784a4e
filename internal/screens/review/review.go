package review

import (
	"context"
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

// ReviewScreen lists the questions of an exam under review.
type ReviewScreen struct {
	engine   *exam.Engine
	filter   exam.ReviewFilter
	selected int
	errMsg   string
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen over the engine's current session.
func New(engine *exam.Engine) *ReviewScreen {
	return &ReviewScreen{engine: engine}
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review"
}

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Revisit"},
		{Key: "G", Description: "Grade"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) items() []exam.QuestionView {
	if sess := s.engine.Session(); sess != nil {
		return sess.Filter(s.filter)
	}
	return nil
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SessionEndedMsg:
		return s, router.Cmd(router.PopScreenMsg{})

	case tea.KeyPressMsg:
		ctx := context.Background()
		items := s.items()
		switch msg.String() {
		case "tab":
			s.filter = s.filter.Next()
			s.selected = 0
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(items)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(items) {
				return s, s.revisit(ctx, items[s.selected].Number)
			}
		case "esc":
			if sess := s.engine.Session(); sess != nil {
				return s, s.revisit(ctx, sess.Current().Number)
			}
			return s, router.Cmd(router.PopScreenMsg{})
		case "g":
			if err := s.engine.Grade(ctx); err != nil {
				s.errMsg = err.Error()
				return s, nil
			}
			return s, router.Cmd(router.PopScreenMsg{})
		}
	}
	return s, nil
}

func (s *ReviewScreen) revisit(ctx context.Context, number int) tea.Cmd {
	if err := s.engine.Revisit(ctx, number); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	return router.Cmd(router.PopScreenMsg{})
}

func (s *ReviewScreen) View(width, height int) string {
	sess := s.engine.Session()
	if sess == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint, fmt.Sprintf("%d of %d answered · %d flagged · ⏱ %s left",
		sess.AnsweredCount(), sess.Total(), sess.FlaggedCount(), timer.Format(sess.Remaining()))))
	b.WriteString("\n\n")

	items := s.items()
	if len(items) == 0 {
		b.WriteString(layout.Centered(width, theme.Hint, "Nothing here."))
		return b.String()
	}

	// Keep the selection visible when the list is taller than the screen.
	rows := max(height-6, 1)
	start := 0
	if s.selected >= rows {
		start = s.selected - rows + 1
	}
	end := min(start+rows, len(items))

	lineWidth := min(width-8, 72)
	for i := start; i < end; i++ {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			renderRow(items[i], i == s.selected, lineWidth)))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(layout.Centered(width, theme.Incorrect, s.errMsg))
	}
	return b.String()
}

func (s *ReviewScreen) renderTabs(width int) string {
	var tabs []string
	for f := exam.FilterAll; f <= exam.FilterFlagged; f++ {
		if f == s.filter {
			tabs = append(tabs, theme.ButtonActive.Render(f.String()))
		} else {
			tabs = append(tabs, theme.ButtonInactive.Render(f.String()))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, " "))
}

func renderRow(v exam.QuestionView, selected bool, width int) string {
	prefix := "  "
	if selected {
		prefix = "▸ "
	}
	status := "—"
	if v.Answered() {
		status = v.Selected.String()
	}
	flag := " "
	if v.Flagged {
		flag = "⚑"
	}

	head := fmt.Sprintf("%s%s %3d. ", prefix, flag, v.Number)
	tail := fmt.Sprintf("  [%s]", status)
	text := v.Text
	if room := width - len([]rune(head)) - len([]rune(tail)); room > 0 && len([]rune(text)) > room {
		text = string([]rune(text)[:max(room-1, 0)]) + "…"
	}
	line := head + text + tail

	style := theme.Unselected
	switch {
	case selected:
		style = theme.Selected
	case v.Flagged:
		style = theme.Flagged
	case !v.Answered():
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}
	return style.Width(width).Render(line)
}

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []store.AttemptRecord
	Err      error
}

type eventsLoadedMsg struct {
	SessionID string
	Events    []store.AttemptEvent
	Err       error
}

// Journal reads past attempts. *exam.Engine implements it.
type Journal interface {
	History(ctx context.Context) ([]store.AttemptRecord, error)
	AttemptEvents(ctx context.Context, sessionID string) ([]store.AttemptEvent, error)
}

// HistoryScreen lists the attempts of this run, most recent first.
type HistoryScreen struct {
	journal   Journal
	attempts  []store.AttemptRecord
	events    map[string][]store.AttemptEvent // sessionID → journal
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(journal Journal) *HistoryScreen {
	return &HistoryScreen{
		journal:   journal,
		events:    make(map[string][]store.AttemptEvent),
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	journal := s.journal
	return func() tea.Msg {
		attempts, err := journal.History(context.Background())
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) loadEvents(sessionID string) tea.Cmd {
	journal := s.journal
	return func() tea.Msg {
		events, err := journal.AttemptEvents(context.Background(), sessionID)
		return eventsLoadedMsg{SessionID: sessionID, Events: events, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.events[msg.SessionID] = msg.Events
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, router.Cmd(router.PopScreenMsg{})
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			if s.selected >= len(s.attempts) {
				return s, nil
			}
			s.expanded[s.selected] = !s.expanded[s.selected]
			id := s.attempts[s.selected].SessionID
			if _, ok := s.events[id]; s.expanded[s.selected] && !ok {
				return s, s.loadEvents(id)
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Start an exam!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, a := range s.attempts {
		line := fmt.Sprintf("%s  %-5s  %s", a.StartedAt.Format("15:04:05"), a.Mode, outcome(a))

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "▸ "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(prefix+line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetails(width, a))
		}
	}
	return b.String()
}

func outcome(a store.AttemptRecord) string {
	if !a.Completed {
		return fmt.Sprintf("%d questions  incomplete", a.Total)
	}
	pct := 0
	if a.Total > 0 {
		pct = a.Correct * 100 / a.Total
	}
	return fmt.Sprintf("%d/%d (%d%%)  %s", a.Correct, a.Total, pct, a.Reason)
}

func (s *HistoryScreen) renderDetails(width int, a store.AttemptRecord) string {
	events, ok := s.events[a.SessionID]
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	if !ok {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render("loading...")) + "\n"
	}

	counts := make(map[string]int)
	for _, e := range events {
		counts[e.Action]++
	}
	line := fmt.Sprintf("answers %d · flags %d · reviews %d",
		counts[store.ActionAnswer], counts[store.ActionFlag], counts[store.ActionReview])
	if !a.FinishedAt.IsZero() {
		line += fmt.Sprintf(" · took %s", a.FinishedAt.Sub(a.StartedAt).Round(time.Second))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, dim.Render(line)) + "\n"
}

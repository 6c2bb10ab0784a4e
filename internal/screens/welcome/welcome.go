package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	cardsEnd     = 800 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

// Cards fanned out one by one before the banner appears.
var cards = []string{"A", "B", "C", "D"}

type tickMsg time.Time

// WelcomeScreen plays a short splash animation. Any key skips to the
// screen produced by homeFactory.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that transitions to homeFactory's screen.
func New(homeFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned || w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	return router.Cmd(router.ReplaceScreenMsg{Screen: w.homeFactory()})
}

// visibleCards returns how many cards the animation has dealt so far.
func (w *WelcomeScreen) visibleCards() int {
	step := cardsEnd / time.Duration(len(cards))
	n := int(w.elapsed/step) + 1
	return min(n, len(cards))
}

func (w *WelcomeScreen) View(width, height int) string {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Foreground(theme.Text).
		Bold(true).
		Padding(0, 1)

	var dealt []string
	for _, c := range cards[:w.visibleCards()] {
		dealt = append(dealt, card.Render(c))
	}
	sections := []string{lipgloss.JoinHorizontal(lipgloss.Top, dealt...)}

	if w.elapsed >= cardsEnd {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Timed multiple-choice practice"),
		)
	}
	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("press any key to continue"),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/home"
	"github.com/abhisek/quizdeck/internal/screens/welcome"
	"github.com/abhisek/quizdeck/internal/timer"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

// AppModel is the root Bubble Tea model. It owns the countdown tick loop
// so a session keeps running while review and other screens are on top.
type AppModel struct {
	engine *exam.Engine
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(engine *exam.Engine) AppModel {
	intro := welcome.New(func() screen.Screen { return home.New(engine) })
	return AppModel{
		engine: engine,
		router: router.New(intro),
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case screen.TickMsg:
		return m, m.tick(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// tick advances the current session's countdown. Ticks of discarded or
// finished sessions are dropped, which ends their loop.
func (m AppModel) tick(msg screen.TickMsg) tea.Cmd {
	sess := m.engine.Session()
	if sess == nil || sess.ID() != msg.SessionID || !sess.Running() {
		return nil
	}
	if m.engine.Tick(context.Background()) {
		return m.router.Update(screen.SessionEndedMsg{})
	}
	return screen.Tick(msg.SessionID)
}

// status is the right-hand side of the header.
func (m AppModel) status() string {
	if sess := m.engine.Session(); sess != nil && sess.Running() {
		return fmt.Sprintf("⏱ %s · %d/%d", timer.Format(sess.Remaining()), sess.AnsweredCount(), sess.Total())
	}
	n := m.engine.BankSize()
	if n == 1 {
		return "1 question"
	}
	return fmt.Sprintf("%d questions", n)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.status(), m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	footerHints = append(footerHints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(engine *exam.Engine) error {
	p := tea.NewProgram(newAppModel(engine))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}

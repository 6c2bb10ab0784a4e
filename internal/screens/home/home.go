package home

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/history"
	"github.com/abhisek/quizdeck/internal/screens/importer"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// HomeScreen shows the bank status and the main menu.
type HomeScreen struct {
	engine *exam.Engine
	menu   components.Menu
	errMsg string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(engine *exam.Engine) *HomeScreen {
	h := &HomeScreen{engine: engine}
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	empty := h.engine.BankSize() == 0
	minutes := strconv.Itoa(h.engine.Config().TimeLimitMinutes) + " min"

	items := []components.MenuItem{
		{Label: "Start exam", Disabled: empty, Action: h.start(exam.ModeExam)},
		{Label: "Start study", Disabled: empty, Action: h.start(exam.ModeStudy)},
		{Label: "Import files…", Action: func() tea.Cmd {
			return router.Cmd(router.PushScreenMsg{Screen: importer.New(h.engine)})
		}},
		{Label: "Time limit", Hint: minutes, Action: func() tea.Cmd {
			return router.Cmd(router.PushScreenMsg{Screen: importer.NewTimeLimit(h.engine)})
		}},
		{Label: "Attempt history", Action: func() tea.Cmd {
			return router.Cmd(router.PushScreenMsg{Screen: history.New(h.engine)})
		}},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	switch {
	case selected > 0 && selected < len(items) && !items[selected].Disabled:
		h.menu.Selected = selected
	case !empty && h.engine.Config().Mode == exam.ModeStudy:
		h.menu.Selected = 1
	}
}

func (h *HomeScreen) start(mode exam.Mode) func() tea.Cmd {
	return func() tea.Cmd {
		s, err := h.engine.StartSession(context.Background(), mode)
		if err != nil {
			h.errMsg = err.Error()
			return nil
		}
		h.errMsg = ""
		return router.Cmd(router.PushScreenMsg{Screen: quiz.New(h.engine, s)})
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

// Resume rebuilds the menu: the bank or time limit may have changed.
func (h *HomeScreen) Resume() tea.Cmd {
	h.buildMenu()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	cfg := h.engine.Config()
	last := h.engine.LastImport()

	sections := []string{
		renderStatsBar(h.engine.BankSize(), last.Sources, string(cfg.Mode), cfg.TimeLimitMinutes, cfg.Strict, cw),
	}
	if problems := renderProblems(last.Messages(), cw); problems != "" {
		sections = append(sections, problems)
	}
	if h.engine.BankSize() == 0 && len(last.Messages()) == 0 {
		sections = append(sections, theme.Hint.Render("Import a question file to begin."))
	}
	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(h.errMsg))
	}
	sections = append(sections, renderButtonMenu(h.menu, cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

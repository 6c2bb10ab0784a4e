package importer

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// importDoneMsg carries the result of a background import.
type importDoneMsg struct {
	Result bank.ImportResult
}

// ImportScreen asks for bank file paths and imports them.
type ImportScreen struct {
	engine  *exam.Engine
	input   components.TextInput
	running bool
	result  *bank.ImportResult
}

var _ screen.Screen = (*ImportScreen)(nil)
var _ screen.KeyHintProvider = (*ImportScreen)(nil)

// New creates an ImportScreen.
func New(engine *exam.Engine) *ImportScreen {
	return &ImportScreen{
		engine: engine,
		input:  components.NewTextInput("questions.txt more.txt", false, 0),
	}
}

func (s *ImportScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ImportScreen) Title() string {
	return "Import"
}

func (s *ImportScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Import"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *ImportScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case importDoneMsg:
		s.running = false
		res := s.engine.Accept(msg.Result)
		if res.OK() && len(res.Messages()) == 0 {
			return s, router.Cmd(router.PopScreenMsg{})
		}
		s.result = &res
		return s, nil

	case tea.KeyPressMsg:
		if s.running {
			return s, nil
		}
		if s.result != nil {
			return s, router.Cmd(router.PopScreenMsg{})
		}
		switch msg.String() {
		case "esc":
			return s, router.Cmd(router.PopScreenMsg{})
		case "enter":
			paths := s.input.Fields()
			if len(paths) == 0 {
				return s, nil
			}
			s.running = true
			return s, importCmd(paths, s.engine.Config().Strict)
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// importCmd reads and validates the files off the event loop. The engine
// takes the result back on the loop.
func importCmd(paths []string, strict bool) tea.Cmd {
	return func() tea.Msg {
		return importDoneMsg{Result: bank.ImportFiles(context.Background(), paths, bank.ImportOptions{Strict: strict})}
	}
}

func (s *ImportScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body.Bold(true), "Question files"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint, "Separate paths with spaces. All files are imported as one batch."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(min(width-8, 60)).Render(s.input.View())))
	b.WriteString("\n\n")

	switch {
	case s.running:
		b.WriteString(layout.Centered(width, theme.Hint, "Importing…"))
	case s.result != nil:
		b.WriteString(renderResult(*s.result, width))
	}
	return b.String()
}

func renderResult(res bank.ImportResult, width int) string {
	var lines []string
	if res.OK() {
		lines = append(lines, theme.Correct.Render(fmt.Sprintf("Imported %d questions.", len(res.Questions))))
	} else {
		lines = append(lines, theme.Incorrect.Render("Import rejected."))
	}
	for _, m := range res.Messages() {
		lines = append(lines, theme.Warning.MaxWidth(width-8).Render("• "+m))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(lines, "\n"))
}

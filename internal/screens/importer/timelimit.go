package importer

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/timer"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// TimeLimitScreen edits the countdown length of the next session.
type TimeLimitScreen struct {
	engine *exam.Engine
	input  components.TextInput
}

var _ screen.Screen = (*TimeLimitScreen)(nil)
var _ screen.KeyHintProvider = (*TimeLimitScreen)(nil)

// NewTimeLimit creates a TimeLimitScreen prefilled with the current limit.
func NewTimeLimit(engine *exam.Engine) *TimeLimitScreen {
	in := components.NewTextInput(fmt.Sprint(timer.DefaultMinutes), true, 4)
	in.SetValue(fmt.Sprint(engine.Config().TimeLimitMinutes))
	return &TimeLimitScreen{engine: engine, input: in}
}

func (s *TimeLimitScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *TimeLimitScreen) Title() string {
	return "Time limit"
}

func (s *TimeLimitScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *TimeLimitScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, router.Cmd(router.PopScreenMsg{})
		case "enter":
			s.engine.SetTimeLimit(s.input.Value())
			return s, router.Cmd(router.PopScreenMsg{})
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TimeLimitScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(width, theme.Body.Bold(true), "Minutes per session"))
	b.WriteString("\n")
	b.WriteString(layout.Centered(width, theme.Hint,
		fmt.Sprintf("Blank or zero falls back to %d minutes.", timer.DefaultMinutes)))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(20).Render(s.input.View())))
	return b.String()
}

package home

import (
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screens/importer"
	"github.com/abhisek/quizdeck/internal/screens/quiz"
)

const sample = `1. Capital of France?
A. Paris*
B. Rome
C. Madrid
D. Berlin
`

func newEngine(cfg exam.Config, withBank bool) *exam.Engine {
	e := exam.NewEngine(cfg, exam.WithLogger(slog.New(slog.DiscardHandler)))
	if withBank {
		e.Import([]bank.Source{{Name: "q.txt", Text: sample}})
	}
	return e
}

func enter(t *testing.T, h *HomeScreen) tea.Msg {
	t.Helper()
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	return cmd()
}

func TestHomeScreen_EmptyBankSelectsImport(t *testing.T) {
	h := New(newEngine(exam.DefaultConfig(), false))
	assert.True(t, h.menu.Items[0].Disabled)
	assert.True(t, h.menu.Items[1].Disabled)
	assert.Equal(t, 2, h.menu.Selected)
	assert.Contains(t, h.View(100, 30), "Import a question file")

	msg, ok := enter(t, h).(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &importer.ImportScreen{}, msg.Screen)
}

func TestHomeScreen_StartExam(t *testing.T) {
	e := newEngine(exam.DefaultConfig(), true)
	h := New(e)
	assert.Equal(t, 0, h.menu.Selected)

	msg, ok := enter(t, h).(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &quiz.QuizScreen{}, msg.Screen)
	require.NotNil(t, e.Session())
	assert.Equal(t, exam.ModeExam, e.Session().Mode())
	assert.Equal(t, exam.PhaseActive, e.Session().Phase())
}

func TestHomeScreen_StudyDefault(t *testing.T) {
	cfg := exam.DefaultConfig()
	cfg.Mode = exam.ModeStudy
	h := New(newEngine(cfg, true))
	assert.Equal(t, 1, h.menu.Selected)
}

func TestHomeScreen_ResumeRefreshesMenu(t *testing.T) {
	e := newEngine(exam.DefaultConfig(), false)
	h := New(e)
	assert.True(t, h.menu.Items[0].Disabled)

	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})
	e.SetTimeLimit("25")
	h.Resume()

	assert.False(t, h.menu.Items[0].Disabled)
	assert.Equal(t, "25 min", h.menu.Items[3].Hint)
	assert.Equal(t, 2, h.menu.Selected, "selection survives a refresh")
}

func TestHomeScreen_ShowsImportProblems(t *testing.T) {
	e := newEngine(exam.DefaultConfig(), false)
	e.Import([]bank.Source{{Name: "bad.txt", Text: "1. Q\nA. a*\nC. c\nB. b\nD. d"}})
	view := New(e).View(100, 30)
	assert.True(t, strings.Contains(view, "bad.txt"), "expected validation message in view")
}

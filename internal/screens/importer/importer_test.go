package importer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
)

const sample = `1. Capital of France?
A. Paris*
B. Rome
C. Madrid
D. Berlin
`

func newEngine() *exam.Engine {
	return exam.NewEngine(exam.DefaultConfig(), exam.WithLogger(slog.New(slog.DiscardHandler)))
}

func writeFile(t *testing.T, name, text string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(text), 0o644))
	return p
}

// submit presses enter and feeds the background import back to the screen.
func submit(t *testing.T, s *ImportScreen, paths ...string) tea.Cmd {
	t.Helper()
	s.input.SetValue(strings.Join(paths, " "))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, s.running)
	assert.Contains(t, s.View(80, 24), "Importing")

	_, cmd = s.Update(cmd())
	return cmd
}

func TestImportScreen_CleanImportPops(t *testing.T) {
	e := newEngine()
	s := New(e)

	cmd := submit(t, s, writeFile(t, "a.txt", sample), writeFile(t, "b.txt", sample))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, 2, e.BankSize())
}

func TestImportScreen_RejectedShowsMessages(t *testing.T) {
	e := newEngine()
	s := New(e)

	cmd := submit(t, s, writeFile(t, "bad.txt", "1. Q\nA. a*\nC. c\nB. b\nD. d"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, e.BankSize())

	view := s.View(100, 24)
	assert.Contains(t, view, "Import rejected.")
	assert.Contains(t, view, "bad.txt")

	_, cmd = s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestImportScreen_PartialFileErrorStays(t *testing.T) {
	e := newEngine()
	s := New(e)

	cmd := submit(t, s, writeFile(t, "a.txt", sample), filepath.Join(t.TempDir(), "missing.txt"))
	assert.Nil(t, cmd, "problems keep the screen open")
	assert.Equal(t, 1, e.BankSize())
	assert.Contains(t, s.View(100, 24), "Imported 1 questions.")
}

func TestImportScreen_EmptyInputIgnored(t *testing.T) {
	s := New(newEngine())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, s.running)
}

func TestImportScreen_EscCancels(t *testing.T) {
	s := New(newEngine())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestTimeLimitScreen_Save(t *testing.T) {
	e := newEngine()
	s := NewTimeLimit(e)
	assert.Equal(t, "10", s.input.Value())

	s.input.SetValue("25")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Equal(t, 25, e.Config().TimeLimitMinutes)

	s = NewTimeLimit(e)
	s.input.SetValue("0")
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, 10, e.Config().TimeLimitMinutes, "zero falls back to the default")
}

func TestTimeLimitScreen_RejectsLetters(t *testing.T) {
	s := NewTimeLimit(newEngine())
	s.input.SetValue("")
	s.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	assert.Equal(t, "", s.input.Value())
}

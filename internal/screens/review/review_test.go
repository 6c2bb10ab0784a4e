package review

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
)

const sample = `1. Alpha?
A. a*
B. b
C. c
D. d

2. Beta?
A. a
B. b*
C. c
D. d

3. Gamma?
A. a
B. b
C. c*
D. d
`

func reviewing(t *testing.T) (*exam.Engine, *exam.Session) {
	t.Helper()
	ctx := context.Background()
	e := exam.NewEngine(exam.DefaultConfig(),
		exam.WithRand(bank.NewRand(1)),
		exam.WithLogger(slog.New(slog.DiscardHandler)))
	require.True(t, e.Import([]bank.Source{{Name: "q.txt", Text: sample}}).OK())
	s, err := e.StartSession(ctx, exam.ModeExam)
	require.NoError(t, err)
	first, err := s.View(1)
	require.NoError(t, err)
	require.NoError(t, e.RecordAnswer(ctx, 1, first.Correct.Letters()[0]))
	require.NoError(t, e.ToggleFlag(ctx, 3))
	require.NoError(t, e.BeginReview(ctx))
	return e, s
}

func press(s *ReviewScreen, msg tea.KeyPressMsg) tea.Msg {
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

func TestReviewScreen_FilterCycle(t *testing.T) {
	e, _ := reviewing(t)
	s := New(e)
	assert.Len(t, s.items(), 3)

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, exam.FilterUnanswered, s.filter)
	assert.Len(t, s.items(), 2)

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, exam.FilterFlagged, s.filter)
	require.Len(t, s.items(), 1)
	assert.Equal(t, 3, s.items()[0].Number)

	press(s, tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Equal(t, exam.FilterAll, s.filter)
}

func TestReviewScreen_RevisitSelected(t *testing.T) {
	e, sess := reviewing(t)
	s := New(e)

	press(s, tea.KeyPressMsg{Code: tea.KeyDown})
	msg := press(s, tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.IsType(t, router.PopScreenMsg{}, msg)
	assert.Equal(t, exam.PhaseActive, sess.Phase())
	assert.Equal(t, 2, sess.Current().Number)
}

func TestReviewScreen_EscReturnsToCurrent(t *testing.T) {
	e, sess := reviewing(t)
	s := New(e)
	msg := press(s, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.IsType(t, router.PopScreenMsg{}, msg)
	assert.Equal(t, exam.PhaseActive, sess.Phase())
}

func TestReviewScreen_Grade(t *testing.T) {
	e, sess := reviewing(t)
	s := New(e)
	msg := press(s, tea.KeyPressMsg{Code: 'g', Text: "g"})
	assert.IsType(t, router.PopScreenMsg{}, msg)
	assert.Equal(t, exam.PhaseCompleted, sess.Phase())
	assert.Equal(t, exam.ReasonGraded, sess.Reason())
	assert.Equal(t, 1, sess.Score().Correct)
}

func TestReviewScreen_SessionEndedPops(t *testing.T) {
	e, _ := reviewing(t)
	_, cmd := New(e).Update(screen.SessionEndedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestReviewScreen_View(t *testing.T) {
	e, _ := reviewing(t)
	view := New(e).View(100, 30)
	for _, want := range []string{"Unanswered", "Flagged", "1 of 3 answered", "10:00", "Gamma?"} {
		assert.True(t, strings.Contains(view, want), "view missing %q", want)
	}
}

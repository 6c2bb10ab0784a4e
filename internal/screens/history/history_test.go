package history

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/store"
)

type fakeRepo struct {
	attempts []store.AttemptRecord
	events   map[string][]store.AttemptEvent
}

func (f *fakeRepo) AttemptEvents(_ context.Context, id string) ([]store.AttemptEvent, error) {
	return f.events[id], nil
}

func (f *fakeRepo) History(context.Context) ([]store.AttemptRecord, error) {
	return f.attempts, nil
}

func newRepo() *fakeRepo {
	start := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)
	return &fakeRepo{
		attempts: []store.AttemptRecord{
			{SessionID: "b", Mode: "exam", StartedAt: start.Add(time.Hour), Total: 4},
			{SessionID: "a", Mode: "exam", StartedAt: start, FinishedAt: start.Add(90 * time.Second),
				Total: 4, Correct: 3, Reason: "graded", Completed: true},
		},
		events: map[string][]store.AttemptEvent{
			"b": {
				{AttemptEventData: store.AttemptEventData{SessionID: "b", Action: store.ActionStart}},
				{AttemptEventData: store.AttemptEventData{SessionID: "b", Action: store.ActionAnswer}},
				{AttemptEventData: store.AttemptEventData{SessionID: "b", Action: store.ActionAnswer}},
				{AttemptEventData: store.AttemptEventData{SessionID: "b", Action: store.ActionFlag}},
			},
		},
	}
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	if cmd == nil {
		t.Fatal("expected load command")
	}
	s.Update(cmd())
}

func TestHistoryScreen_ListsAttempts(t *testing.T) {
	s := New(newRepo())
	if !strings.Contains(s.View(80, 24), "Loading") {
		t.Error("expected loading view before data arrives")
	}
	load(t, s)

	view := s.View(80, 24)
	if !strings.Contains(view, "incomplete") {
		t.Error("expected incomplete attempt")
	}
	if !strings.Contains(view, "3/4 (75%)") {
		t.Error("expected graded score")
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	s := New(&fakeRepo{})
	load(t, s)
	if !strings.Contains(s.View(80, 24), "No attempts yet") {
		t.Error("expected empty-state message")
	}
}

func TestHistoryScreen_ExpandLoadsEvents(t *testing.T) {
	s := New(newRepo())
	load(t, s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected events load on first expand")
	}
	s.Update(cmd())
	if !strings.Contains(s.View(80, 24), "answers 2 · flags 1 · reviews 0") {
		t.Errorf("expected journal counts, got:\n%s", s.View(80, 24))
	}

	// Collapse and expand again: cached, no reload.
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if _, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter}); cmd != nil {
		t.Error("expected cached events on re-expand")
	}
}

func TestHistoryScreen_ReadsThroughEngine(t *testing.T) {
	st, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e := exam.NewEngine(exam.DefaultConfig(),
		exam.WithEventRepo(st.EventRepo()),
		exam.WithLogger(slog.New(slog.DiscardHandler)))
	require.True(t, e.Import([]bank.Source{{Name: "q.txt", Text: "1. Q?\nA. x*\nB. y\nC. z\nD. w"}}).OK())
	ctx := context.Background()
	_, err = e.StartSession(ctx, exam.ModeExam)
	require.NoError(t, err)
	require.NoError(t, e.RecordAnswer(ctx, 1, bank.LetterA))
	require.NoError(t, e.Grade(ctx))

	s := New(e)
	load(t, s)
	if !strings.Contains(s.View(80, 24), "1/1 (100%)") {
		t.Errorf("expected graded attempt, got:\n%s", s.View(80, 24))
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	s.Update(cmd())
	if !strings.Contains(s.View(80, 24), "answers 1 · flags 0 · reviews 0") {
		t.Errorf("expected journal counts, got:\n%s", s.View(80, 24))
	}
}

func TestHistoryScreen_Navigation(t *testing.T) {
	s := New(newRepo())
	load(t, s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if s.selected != 1 {
		t.Errorf("selected = %d, want 1", s.selected)
	}

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected command on Esc")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

package exam

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func newEngine(t *testing.T, cfg Config) (*Engine, store.EventRepo) {
	t.Helper()
	repo := openRepo(t)
	e := NewEngine(cfg,
		WithEventRepo(repo),
		WithRand(bank.NewRand(7)),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	return e, repo
}

func TestEngine_StartRequiresBank(t *testing.T) {
	e, _ := newEngine(t, DefaultConfig())
	_, err := e.StartSession(context.Background(), ModeExam)
	assert.ErrorIs(t, err, ErrNoQuestions)
	assert.ErrorIs(t, e.Grade(context.Background()), ErrNotStarted)
	assert.False(t, e.Tick(context.Background()))
}

func TestEngine_ImportAndStart(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, DefaultConfig())

	res := e.Import([]bank.Source{{Name: "a.txt", Text: sample}, {Name: "b.txt", Text: sample}})
	require.True(t, res.OK())
	assert.Equal(t, 6, e.BankSize())

	s, err := e.StartSession(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, ModeExam, s.Mode())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.Equal(t, 600, s.Remaining())
	assert.NotEmpty(t, s.ID())
	for i, v := range s.Views() {
		assert.Equal(t, i+1, v.Number)
	}
}

func TestEngine_FailedImportDiscardsSession(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, DefaultConfig())
	e.Import([]bank.Source{{Name: "a.txt", Text: sample}})
	_, err := e.StartSession(ctx, ModeStudy)
	require.NoError(t, err)

	res := e.Import([]bank.Source{{Name: "bad.txt", Text: "1. Q\nA. a\nB. b*\nD. d\nC. c"}})
	assert.ErrorIs(t, res.Err, bank.ErrValidation)
	assert.Nil(t, e.Session())
	assert.Equal(t, 0, e.BankSize())
	assert.Equal(t, res.Err, e.LastImport().Err)
}

func TestEngine_StrictConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	e, _ := newEngine(t, cfg)
	res := e.Import([]bank.Source{{Name: "q.txt", Text: sample + "\n4. Short\nA. a*\nB. b\n"}})
	assert.False(t, res.OK())
}

func TestEngine_JournalAndHistory(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, DefaultConfig())
	e.Import([]bank.Source{{Name: "one.txt", Text: "1. Q?\nA. x*\nB. y\nC. z\nD. w"}})

	s, err := e.StartSession(ctx, ModeExam)
	require.NoError(t, err)
	assert.ErrorIs(t, e.RecordAnswer(ctx, 99, bank.LetterA), ErrUnknownQuestion)
	require.NoError(t, e.RecordAnswer(ctx, 1, bank.LetterA))
	require.NoError(t, e.ToggleFlag(ctx, 1))
	require.NoError(t, e.BeginReview(ctx))
	require.NoError(t, e.Revisit(ctx, 1))
	require.NoError(t, e.Grade(ctx))

	events, err := e.AttemptEvents(ctx, s.ID())
	require.NoError(t, err)
	var actions []string
	for _, ev := range events {
		actions = append(actions, ev.Action)
		assert.Equal(t, "exam", ev.Mode)
	}
	assert.Equal(t, []string{
		store.ActionStart, store.ActionAnswer, store.ActionFlag,
		store.ActionReview, store.ActionRevisit, store.ActionComplete,
	}, actions)
	assert.Equal(t, "A", events[1].Letters)

	history, err := e.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Completed)
	assert.Equal(t, 1, history[0].Correct)
	assert.Equal(t, 1, history[0].Total)
	assert.Equal(t, string(ReasonGraded), history[0].Reason)
}

func TestEngine_NoJournal(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(DefaultConfig(), WithLogger(slog.New(slog.DiscardHandler)))
	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})
	s, err := e.StartSession(ctx, ModeStudy)
	require.NoError(t, err)

	history, err := e.History(ctx)
	assert.NoError(t, err)
	assert.Empty(t, history)
	events, err := e.AttemptEvents(ctx, s.ID())
	assert.NoError(t, err)
	assert.Empty(t, events)
}

func TestEngine_TickExpiryIsJournaledOnce(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.TimeLimitMinutes = 1
	e, _ := newEngine(t, cfg)
	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})
	s, err := e.StartSession(ctx, ModeExam)
	require.NoError(t, err)

	expiries := 0
	for i := 0; i < 90; i++ {
		if e.Tick(ctx) {
			expiries++
		}
	}
	assert.Equal(t, 1, expiries)
	assert.True(t, s.Expired())

	history, err := e.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, string(ReasonExpired), history[0].Reason)
}

func TestEngine_RetakeReshuffles(t *testing.T) {
	ctx := context.Background()
	e, _ := newEngine(t, DefaultConfig())
	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})

	first, err := e.StartSession(ctx, ModeStudy)
	require.NoError(t, err)
	require.NoError(t, e.RecordAnswer(ctx, 1, first.Current().Answers[0].Letter))

	second, err := e.Retake(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Equal(t, ModeStudy, second.Mode())
	assert.Equal(t, 0, second.AnsweredCount())
	assert.Same(t, second, e.Session())

	history, err := e.History(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestEngine_AnswersAfterCompletionAreIgnored(t *testing.T) {
	ctx := context.Background()
	e, repo := newEngine(t, DefaultConfig())
	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})
	s, err := e.StartSession(ctx, ModeExam)
	require.NoError(t, err)
	require.NoError(t, e.Grade(ctx))

	require.NoError(t, e.RecordAnswer(ctx, 1, bank.LetterA))
	require.NoError(t, e.ToggleFlag(ctx, 1))
	events, err := repo.SessionEvents(ctx, s.ID())
	require.NoError(t, err)
	assert.Len(t, events, 2, "start and complete only")
}

type failingRepo struct{ store.EventRepo }

func (failingRepo) AppendAttemptEvent(context.Context, store.AttemptEventData) error {
	return errors.New("disk on fire")
}

func TestEngine_JournalFailureIsOnlyLogged(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	e := NewEngine(DefaultConfig(),
		WithEventRepo(failingRepo{}),
		WithLogger(slog.New(slog.NewTextHandler(&buf, nil))),
	)
	e.Import([]bank.Source{{Name: "q.txt", Text: sample}})

	_, err := e.StartSession(ctx, ModeExam)
	require.NoError(t, err)
	require.NoError(t, e.RecordAnswer(ctx, 1, bank.LetterA))
	assert.True(t, strings.Contains(buf.String(), "journal append failed"))
}

func TestEngine_SetTimeLimit(t *testing.T) {
	e := NewEngine(DefaultConfig())
	assert.Equal(t, 25, e.SetTimeLimit("25"))
	assert.Equal(t, 10, e.SetTimeLimit("soon"))
	assert.Equal(t, 600, e.Config().TimeLimitSeconds())
}

package exam

import (
	"context"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/timer"
)

// Engine owns the imported question bank and the current session. All
// mutations go through it so the attempt journal sees every step.
type Engine struct {
	cfg     Config
	rng     *rand.Rand
	events  store.EventRepo
	logger  *slog.Logger
	bank    []bank.Question
	last    bank.ImportResult
	session *Session
}

// Option configures an Engine.
type Option func(*Engine)

// WithEventRepo journals attempt events to repo.
func WithEventRepo(repo store.EventRepo) Option {
	return func(e *Engine) { e.events = repo }
}

// WithLogger sets the logger used for warnings.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithRand sets the shuffle source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// NewEngine creates an engine with no bank loaded.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = bank.NewRand(cfg.Seed)
	}
	return e
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// SetTimeLimit parses a user-entered number of minutes for the next
// session and returns the minutes in effect.
func (e *Engine) SetTimeLimit(input string) int {
	e.cfg.TimeLimitMinutes = timer.LimitFromMinutes(input) / 60
	return e.cfg.TimeLimitMinutes
}

// Import replaces the bank with sources. The current session is discarded
// whatever the outcome; the bank is kept only on success.
func (e *Engine) Import(sources []bank.Source) bank.ImportResult {
	return e.Accept(bank.Import(sources, bank.ImportOptions{Strict: e.cfg.Strict}))
}

// ImportFiles reads paths concurrently and imports them as one batch.
func (e *Engine) ImportFiles(ctx context.Context, paths []string) bank.ImportResult {
	return e.Accept(bank.ImportFiles(ctx, paths, bank.ImportOptions{Strict: e.cfg.Strict}))
}

// Accept installs the result of an import made elsewhere, such as on a
// background goroutine. It follows the same rules as Import.
func (e *Engine) Accept(res bank.ImportResult) bank.ImportResult {
	e.session = nil
	e.last = res
	e.bank = nil
	if res.OK() {
		e.bank = res.Questions
	}

	for _, fe := range res.FileErrors {
		e.logger.Warn("bank file unreadable", "path", fe.Path, "error", fe.Err)
	}
	for _, d := range res.Dropped {
		e.logger.Debug("question block dropped",
			"source", d.Source, "line", d.Line, "reason", string(d.Reason))
	}
	e.logger.Info("bank imported",
		"sources", res.Sources,
		"questions", len(e.bank),
		"dropped", len(res.Dropped),
		"problems", len(res.Messages()),
	)
	return res
}

// LastImport returns the result of the most recent import.
func (e *Engine) LastImport() bank.ImportResult { return e.last }

// BankSize returns the number of questions available for a session.
func (e *Engine) BankSize() int { return len(e.bank) }

// Session returns the current session, or nil.
func (e *Engine) Session() *Session { return e.session }

// StartSession shuffles the bank into a new session and starts it.
func (e *Engine) StartSession(ctx context.Context, mode Mode) (*Session, error) {
	if len(e.bank) == 0 {
		return nil, ErrNoQuestions
	}
	if mode == "" {
		mode = e.cfg.Mode
	}

	s := New(bank.ShuffleAndRenumber(e.bank, e.rng), SessionConfig{
		ID:               uuid.New().String(),
		Mode:             mode,
		TimeLimitSeconds: e.cfg.TimeLimitSeconds(),
	})
	if err := s.Start(); err != nil {
		return nil, err
	}
	e.session = s
	e.journal(ctx, store.AttemptEventData{
		Action:        store.ActionStart,
		Total:         s.Total(),
		RemainingSecs: s.Remaining(),
	})
	return s, nil
}

// Retake discards the current session and starts a freshly shuffled one
// in the same mode.
func (e *Engine) Retake(ctx context.Context) (*Session, error) {
	mode := e.cfg.Mode
	if e.session != nil {
		mode = e.session.Mode()
	}
	e.session = nil
	return e.StartSession(ctx, mode)
}

// Discard drops the current session without grading it.
func (e *Engine) Discard() {
	e.session = nil
}

// RecordAnswer forwards to the current session and journals the answer.
func (e *Engine) RecordAnswer(ctx context.Context, number int, letters ...bank.Letter) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if s.Phase() == PhaseCompleted {
		return nil
	}
	if err := s.RecordAnswer(number, letters...); err != nil {
		return err
	}
	v, err := s.View(number)
	if err != nil {
		return err
	}
	e.journal(ctx, store.AttemptEventData{
		Action:   store.ActionAnswer,
		Question: number,
		Letters:  v.Selected.String(),
	})
	e.journalCompletion(ctx, s)
	return nil
}

// ToggleFlag forwards to the current session and journals the flag.
func (e *Engine) ToggleFlag(ctx context.Context, number int) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if s.Phase() == PhaseCompleted {
		return nil
	}
	if err := s.ToggleFlag(number); err != nil {
		return err
	}
	e.journal(ctx, store.AttemptEventData{Action: store.ActionFlag, Question: number})
	return nil
}

// BeginReview moves the current exam to the review overview.
func (e *Engine) BeginReview(ctx context.Context) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := s.BeginReview(); err != nil {
		return err
	}
	e.journal(ctx, store.AttemptEventData{Action: store.ActionReview})
	return nil
}

// Revisit returns from review to a question.
func (e *Engine) Revisit(ctx context.Context, number int) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := s.Revisit(number); err != nil {
		return err
	}
	e.journal(ctx, store.AttemptEventData{Action: store.ActionRevisit, Question: number})
	return nil
}

// Grade completes the current session.
func (e *Engine) Grade(ctx context.Context) error {
	s, err := e.active()
	if err != nil {
		return err
	}
	if err := s.Grade(); err != nil {
		return err
	}
	e.journalCompletion(ctx, s)
	return nil
}

// Tick advances the current session's countdown by one second. It returns
// true when the tick expired the session.
func (e *Engine) Tick(ctx context.Context) bool {
	if e.session == nil {
		return false
	}
	expired := e.session.Tick()
	if expired {
		e.journalCompletion(ctx, e.session)
	}
	return expired
}

// History returns the attempts journaled in this process, most recent first.
// It only reads the journal, so it may run inside a tea.Cmd.
func (e *Engine) History(ctx context.Context) ([]store.AttemptRecord, error) {
	if e.events == nil {
		return nil, nil
	}
	return e.events.Attempts(ctx)
}

// AttemptEvents returns the journaled steps of one session in order.
func (e *Engine) AttemptEvents(ctx context.Context, sessionID string) ([]store.AttemptEvent, error) {
	if e.events == nil {
		return nil, nil
	}
	return e.events.SessionEvents(ctx, sessionID)
}

func (e *Engine) active() (*Session, error) {
	if e.session == nil {
		return nil, ErrNotStarted
	}
	return e.session, nil
}

func (e *Engine) journalCompletion(ctx context.Context, s *Session) {
	if s.Phase() != PhaseCompleted {
		return
	}
	score := s.Score()
	e.logger.Info("session completed",
		"session_id", s.ID(),
		"mode", string(s.Mode()),
		"reason", string(s.Reason()),
		"score", score.String(),
	)
	e.journal(ctx, store.AttemptEventData{
		Action:        store.ActionComplete,
		Correct:       score.Correct,
		Total:         score.Total,
		Reason:        string(s.Reason()),
		RemainingSecs: s.Remaining(),
	})
}

// journal stamps data with the current session and appends it. Failures are
// logged and never surface to the user.
func (e *Engine) journal(ctx context.Context, data store.AttemptEventData) {
	if e.events == nil || e.session == nil {
		return
	}
	data.SessionID = e.session.ID()
	data.Mode = string(e.session.Mode())
	if err := e.events.AppendAttemptEvent(ctx, data); err != nil {
		e.logger.Warn("journal append failed", "action", data.Action, "error", err)
	}
}

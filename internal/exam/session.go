package exam

import (
	"fmt"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/timer"
)

// SessionConfig configures a new session.
type SessionConfig struct {
	ID               string
	Mode             Mode
	TimeLimitSeconds int // non-positive means timer.DefaultMinutes
}

// Session is one attempt at a question set. It is driven from a single
// event loop and holds no locks.
type Session struct {
	id     string
	mode   Mode
	phase  Phase
	reason Reason

	items   []*Item
	index   map[int]int // question number -> position in items
	current int         // position of the current question

	clock *timer.Countdown
}

// New creates a session over questions in PhaseLoading. The questions are
// copied, so later changes to the slice do not leak in.
func New(questions []bank.Question, cfg SessionConfig) *Session {
	if cfg.Mode == "" {
		cfg.Mode = ModeExam
	}
	s := &Session{
		id:    cfg.ID,
		mode:  cfg.Mode,
		phase: PhaseLoading,
		index: make(map[int]int, len(questions)),
		clock: timer.New(cfg.TimeLimitSeconds),
	}
	for i, q := range questions {
		s.items = append(s.items, &Item{Question: q.Clone()})
		s.index[q.Number] = i
	}
	s.clock.OnExpire(func() { s.complete(ReasonExpired) })
	return s
}

// Start moves a loading session to PhaseActive: selections and flags are
// cleared, the first question becomes current and the countdown starts.
func (s *Session) Start() error {
	if s.phase != PhaseLoading {
		return fmt.Errorf("start from %s: %w", s.phase, ErrInvalidTransition)
	}
	if len(s.items) == 0 {
		return ErrNoQuestions
	}
	for _, it := range s.items {
		it.Selected = 0
		it.Flagged = false
	}
	s.current = 0
	s.phase = PhaseActive
	s.clock.Start()
	return nil
}

// BeginReview moves an active exam to PhaseReviewing.
func (s *Session) BeginReview() error {
	if s.mode == ModeStudy {
		return fmt.Errorf("begin review: %w", ErrStudyMode)
	}
	if s.phase != PhaseActive {
		return fmt.Errorf("begin review from %s: %w", s.phase, ErrInvalidTransition)
	}
	s.phase = PhaseReviewing
	return nil
}

// Revisit returns from review to the given question.
func (s *Session) Revisit(number int) error {
	if s.phase != PhaseReviewing {
		return fmt.Errorf("revisit from %s: %w", s.phase, ErrInvalidTransition)
	}
	pos, err := s.lookup(number)
	if err != nil {
		return fmt.Errorf("revisit: %w", err)
	}
	s.current = pos
	s.phase = PhaseActive
	return nil
}

// Grade completes an active or reviewing session.
func (s *Session) Grade() error {
	if s.phase != PhaseActive && s.phase != PhaseReviewing {
		return fmt.Errorf("grade from %s: %w", s.phase, ErrInvalidTransition)
	}
	s.complete(ReasonGraded)
	return nil
}

// RecordAnswer applies letters to a question. A single-answer question takes
// exactly one letter, which replaces the prior selection. A multi-answer
// question toggles each letter. Answers are frozen once completed.
func (s *Session) RecordAnswer(number int, letters ...bank.Letter) error {
	switch s.phase {
	case PhaseLoading:
		return fmt.Errorf("record answer: %w", ErrNotStarted)
	case PhaseCompleted:
		return nil
	}
	pos, err := s.lookup(number)
	if err != nil {
		return fmt.Errorf("record answer: %w", err)
	}
	for _, l := range letters {
		if !l.Valid() {
			return fmt.Errorf("record answer for question %d: letter %q: %w", number, byte(l), ErrInvalidSelection)
		}
	}

	it := s.items[pos]
	switch it.Question.Key.(type) {
	case bank.SingleKey:
		if len(letters) != 1 {
			return fmt.Errorf("record answer for question %d: %d letters for a single-answer question: %w",
				number, len(letters), ErrInvalidSelection)
		}
		it.Selected = bank.NewLetterSet(letters[0])
	case bank.MultiKey:
		for _, l := range letters {
			it.Selected = it.Selected.Toggle(l)
		}
	default:
		return fmt.Errorf("record answer for question %d: no answer key: %w", number, ErrInvalidSelection)
	}

	if s.mode == ModeStudy && s.AnsweredCount() == len(s.items) {
		s.complete(ReasonAllAnswered)
	}
	return nil
}

// ToggleFlag flips the review flag of a question. No-op once completed.
func (s *Session) ToggleFlag(number int) error {
	if s.phase == PhaseCompleted {
		return nil
	}
	pos, err := s.lookup(number)
	if err != nil {
		return fmt.Errorf("toggle flag: %w", err)
	}
	s.items[pos].Flagged = !s.items[pos].Flagged
	return nil
}

// Tick advances the countdown by one second while the session is running.
// It returns true on the tick that expires the session.
func (s *Session) Tick() bool {
	if s.phase != PhaseActive && s.phase != PhaseReviewing {
		return false
	}
	return s.clock.Tick()
}

// Next moves to the following question. It reports whether it moved.
func (s *Session) Next() bool {
	if s.current+1 >= len(s.items) {
		return false
	}
	s.current++
	return true
}

// Prev moves to the preceding question. It reports whether it moved.
func (s *Session) Prev() bool {
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Goto makes the given question current.
func (s *Session) Goto(number int) error {
	pos, err := s.lookup(number)
	if err != nil {
		return fmt.Errorf("goto: %w", err)
	}
	s.current = pos
	return nil
}

func (s *Session) complete(r Reason) {
	if s.phase == PhaseCompleted {
		return
	}
	s.phase = PhaseCompleted
	s.reason = r
	s.clock.Stop()
}

func (s *Session) lookup(number int) (int, error) {
	pos, ok := s.index[number]
	if !ok {
		return 0, fmt.Errorf("question %d: %w", number, ErrUnknownQuestion)
	}
	return pos, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Mode returns the session mode.
func (s *Session) Mode() Mode { return s.mode }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Reason returns why the session completed, or ReasonNone.
func (s *Session) Reason() Reason { return s.reason }

// Expired reports whether the countdown ended the session.
func (s *Session) Expired() bool { return s.clock.Expired() }

// Running reports whether the countdown is ticking.
func (s *Session) Running() bool { return s.clock.Running() }

// Remaining returns the seconds left on the countdown.
func (s *Session) Remaining() int { return s.clock.Remaining() }

// TimeLimit returns the countdown's starting seconds.
func (s *Session) TimeLimit() int { return s.clock.Limit() }

// Elapsed returns the seconds counted so far.
func (s *Session) Elapsed() int { return s.clock.Elapsed() }

// Total returns the number of questions.
func (s *Session) Total() int { return len(s.items) }

// Position returns the 1-based position of the current question.
func (s *Session) Position() int { return s.current + 1 }

// AnsweredCount returns how many questions have a non-empty selection.
func (s *Session) AnsweredCount() int {
	n := 0
	for _, it := range s.items {
		if it.Answered() {
			n++
		}
	}
	return n
}

// FlaggedCount returns how many questions are flagged.
func (s *Session) FlaggedCount() int {
	n := 0
	for _, it := range s.items {
		if it.Flagged {
			n++
		}
	}
	return n
}

// Score counts exactly-correct questions.
func (s *Session) Score() Score {
	sc := Score{Total: len(s.items)}
	for _, it := range s.items {
		if it.IsCorrect() {
			sc.Correct++
		}
	}
	return sc
}

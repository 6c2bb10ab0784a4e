package quiz

import (
	"context"
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/exam"
	"github.com/abhisek/quizdeck/internal/router"
	"github.com/abhisek/quizdeck/internal/screen"
	"github.com/abhisek/quizdeck/internal/screens/review"
	"github.com/abhisek/quizdeck/internal/screens/summary"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/layout"
)

type dialog int

const (
	dialogNone dialog = iota
	dialogGrade
	dialogQuit
)

// QuizScreen shows one question at a time of the engine's current session.
type QuizScreen struct {
	engine  *exam.Engine
	session *exam.Session
	cursor  int
	dialog  dialog
	confirm components.Confirm
	errMsg  string
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.Resumer = (*QuizScreen)(nil)

// New creates a QuizScreen for a started session.
func New(engine *exam.Engine, session *exam.Session) *QuizScreen {
	return &QuizScreen{engine: engine, session: session}
}

// Init starts the countdown ticks of the session.
func (s *QuizScreen) Init() tea.Cmd {
	return screen.Tick(s.session.ID())
}

func (s *QuizScreen) Title() string {
	if s.session.Mode() == exam.ModeStudy {
		return "Study"
	}
	return "Exam"
}

// Resume runs when the review screen pops back: the exam may have been
// graded or expired there.
func (s *QuizScreen) Resume() tea.Cmd {
	s.cursor = 0
	return s.finishIfCompleted()
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Home"}}
	}
	if s.dialog != dialogNone {
		return []layout.KeyHint{
			{Key: "Y", Description: "Yes"},
			{Key: "N", Description: "No"},
			{Key: "←→", Description: "Choose"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "A-D", Description: "Answer"},
		{Key: "←→", Description: "Prev/Next"},
		{Key: "F", Description: "Flag"},
	}
	if s.session.Mode() == exam.ModeExam {
		hints = append(hints,
			layout.KeyHint{Key: "R", Description: "Review"},
			layout.KeyHint{Key: "G", Description: "Grade"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Quit"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SessionEndedMsg:
		return s, s.finishIfCompleted()
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Error state: any key abandons the session.
	if s.errMsg != "" {
		s.engine.Discard()
		return s, router.Cmd(router.PopToRootMsg{})
	}

	if s.dialog != dialogNone {
		return s.handleDialog(msg)
	}

	ctx := context.Background()
	cur := s.session.Current()

	if l, ok := letterForKey(key); ok {
		return s, s.answer(ctx, cur.Number, l)
	}

	switch key {
	case "up", "k":
		list := s.answerList(cur)
		list.MoveUp()
		s.cursor = list.Cursor
	case "down", "j":
		list := s.answerList(cur)
		list.MoveDown()
		s.cursor = list.Cursor
	case "space", "enter":
		if l, ok := bank.LetterAt(s.cursor); ok {
			return s, s.answer(ctx, cur.Number, l)
		}
	case "right", "l", "n":
		if s.session.Next() {
			s.cursor = 0
		}
	case "left", "h", "p":
		if s.session.Prev() {
			s.cursor = 0
		}
	case "f":
		if err := s.engine.ToggleFlag(ctx, cur.Number); err != nil {
			return s, s.fail(err)
		}
	case "r":
		if s.session.Mode() != exam.ModeExam {
			return s, nil
		}
		if err := s.engine.BeginReview(ctx); err != nil {
			return s, s.fail(err)
		}
		return s, router.Cmd(router.PushScreenMsg{Screen: review.New(s.engine)})
	case "g":
		if s.session.Mode() != exam.ModeExam {
			return s, nil
		}
		unanswered := s.session.Total() - s.session.AnsweredCount()
		detail := "All questions answered."
		if unanswered > 0 {
			detail = pluralize(unanswered, "question is", "questions are") + " still unanswered."
		}
		s.dialog = dialogGrade
		s.confirm = components.NewConfirm("Grade this exam now?", detail, "Grade", "Keep going")
	case "esc":
		s.dialog = dialogQuit
		s.confirm = components.NewConfirm("Quit this session?", "Answers will not be graded.", "Quit", "Keep going")
	}
	return s, nil
}

func (s *QuizScreen) handleDialog(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	var res components.ConfirmResult
	s.confirm, res = s.confirm.Update(msg)
	switch res {
	case components.ConfirmNo:
		s.dialog = dialogNone
	case components.ConfirmYes:
		d := s.dialog
		s.dialog = dialogNone
		if d == dialogQuit {
			s.engine.Discard()
			return s, router.Cmd(router.PopScreenMsg{})
		}
		if err := s.engine.Grade(context.Background()); err != nil {
			return s, s.fail(err)
		}
		return s, s.finishIfCompleted()
	}
	return s, nil
}

func (s *QuizScreen) answer(ctx context.Context, number int, l bank.Letter) tea.Cmd {
	if l.Index() >= len(s.session.Current().Answers) {
		return nil
	}
	s.cursor = l.Index()
	err := s.engine.RecordAnswer(ctx, number, l)
	if err != nil {
		return s.fail(err)
	}
	return s.finishIfCompleted()
}

// fail shows the error screen for contract violations. Anything else is
// a user action that does not apply here and is ignored.
func (s *QuizScreen) fail(err error) tea.Cmd {
	if errors.Is(err, exam.ErrUnknownQuestion) || errors.Is(err, exam.ErrNotStarted) {
		s.errMsg = err.Error()
	}
	return nil
}

// finishIfCompleted swaps this screen for the summary once the session
// has completed.
func (s *QuizScreen) finishIfCompleted() tea.Cmd {
	if s.session.Phase() != exam.PhaseCompleted {
		return nil
	}
	sum := s.session.Summary()
	return router.Cmd(router.ReplaceScreenMsg{Screen: summary.New(sum, s.retake)})
}

// retake starts a fresh shuffle of the same bank and returns the screen
// that runs it.
func (s *QuizScreen) retake() (screen.Screen, error) {
	next, err := s.engine.Retake(context.Background())
	if err != nil {
		return nil, err
	}
	return New(s.engine, next), nil
}

func letterForKey(key string) (bank.Letter, bool) {
	if len(key) != 1 {
		return 0, false
	}
	if key[0] >= '1' && key[0] <= '4' {
		return bank.LetterAt(int(key[0] - '1'))
	}
	return bank.ParseLetter(key)
}

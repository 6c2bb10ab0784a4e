package exam

import (
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/bank"
)

// Phase represents the lifecycle phase of a session.
type Phase int

const (
	PhaseLoading   Phase = iota // Questions loaded, clock not started
	PhaseActive                 // Answering questions
	PhaseReviewing              // Exam-mode overview before grading
	PhaseCompleted              // Terminal; answers are frozen
)

var phaseNames = [...]string{"loading", "active", "reviewing", "completed"}

func (p Phase) String() string {
	if int(p) < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Mode selects how a session ends and whether feedback is shown.
type Mode string

const (
	ModeExam  Mode = "exam"  // Feedback hidden until graded
	ModeStudy Mode = "study" // Feedback shown per answer; ends when all are answered
)

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeExam:
		return ModeExam, nil
	case ModeStudy:
		return ModeStudy, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want exam or study)", s)
	}
}

// Reason records why a session completed.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonExpired     Reason = "expired"
	ReasonGraded      Reason = "graded"
	ReasonAllAnswered Reason = "all-answered"
)

// Session contract errors. Callers match them with errors.Is.
var (
	ErrUnknownQuestion   = errors.New("unknown question number")
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrInvalidSelection  = errors.New("invalid answer selection")
	ErrNotStarted        = errors.New("session not started")
	ErrStudyMode         = errors.New("not available in study mode")
	ErrNoQuestions       = errors.New("no questions loaded")
)

// Item is one question in a session together with the user's state for it.
type Item struct {
	Question bank.Question
	Selected bank.LetterSet
	Flagged  bool
}

// Answered reports whether the item has a non-empty selection.
func (it *Item) Answered() bool { return !it.Selected.Empty() }

// IsCorrect reports whether the selection equals the key exactly.
// Multi-answer questions earn no partial credit.
func (it *Item) IsCorrect() bool {
	switch k := it.Question.Key.(type) {
	case bank.SingleKey:
		return it.Selected == bank.NewLetterSet(k.Correct)
	case bank.MultiKey:
		return it.Selected == k.Correct
	default:
		return false
	}
}

// Score is the number of exactly-correct questions out of the total.
type Score struct {
	Correct int
	Total   int
}

// Percent returns the score as a whole-number percentage.
func (s Score) Percent() int {
	if s.Total == 0 {
		return 0
	}
	return s.Correct * 100 / s.Total
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}

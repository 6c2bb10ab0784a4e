package exam

import "github.com/abhisek/quizdeck/internal/bank"

// Result is the graded outcome of one question.
type Result struct {
	Number    int
	Text      string
	Correct   bank.LetterSet
	Selected  bank.LetterSet
	Flagged   bool
	IsCorrect bool
}

// Summary holds the data shown after a session completes.
type Summary struct {
	SessionID string
	Mode      Mode
	Reason    Reason
	Expired   bool
	Score     Score
	Answered  int
	Flagged   int
	Elapsed   int // seconds
	TimeLimit int // seconds
	Results   []Result
}

// Summary builds the session summary. It may be called in any phase; the
// figures reflect the answers recorded so far.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID: s.id,
		Mode:      s.mode,
		Reason:    s.reason,
		Expired:   s.Expired(),
		Score:     s.Score(),
		Answered:  s.AnsweredCount(),
		Flagged:   s.FlaggedCount(),
		Elapsed:   s.Elapsed(),
		TimeLimit: s.TimeLimit(),
		Results:   make([]Result, 0, len(s.items)),
	}
	for _, it := range s.items {
		sum.Results = append(sum.Results, Result{
			Number:    it.Question.Number,
			Text:      it.Question.Text,
			Correct:   it.Question.Correct(),
			Selected:  it.Selected,
			Flagged:   it.Flagged,
			IsCorrect: it.IsCorrect(),
		})
	}
	return sum
}

// Missed returns the results that were not exactly correct.
func (sum Summary) Missed() []Result {
	var out []Result
	for _, r := range sum.Results {
		if !r.IsCorrect {
			out = append(out, r)
		}
	}
	return out
}

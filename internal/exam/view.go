package exam

import "github.com/abhisek/quizdeck/internal/bank"

// AnswerView is one renderable answer.
type AnswerView struct {
	Letter bank.Letter
	Text   string
}

// QuestionView is the render contract for one question. It is a copy;
// changing it does not affect the session.
type QuestionView struct {
	Number   int
	Text     string
	Answers  []AnswerView
	Correct  bank.LetterSet
	Selected bank.LetterSet
	Flagged  bool
	Multi    bool
}

// Answered reports whether the view has a selection.
func (v QuestionView) Answered() bool { return !v.Selected.Empty() }

// IsCorrect reports whether the selection equals the correct letters.
func (v QuestionView) IsCorrect() bool { return v.Selected == v.Correct }

func viewOf(it *Item) QuestionView {
	v := QuestionView{
		Number:   it.Question.Number,
		Text:     it.Question.Text,
		Answers:  make([]AnswerView, len(it.Question.Answers)),
		Correct:  it.Question.Correct(),
		Selected: it.Selected,
		Flagged:  it.Flagged,
		Multi:    it.Question.Multi(),
	}
	for i, a := range it.Question.Answers {
		v.Answers[i] = AnswerView{Letter: a.Letter, Text: a.Text}
	}
	return v
}

// View returns the view of one question.
func (s *Session) View(number int) (QuestionView, error) {
	pos, err := s.lookup(number)
	if err != nil {
		return QuestionView{}, err
	}
	return viewOf(s.items[pos]), nil
}

// Current returns the view of the current question.
func (s *Session) Current() QuestionView {
	if len(s.items) == 0 {
		return QuestionView{}
	}
	return viewOf(s.items[s.current])
}

// Views returns every question in session order.
func (s *Session) Views() []QuestionView {
	return s.Filter(FilterAll)
}

// ReviewFilter selects questions for the review overview.
type ReviewFilter int

const (
	FilterAll ReviewFilter = iota
	FilterUnanswered
	FilterFlagged
)

var filterNames = [...]string{"All", "Unanswered", "Flagged"}

func (f ReviewFilter) String() string {
	if int(f) < 0 || int(f) >= len(filterNames) {
		return "All"
	}
	return filterNames[f]
}

// Next cycles to the following filter.
func (f ReviewFilter) Next() ReviewFilter {
	return (f + 1) % ReviewFilter(len(filterNames))
}

// Filter projects the questions matching f without changing the session.
func (s *Session) Filter(f ReviewFilter) []QuestionView {
	out := make([]QuestionView, 0, len(s.items))
	for _, it := range s.items {
		switch f {
		case FilterUnanswered:
			if it.Answered() {
				continue
			}
		case FilterFlagged:
			if !it.Flagged {
				continue
			}
		}
		out = append(out, viewOf(it))
	}
	return out
}

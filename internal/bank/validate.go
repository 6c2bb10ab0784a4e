package bank

import "fmt"

// Rule names a structural check applied by Validate.
type Rule string

const (
	RuleAnswerCount  Rule = "answer-count"
	RuleCorrectCount Rule = "correct-count"
	RuleNoCorrect    Rule = "no-correct"
	RuleLetterOrder  Rule = "letter-order"
	RuleEmptyText    Rule = "empty-text"
)

// ValidationError describes one rule a question breaks.
type ValidationError struct {
	Number  int    // Question number as written in the source
	Source  string // Bank name, empty if unknown
	Line    int    // Line of the question header, 0 if unknown
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("question %d%s: %s", e.Number, e.location(), e.Message)
}

func (e *ValidationError) location() string {
	switch {
	case e.Source != "" && e.Line > 0:
		return fmt.Sprintf(" (%s:%d)", e.Source, e.Line)
	case e.Source != "":
		return fmt.Sprintf(" (%s)", e.Source)
	case e.Line > 0:
		return fmt.Sprintf(" (line %d)", e.Line)
	}
	return ""
}

// Validate checks every question and returns all rule violations.
// An empty result accepts the whole batch.
func Validate(questions []Question) []*ValidationError {
	var errs []*ValidationError
	for _, q := range questions {
		errs = append(errs, validateQuestion(q)...)
	}
	return errs
}

func validateQuestion(q Question) []*ValidationError {
	var errs []*ValidationError
	fail := func(rule Rule, format string, args ...any) {
		errs = append(errs, &ValidationError{
			Number:  q.Number,
			Source:  q.Source,
			Line:    q.Line,
			Rule:    rule,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if q.Text == "" {
		fail(RuleEmptyText, "question text is empty")
	}

	if len(q.Answers) != AnswerCount {
		fail(RuleAnswerCount, "has %d answers, want %d", len(q.Answers), AnswerCount)
	}

	correct := q.Correct()
	if correct.Empty() {
		fail(RuleNoCorrect, "no answer is marked correct with %q", correctMarker)
	} else {
		matched := 0
		for _, a := range q.Answers {
			if correct.Has(a.Letter) {
				matched++
			}
		}
		if matched != correct.Len() {
			fail(RuleCorrectCount, "correct letters %s match %d answers, want %d",
				correct, matched, correct.Len())
		}
	}

	if !lettersInOrder(q.Answers) {
		fail(RuleLetterOrder, "answers must be lettered A, B, C, D in order")
	}

	return errs
}

func lettersInOrder(answers []Answer) bool {
	if len(answers) != AnswerCount {
		return false
	}
	for i, a := range answers {
		if a.Letter != Letters[i] {
			return false
		}
	}
	return true
}

package bank

// Question is a multiple-choice question parsed from a question bank.
type Question struct {
	// Number is the question number. Straight from the parser it is the
	// number written in the source file; after Renumber it is position+1
	// and identifies the question within a session.
	Number int

	// Text is the prompt shown to the user.
	Text string

	// Answers holds the lettered options in source order.
	// Accepted questions carry exactly four, lettered A-D.
	Answers []Answer

	// Key describes which letters are correct.
	Key Key

	// Source is the name of the bank the question came from.
	Source string

	// Line is the 1-based line of the question header within Source.
	Line int
}

// Answer is one lettered option of a question.
type Answer struct {
	Letter    Letter
	Text      string
	IsCorrect bool
}

// Multi reports whether the question has more than one correct letter.
func (q Question) Multi() bool {
	_, ok := q.Key.(MultiKey)
	return ok
}

// Correct returns the set of correct letters, empty if the key is missing.
func (q Question) Correct() LetterSet {
	if q.Key == nil {
		return 0
	}
	return q.Key.Letters()
}

// Clone returns a copy that shares no answer storage with q.
func (q Question) Clone() Question {
	c := q
	c.Answers = append([]Answer(nil), q.Answers...)
	return c
}

// Key is the answer key of a question: SingleKey or MultiKey.
type Key interface {
	// Letters returns the correct letters.
	Letters() LetterSet

	isKey()
}

// SingleKey is the key of a question with exactly one correct letter.
type SingleKey struct {
	Correct Letter
}

func (k SingleKey) Letters() LetterSet { return NewLetterSet(k.Correct) }
func (SingleKey) isKey()               {}

// MultiKey is the key of a question with two or more correct letters.
type MultiKey struct {
	Correct LetterSet
}

func (k MultiKey) Letters() LetterSet { return k.Correct }
func (MultiKey) isKey()               {}

// KeyFor picks the key variant for a set of correct letters.
// It returns nil for the empty set.
func KeyFor(correct LetterSet) Key {
	switch correct.Len() {
	case 0:
		return nil
	case 1:
		return SingleKey{Correct: correct.Letters()[0]}
	default:
		return MultiKey{Correct: correct}
	}
}

package bank

import "strings"

// Letter identifies an answer's position within a question.
type Letter byte

const (
	LetterA Letter = 'A'
	LetterB Letter = 'B'
	LetterC Letter = 'C'
	LetterD Letter = 'D'
)

// AnswerCount is the number of answers every accepted question carries.
const AnswerCount = 4

// Letters lists the answer letters in positional order.
var Letters = [AnswerCount]Letter{LetterA, LetterB, LetterC, LetterD}

// ParseLetter converts "a".."d" or "A".."D" into a Letter.
func ParseLetter(s string) (Letter, bool) {
	if len(s) != 1 {
		return 0, false
	}
	l := Letter(strings.ToUpper(s)[0])
	if !l.Valid() {
		return 0, false
	}
	return l, true
}

// LetterAt returns the letter for a zero-based answer position.
func LetterAt(i int) (Letter, bool) {
	if i < 0 || i >= AnswerCount {
		return 0, false
	}
	return Letters[i], true
}

// Valid reports whether l is one of A-D.
func (l Letter) Valid() bool {
	return l >= LetterA && l <= LetterD
}

// Index returns the zero-based position of the letter.
func (l Letter) Index() int {
	return int(l - LetterA)
}

func (l Letter) String() string {
	return string(rune(l))
}

// LetterSet is a set of answer letters.
type LetterSet uint8

// NewLetterSet builds a set from the given letters. Invalid letters are ignored.
func NewLetterSet(letters ...Letter) LetterSet {
	var s LetterSet
	for _, l := range letters {
		s = s.Add(l)
	}
	return s
}

func bit(l Letter) LetterSet {
	if !l.Valid() {
		return 0
	}
	return 1 << uint(l.Index())
}

// Has reports whether l is in the set.
func (s LetterSet) Has(l Letter) bool {
	b := bit(l)
	return b != 0 && s&b != 0
}

// Add returns the set with l included.
func (s LetterSet) Add(l Letter) LetterSet {
	return s | bit(l)
}

// Remove returns the set with l excluded.
func (s LetterSet) Remove(l Letter) LetterSet {
	return s &^ bit(l)
}

// Toggle returns the set with l flipped.
func (s LetterSet) Toggle(l Letter) LetterSet {
	return s ^ bit(l)
}

// Len returns the number of letters in the set.
func (s LetterSet) Len() int {
	n := 0
	for _, l := range Letters {
		if s.Has(l) {
			n++
		}
	}
	return n
}

// Empty reports whether the set has no letters.
func (s LetterSet) Empty() bool {
	return s == 0
}

// Letters returns the members in A-D order.
func (s LetterSet) Letters() []Letter {
	out := make([]Letter, 0, AnswerCount)
	for _, l := range Letters {
		if s.Has(l) {
			out = append(out, l)
		}
	}
	return out
}

// String renders the set as "A, C". The empty set renders as "-".
func (s LetterSet) String() string {
	if s.Empty() {
		return "-"
	}
	parts := make([]string, 0, AnswerCount)
	for _, l := range s.Letters() {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, ", ")
}

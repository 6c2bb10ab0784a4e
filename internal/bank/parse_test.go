package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneQuestion = "1. Q?\nA. x*\nB. y\nC. z\nD. w"

func TestParse_SingleCorrect(t *testing.T) {
	qs := Parse(oneQuestion)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.Equal(t, 1, q.Number)
	assert.Equal(t, "Q?", q.Text)
	assert.Len(t, q.Answers, 4)
	assert.Equal(t, SingleKey{Correct: LetterA}, q.Key)
	assert.Equal(t, 1, q.Correct().Len())
	assert.False(t, q.Multi())
	assert.Equal(t, "x", q.Answers[0].Text, "marker must be stripped")
	assert.True(t, q.Answers[0].IsCorrect)
	assert.Equal(t, 1, q.Line)
}

func TestParse_MultiCorrect(t *testing.T) {
	raw := "7. Pick primes\nA. 2 *\nB. 4\nC. 5*   \nD. 9"
	qs := Parse(raw)
	require.Len(t, qs, 1)

	q := qs[0]
	assert.True(t, q.Multi())
	assert.Equal(t, NewLetterSet(LetterA, LetterC), q.Correct())
	assert.Equal(t, "2", q.Answers[0].Text)
	assert.Equal(t, "5", q.Answers[2].Text)
}

func TestParse_WellFormedBlocksYieldOneCorrect(t *testing.T) {
	for _, marked := range Letters {
		raw := "3. Which?\n"
		for _, l := range Letters {
			raw += l.String() + ". option " + l.String()
			if l == marked {
				raw += "*"
			}
			raw += "\n"
		}
		qs := Parse(raw)
		if len(qs) != 1 {
			t.Fatalf("marked %s: got %d questions, want 1", marked, len(qs))
		}
		if len(qs[0].Answers) != 4 {
			t.Errorf("marked %s: answers = %d, want 4", marked, len(qs[0].Answers))
		}
		if got := qs[0].Correct(); got.Len() != 1 || !got.Has(marked) {
			t.Errorf("marked %s: correct = %s", marked, got)
		}
	}
}

func TestParse_DropsMalformedBlocks(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason DropReason
	}{
		{"three answers", "1. Q\nA. a*\nB. b\nC. c", DropAnswerCount},
		{"five answers", "1. Q\nA. a*\nB. b\nC. c\nD. d\nD. e", DropAnswerCount},
		{"no marker", "1. Q\nA. a\nB. b\nC. c\nD. d", DropNoCorrect},
		{"lowercase letter", "1. Q\na. a*\nB. b\nC. c\nD. d", DropBadAnswerLine},
		{"letter E", "1. Q\nA. a*\nB. b\nC. c\nE. d", DropBadAnswerLine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := ParseReport("bank.txt", tt.raw)
			assert.Empty(t, rep.Questions)
			require.Len(t, rep.Dropped, 1)
			assert.Equal(t, tt.reason, rep.Dropped[0].Reason)
			assert.Equal(t, "bank.txt", rep.Dropped[0].Source)
			assert.NotEmpty(t, rep.Dropped[0].Detail)
		})
	}
}

func TestParse_StrayTextIsIgnored(t *testing.T) {
	raw := "Chapter 1 notes\nnot a question\n\n\n" + oneQuestion + "\n\n\nfooter"
	rep := ParseReport("", raw)
	require.Len(t, rep.Questions, 1)
	assert.Empty(t, rep.Dropped, "blocks without a header are not reported")
	assert.Equal(t, 5, rep.Questions[0].Line)
}

func TestParse_LineEndingsAndOrder(t *testing.T) {
	raw := "2. Second\r\nA. a\r\nB. b*\r\nC. c\r\nD. d\r\n\r\n   \r\n1. First\rA. a*\rB. b\rC. c\rD. d"
	qs := Parse(raw)
	require.Len(t, qs, 2)
	assert.Equal(t, 2, qs[0].Number, "source order is kept")
	assert.Equal(t, 1, qs[1].Number)
	assert.Equal(t, "First", qs[1].Text)
	assert.Equal(t, 8, qs[1].Line)
}

func TestParse_LeadingByteOrderMark(t *testing.T) {
	raw := "\ufeff" + oneQuestion + "\n\n2. R?\nA. x\nB. y*\nC. z\nD. w"
	rep := ParseReport("bom.txt", raw)
	require.Len(t, rep.Questions, 2)
	assert.Empty(t, rep.Dropped)
	assert.Equal(t, 1, rep.Questions[0].Number)
	assert.Equal(t, "Q?", rep.Questions[0].Text)
	assert.Equal(t, 1, rep.Questions[0].Line)
}

func TestParse_HeaderWithoutSpace(t *testing.T) {
	qs := Parse("12.What?\nA.yes*\nB.no\nC.maybe\nD.never")
	require.Len(t, qs, 1)
	assert.Equal(t, 12, qs[0].Number)
	assert.Equal(t, "What?", qs[0].Text)
	assert.Equal(t, "yes", qs[0].Answers[0].Text)
}

func TestParse_BadAnswerLineNumber(t *testing.T) {
	rep := ParseReport("", "\n1. Q\nA. a*\nB. b\nwhat\nD. d")
	require.Len(t, rep.Dropped, 1)
	assert.Equal(t, 5, rep.Dropped[0].Line)
}

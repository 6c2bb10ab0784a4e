package bank

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	headerPattern = regexp.MustCompile(`^(\d+)\.\s*(.*)$`)
	answerPattern = regexp.MustCompile(`^([A-D])\.\s*(.*)$`)
)

// correctMarker is the suffix that marks an answer as correct.
const correctMarker = "*"

// DropReason explains why a block with a question header produced no question.
type DropReason string

const (
	DropAnswerCount   DropReason = "answer-count"
	DropBadAnswerLine DropReason = "bad-answer-line"
	DropNoCorrect     DropReason = "no-correct-marker"
)

// DroppedBlock records a block that started like a question but was skipped.
type DroppedBlock struct {
	Source string
	Line   int
	Number int
	Reason DropReason
	Detail string
}

// Report is the outcome of parsing one source.
type Report struct {
	// Questions are the candidates in source order, not yet validated.
	Questions []Question

	// Dropped lists header blocks that did not yield a question.
	// Blocks without a header are stray text and are not listed.
	Dropped []DroppedBlock
}

// Parse converts raw bank text into candidate questions in source order.
// Malformed blocks are dropped silently.
func Parse(raw string) []Question {
	return ParseReport("", raw).Questions
}

// ParseReport parses raw text from source and also reports dropped blocks.
func ParseReport(source, raw string) Report {
	var rep Report
	for _, b := range splitBlocks(normalizeNewlines(raw)) {
		q, drop, ok := parseBlock(b)
		switch {
		case ok:
			q.Source = source
			rep.Questions = append(rep.Questions, q)
		case drop != nil:
			drop.Source = source
			rep.Dropped = append(rep.Dropped, *drop)
		}
	}
	return rep
}

func normalizeNewlines(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// block is a run of trimmed non-blank lines starting at line.
type block struct {
	line  int
	lines []string
}

func splitBlocks(text string) []block {
	var (
		blocks []block
		cur    *block
	)
	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			cur = nil
			continue
		}
		if cur == nil {
			blocks = append(blocks, block{line: i + 1})
			cur = &blocks[len(blocks)-1]
		}
		cur.lines = append(cur.lines, line)
	}
	return blocks
}

// parseBlock returns the question for b. When ok is false and drop is nil
// the block has no question header at all.
func parseBlock(b block) (q Question, drop *DroppedBlock, ok bool) {
	m := headerPattern.FindStringSubmatch(b.lines[0])
	if m == nil {
		return Question{}, nil, false
	}
	num, err := strconv.Atoi(m[1])
	if err != nil {
		return Question{}, nil, false
	}
	q = Question{
		Number: num,
		Text:   strings.TrimSpace(m[2]),
		Line:   b.line,
	}
	dropped := func(reason DropReason, line int, format string, args ...any) *DroppedBlock {
		return &DroppedBlock{
			Line:   line,
			Number: num,
			Reason: reason,
			Detail: fmt.Sprintf(format, args...),
		}
	}

	answerLines := b.lines[1:]
	if len(answerLines) != AnswerCount {
		return q, dropped(DropAnswerCount, b.line,
			"has %d answer lines, want %d", len(answerLines), AnswerCount), false
	}

	var correct LetterSet
	for i, line := range answerLines {
		am := answerPattern.FindStringSubmatch(line)
		if am == nil {
			return q, dropped(DropBadAnswerLine, b.line+1+i,
				"%q is not an answer line like \"A. text\"", line), false
		}
		letter := Letter(am[1][0])
		text, marked := stripMarker(am[2])
		if marked {
			correct = correct.Add(letter)
		}
		q.Answers = append(q.Answers, Answer{Letter: letter, Text: text, IsCorrect: marked})
	}

	if correct.Empty() {
		return q, dropped(DropNoCorrect, b.line,
			"no answer is marked correct with %q", correctMarker), false
	}
	q.Key = KeyFor(correct)
	return q, nil, true
}

// stripMarker removes a trailing correct marker from answer text.
func stripMarker(text string) (string, bool) {
	text = strings.TrimRight(text, " \t")
	if !strings.HasSuffix(text, correctMarker) {
		return text, false
	}
	return strings.TrimSpace(strings.TrimSuffix(text, correctMarker)), true
}

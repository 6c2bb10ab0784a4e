package store

import (
	"context"
	"time"
)

// Journal actions.
const (
	ActionStart    = "start"
	ActionAnswer   = "answer"
	ActionFlag     = "flag"
	ActionReview   = "review"
	ActionRevisit  = "revisit"
	ActionComplete = "complete"
)

// AttemptEventData captures one step of an exam attempt.
type AttemptEventData struct {
	SessionID     string
	Action        string
	Mode          string
	Question      int    // question number, 0 for session-level actions
	Letters       string // rendered selection after an answer
	Correct       int    // correct answers at completion
	Total         int    // questions in the session
	Reason        string // completion reason
	RemainingSecs int
}

// AttemptEvent is a stored AttemptEventData with its ordering metadata.
type AttemptEvent struct {
	AttemptEventData
	Sequence  int64
	Timestamp time.Time
}

// AttemptRecord summarizes one session: its start event folded together
// with its completion event, if any.
type AttemptRecord struct {
	SessionID  string
	Mode       string
	StartedAt  time.Time
	FinishedAt time.Time // zero when the attempt never completed
	Total      int
	Correct    int
	Reason     string
	Completed  bool
}

// EventRepo provides append and query access to the attempt journal.
type EventRepo interface {
	// AppendAttemptEvent records one attempt event.
	AppendAttemptEvent(ctx context.Context, data AttemptEventData) error

	// SessionEvents returns the events of one session in the order they were appended.
	SessionEvents(ctx context.Context, sessionID string) ([]AttemptEvent, error)

	// Attempts returns one record per session, most recent first.
	Attempts(ctx context.Context) ([]AttemptRecord, error)
}

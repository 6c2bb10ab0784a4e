package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

const attemptEventsTable = "attempt_events"

// The AUTOINCREMENT id doubles as the journal sequence.
var attemptEventColumns = []string{
	"timestamp", "session_id", "action", "mode",
	"question", "letters", "correct", "total", "reason", "remaining_secs",
}

type eventRepo struct {
	drv *entsql.Driver
}

func (r *eventRepo) AppendAttemptEvent(ctx context.Context, data AttemptEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(attemptEventsTable).
		Columns(attemptEventColumns...).
		Values(
			time.Now().UTC().UnixNano(), data.SessionID, data.Action, data.Mode,
			data.Question, data.Letters, data.Correct, data.Total, data.Reason, data.RemainingSecs,
		).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) SessionEvents(ctx context.Context, sessionID string) ([]AttemptEvent, error) {
	return r.query(ctx, entsql.EQ("session_id", sessionID))
}

func (r *eventRepo) Attempts(ctx context.Context) ([]AttemptRecord, error) {
	events, err := r.query(ctx, entsql.In("action", ActionStart, ActionComplete))
	if err != nil {
		return nil, err
	}

	var order []string
	bySession := make(map[string]*AttemptRecord)
	for _, ev := range events {
		rec, ok := bySession[ev.SessionID]
		if !ok {
			rec = &AttemptRecord{SessionID: ev.SessionID, Mode: ev.Mode}
			bySession[ev.SessionID] = rec
			order = append(order, ev.SessionID)
		}
		switch ev.Action {
		case ActionStart:
			rec.StartedAt = ev.Timestamp
			rec.Total = ev.Total
		case ActionComplete:
			rec.FinishedAt = ev.Timestamp
			rec.Correct = ev.Correct
			rec.Total = ev.Total
			rec.Reason = ev.Reason
			rec.Completed = true
		}
	}

	records := make([]AttemptRecord, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		records = append(records, *bySession[order[i]])
	}
	return records, nil
}

func (r *eventRepo) query(ctx context.Context, where *entsql.Predicate) ([]AttemptEvent, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(append([]string{"id"}, attemptEventColumns...)...).
		From(entsql.Table(attemptEventsTable)).
		Where(where).
		OrderBy("id").
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var events []AttemptEvent
	for rows.Next() {
		var (
			ev AttemptEvent
			ts int64
		)
		if err := rows.Scan(
			&ev.Sequence, &ts, &ev.SessionID, &ev.Action, &ev.Mode,
			&ev.Question, &ev.Letters, &ev.Correct, &ev.Total, &ev.Reason, &ev.RemainingSecs,
		); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		ev.Timestamp = time.Unix(0, ts).UTC()
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt events: %w", err)
	}
	return events, nil
}

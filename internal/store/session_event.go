package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sessionRepo implements SessionRepo with ent's SQL builder over database/sql.
type sessionRepo struct {
	db      *sql.DB
	dialect string
	seq     *sequenceCounter
}

func (r *sessionRepo) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.dialect)
}

func (r *sessionRepo) AppendSession(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert("session_events").
		Columns("sequence", "timestamp", "session_id", "action", "level_id", "total_tasks", "score").
		Values(seqNum, time.Now().UTC().UnixMilli(), data.SessionID, data.Action, data.LevelID, data.TotalTasks, data.Score).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *sessionRepo) AppendAnswer(ctx context.Context, data AnswerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := r.builder().Insert("answer_events").
		Columns("sequence", "timestamp", "session_id", "level_id", "operation",
			"question_text", "correct_answer", "learner_answer", "correct").
		Values(seqNum, time.Now().UTC().UnixMilli(), data.SessionID, data.LevelID, data.Operation,
			data.QuestionText, data.CorrectAnswer, data.LearnerAnswer, data.Correct).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *sessionRepo) LevelStats(ctx context.Context) ([]LevelStat, error) {
	t := entsql.Table("answer_events")
	query, args := r.builder().Select(
		t.C("level_id"),
		entsql.Count("*"),
		entsql.Sum(t.C("correct")),
	).
		From(t).
		GroupBy(t.C("level_id")).
		OrderBy(t.C("level_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query level stats: %w", err)
	}
	defer rows.Close()

	var stats []LevelStat
	for rows.Next() {
		var s LevelStat
		if err := rows.Scan(&s.LevelID, &s.Attempted, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan level stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query level stats: %w", err)
	}
	return stats, nil
}

func (r *sessionRepo) RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error) {
	t := entsql.Table("session_events")
	sel := r.builder().Select(
		t.C("sequence"), t.C("timestamp"), t.C("session_id"), t.C("action"),
		t.C("level_id"), t.C("total_tasks"), t.C("score"),
	).
		From(t).
		OrderBy(entsql.Desc(t.C("sequence")))

	pred := entsql.EQ(t.C("action"), ActionEnd)
	if opts.LevelID > 0 {
		pred = entsql.And(pred, entsql.EQ(t.C("level_id"), opts.LevelID))
	}
	sel.Where(pred)
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var (
			e  SessionEvent
			ms int64
		)
		if err := rows.Scan(&e.Sequence, &ms, &e.SessionID, &e.Action,
			&e.LevelID, &e.TotalTasks, &e.Score); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		e.Timestamp = time.UnixMilli(ms).UTC()
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	return events, nil
}

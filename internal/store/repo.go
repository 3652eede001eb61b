package store

import (
	"context"
	"time"
)

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int // max results (0 = unlimited)
	LevelID int // 0 = all levels
}

// SessionEventData captures a session lifecycle event.
type SessionEventData struct {
	SessionID  string
	Action     string // start or end
	LevelID    int
	TotalTasks int
	Score      int // on end only
}

// SessionEvent is a stored session lifecycle event.
type SessionEvent struct {
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEventData captures one answered task.
type AnswerEventData struct {
	SessionID     string
	LevelID       int
	Operation     string
	QuestionText  string
	CorrectAnswer int
	LearnerAnswer string
	Correct       bool
}

// LevelStat aggregates answers for one level.
type LevelStat struct {
	LevelID   int
	Attempted int
	Correct   int
}

// Accuracy returns the share of correct answers, or 0 when nothing was attempted.
func (s LevelStat) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// SessionRepo provides append and query access to session history.
type SessionRepo interface {
	// AppendSession records a session start or end.
	AppendSession(ctx context.Context, data SessionEventData) error

	// AppendAnswer records one answered task.
	AppendAnswer(ctx context.Context, data AnswerEventData) error

	// LevelStats returns answer totals per level, ordered by level id.
	LevelStats(ctx context.Context) ([]LevelStat, error)

	// RecentSessions returns finished sessions, newest first.
	RecentSessions(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
}

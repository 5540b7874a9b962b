package domain

import "time"

// TimerMode is the kind of a timed session
type TimerMode string

const (
	ModeStudy      TimerMode = "STUDY"
	ModeBreakShort TimerMode = "BREAK_SHORT"
	ModeBreakLong  TimerMode = "BREAK_LONG"
)

// Valid reports whether m is a known mode
func (m TimerMode) Valid() bool {
	switch m {
	case ModeStudy, ModeBreakShort, ModeBreakLong:
		return true
	}
	return false
}

// SessionStatus is the state of a timer session. COMPLETED and ABANDONED are terminal.
type SessionStatus string

const (
	SessionRunning   SessionStatus = "RUNNING"
	SessionCompleted SessionStatus = "COMPLETED"
	SessionAbandoned SessionStatus = "ABANDONED"
)

// TimerSession is a single timed study or break session
type TimerSession struct {
	ID                  string        `json:"id"`
	UserID              string        `json:"user_id"`
	Mode                TimerMode     `json:"mode"`
	ExpectedDurationSec int           `json:"expected_duration_sec"`
	Status              SessionStatus `json:"status"`
	StartedAt           time.Time     `json:"started_at"`
	EndedAt             *time.Time    `json:"ended_at,omitempty"`
	SubjectID           *string       `json:"subject_id,omitempty"`
}

// PlannedEnd returns the moment the session is expected to finish
func (s TimerSession) PlannedEnd() time.Time {
	return s.StartedAt.Add(time.Duration(s.ExpectedDurationSec) * time.Second)
}

// StudyTotals aggregates completed study time for one user
type StudyTotals struct {
	UserID        string `json:"user_id"`
	TotalSeconds  int64  `json:"total_seconds"`
	TotalMinutes  int64  `json:"total_minutes"`
	SessionsCount int64  `json:"sessions_count"`
}

// LeaderboardEntry is one ranked row of a study leaderboard
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	StudyTotals
}

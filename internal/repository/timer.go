package repository

import (
	"context"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Timer defines the interface for timer session persistence
type Timer interface {
	// GetSession returns nil, nil when not found
	GetSession(ctx context.Context, sessionID string) (*domain.TimerSession, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]domain.TimerSession, error)
	GetStudyTotals(ctx context.Context, userID string) (*domain.StudyTotals, error)
	BeginTx(ctx context.Context) (TimerTx, error)
}

// TimerTx defines the interface for timer transactions
type TimerTx interface {
	Tx
	// LockUserSessions serializes session state changes for one user until
	// the transaction ends
	LockUserSessions(ctx context.Context, userID string) error
	// GetRunningSessionForUpdate returns nil, nil when the user has no running session
	GetRunningSessionForUpdate(ctx context.Context, userID string) (*domain.TimerSession, error)
	// GetSessionForUpdate returns nil, nil when not found
	GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.TimerSession, error)
	InsertSession(ctx context.Context, session *domain.TimerSession) error
	FinishSession(ctx context.Context, sessionID string, status domain.SessionStatus, endedAt time.Time) error
}

// Subjects answers ownership questions about study subjects
type Subjects interface {
	IsSubjectOwnedBy(ctx context.Context, subjectID, userID string) (bool, error)
}

// Leaderboard defines the interface for study leaderboard queries
type Leaderboard interface {
	// GetStudyTotalsSince returns completed study totals grouped by user,
	// ordered by total seconds descending
	GetStudyTotalsSince(ctx context.Context, since time.Time, limit int) ([]domain.StudyTotals, error)
}

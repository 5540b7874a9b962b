package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

const sessionColumns = `session_id::text, user_id, mode, expected_duration_sec, status, started_at, ended_at, subject_id::text`

// Completed study time is measured from start to end, never from the
// planned duration
const studySecondsExpr = `COALESCE(SUM(EXTRACT(EPOCH FROM (ended_at - started_at)))::bigint, 0)`

// TimerRepository implements repository.Timer and repository.Leaderboard
type TimerRepository struct {
	store *Store
}

// Timers returns the timer repository
func (s *Store) Timers() *TimerRepository {
	return &TimerRepository{store: s}
}

// BeginTx starts a timer unit of work
func (r *TimerRepository) BeginTx(ctx context.Context) (repository.TimerTx, error) {
	return r.store.begin(ctx)
}

// GetSession returns a session or nil
func (r *TimerRepository) GetSession(ctx context.Context, sessionID string) (*domain.TimerSession, error) {
	return getSession(ctx, r.store.db, sessionID, false)
}

// ListSessions returns the user's sessions, newest first
func (r *TimerRepository) ListSessions(ctx context.Context, userID string, limit int) ([]domain.TimerSession, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions
		WHERE user_id = $1
		ORDER BY started_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySessions, err)
	}
	defer rows.Close()

	var sessions []domain.TimerSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySessions, err)
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}

// GetStudyTotals sums completed study sessions for the user
func (r *TimerRepository) GetStudyTotals(ctx context.Context, userID string) (*domain.StudyTotals, error) {
	totals := &domain.StudyTotals{UserID: userID}
	err := r.store.db.QueryRow(ctx, `
		SELECT `+studySecondsExpr+`, COUNT(*)
		FROM timer_sessions
		WHERE user_id = $1 AND mode = 'STUDY' AND status = 'COMPLETED' AND ended_at IS NOT NULL`,
		userID).Scan(&totals.TotalSeconds, &totals.SessionsCount)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStudyTotals, err)
	}
	totals.TotalMinutes = totals.TotalSeconds / 60
	return totals, nil
}

// GetStudyTotalsSince aggregates completed study sessions started at or
// after since, ranked by total seconds
func (r *TimerRepository) GetStudyTotalsSince(ctx context.Context, since time.Time, limit int) ([]domain.StudyTotals, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT user_id, `+studySecondsExpr+` AS total_seconds, COUNT(*)
		FROM timer_sessions
		WHERE mode = 'STUDY' AND status = 'COMPLETED' AND ended_at IS NOT NULL
		  AND started_at >= $1 AND ended_at > started_at
		GROUP BY user_id
		ORDER BY total_seconds DESC, user_id
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStudyTotals, err)
	}
	defer rows.Close()

	var out []domain.StudyTotals
	for rows.Next() {
		var t domain.StudyTotals
		if err := rows.Scan(&t.UserID, &t.TotalSeconds, &t.SessionsCount); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryStudyTotals, err)
		}
		t.TotalMinutes = t.TotalSeconds / 60
		out = append(out, t)
	}
	return out, rows.Err()
}

// IsSubjectOwnedBy implements repository.Subjects
func (s *Store) IsSubjectOwnedBy(ctx context.Context, subjectID, userID string) (bool, error) {
	var owned bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM subjects WHERE subject_id::text = $1 AND user_id = $2)`,
		subjectID, userID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckSubjectOwner, err)
	}
	return owned, nil
}

// AddSubject registers a study subject owned by userID and returns its id
func (s *Store) AddSubject(ctx context.Context, userID, name string) (string, error) {
	var id string
	err := s.db.QueryRow(ctx,
		`INSERT INTO subjects (user_id, name) VALUES ($1, $2) RETURNING subject_id::text`,
		userID, name).Scan(&id)
	return id, err
}

// LockUserSessions takes a transaction-scoped advisory lock for the user
func (t *Tx) LockUserSessions(ctx context.Context, userID string) error {
	if err := advisoryLock(ctx, t.tx, fmt.Sprintf(LockKeyUserSessionsFmt, userID)); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToLockUserSessions, err)
	}
	return nil
}

// GetRunningSessionForUpdate returns the user's running session or nil
func (t *Tx) GetRunningSessionForUpdate(ctx context.Context, userID string) (*domain.TimerSession, error) {
	row := t.tx.QueryRow(ctx, `
		SELECT `+sessionColumns+`
		FROM timer_sessions
		WHERE user_id = $1 AND status = 'RUNNING'
		FOR UPDATE`, userID)
	s, err := scanSession(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	return s, nil
}

// GetSessionForUpdate returns a session or nil
func (t *Tx) GetSessionForUpdate(ctx context.Context, sessionID string) (*domain.TimerSession, error) {
	return getSession(ctx, t.tx, sessionID, true)
}

// InsertSession stores a new session. The partial unique index on running
// sessions rejects a second one for the same user.
func (t *Tx) InsertSession(ctx context.Context, session *domain.TimerSession) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO timer_sessions (session_id, user_id, mode, expected_duration_sec, status, started_at, ended_at, subject_id)
		VALUES ($1::uuid, $2, $3, $4, $5, $6, $7, $8::uuid)`,
		session.ID, session.UserID, string(session.Mode), session.ExpectedDurationSec,
		string(session.Status), session.StartedAt, session.EndedAt, session.SubjectID)
	if err != nil {
		if isUniqueViolation(err, ConstraintRunningSession) {
			return domain.AlreadyRunningError{}
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertSession, err)
	}
	return nil
}

// FinishSession moves a session to a terminal status
func (t *Tx) FinishSession(ctx context.Context, sessionID string, status domain.SessionStatus, endedAt time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE timer_sessions
		SET status = $2, ended_at = $3
		WHERE session_id = $1::uuid`, sessionID, string(status), endedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToFinishSession, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	return nil
}

func getSession(ctx context.Context, q querier, sessionID string, forUpdate bool) (*domain.TimerSession, error) {
	// Non-uuid ids can never match and would fail the cast
	query := `SELECT ` + sessionColumns + ` FROM timer_sessions WHERE session_id::text = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	s, err := scanSession(q.QueryRow(ctx, query, sessionID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSession, err)
	}
	return s, nil
}

func scanSession(row pgx.Row) (*domain.TimerSession, error) {
	var (
		s      domain.TimerSession
		mode   string
		status string
	)
	if err := row.Scan(&s.ID, &s.UserID, &mode, &s.ExpectedDurationSec, &status, &s.StartedAt, &s.EndedAt, &s.SubjectID); err != nil {
		return nil, err
	}
	s.Mode = domain.TimerMode(mode)
	s.Status = domain.SessionStatus(status)
	return &s, nil
}

var (
	_ repository.Timer       = (*TimerRepository)(nil)
	_ repository.Leaderboard = (*TimerRepository)(nil)
	_ repository.Subjects    = (*Store)(nil)
)

package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// TimerRepository implements repository.Timer and repository.Leaderboard
type TimerRepository struct {
	store *Store
}

// Timers returns the timer session repository
func (s *Store) Timers() *TimerRepository {
	return &TimerRepository{store: s}
}

// BeginTx starts a new unit of work
func (r *TimerRepository) BeginTx(ctx context.Context) (repository.TimerTx, error) {
	return r.store.begin(ctx)
}

// GetSession returns a session or nil
func (r *TimerRepository) GetSession(_ context.Context, sessionID string) (*domain.TimerSession, error) {
	var out *domain.TimerSession
	r.store.read(func(st *state) {
		if s, ok := st.sessions[sessionID]; ok {
			out = &s
		}
	})
	return out, nil
}

// ListSessions returns the user's sessions, newest first
func (r *TimerRepository) ListSessions(_ context.Context, userID string, limit int) ([]domain.TimerSession, error) {
	var out []domain.TimerSession
	r.store.read(func(st *state) {
		for _, s := range st.sessions {
			if s.UserID == userID {
				out = append(out, s)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// GetStudyTotals sums completed study sessions for the user
func (r *TimerRepository) GetStudyTotals(_ context.Context, userID string) (*domain.StudyTotals, error) {
	totals := &domain.StudyTotals{UserID: userID}
	r.store.read(func(st *state) {
		for _, s := range st.sessions {
			if s.UserID != userID {
				continue
			}
			if secs, ok := completedStudySeconds(s); ok {
				totals.TotalSeconds += secs
				totals.SessionsCount++
			}
		}
	})
	totals.TotalMinutes = totals.TotalSeconds / 60
	return totals, nil
}

// GetStudyTotalsSince aggregates completed study sessions started at or after since
func (r *TimerRepository) GetStudyTotalsSince(_ context.Context, since time.Time, limit int) ([]domain.StudyTotals, error) {
	byUser := make(map[string]*domain.StudyTotals)
	r.store.read(func(st *state) {
		for _, s := range st.sessions {
			if s.StartedAt.Before(since) {
				continue
			}
			secs, ok := completedStudySeconds(s)
			if !ok || secs <= 0 {
				continue
			}
			agg, exists := byUser[s.UserID]
			if !exists {
				agg = &domain.StudyTotals{UserID: s.UserID}
				byUser[s.UserID] = agg
			}
			agg.TotalSeconds += secs
			agg.SessionsCount++
		}
	})

	out := make([]domain.StudyTotals, 0, len(byUser))
	for _, agg := range byUser {
		agg.TotalMinutes = agg.TotalSeconds / 60
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSeconds != out[j].TotalSeconds {
			return out[i].TotalSeconds > out[j].TotalSeconds
		}
		return out[i].UserID < out[j].UserID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func completedStudySeconds(s domain.TimerSession) (int64, bool) {
	if s.Mode != domain.ModeStudy || s.Status != domain.SessionCompleted || s.EndedAt == nil {
		return 0, false
	}
	return int64(s.EndedAt.Sub(s.StartedAt) / time.Second), true
}

// LockUserSessions is a no-op; units of work are already serialized
func (t *Tx) LockUserSessions(_ context.Context, _ string) error {
	return t.check()
}

// GetRunningSessionForUpdate returns the user's running session or nil
func (t *Tx) GetRunningSessionForUpdate(_ context.Context, userID string) (*domain.TimerSession, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	for _, s := range t.st.sessions {
		if s.UserID == userID && s.Status == domain.SessionRunning {
			return &s, nil
		}
	}
	return nil, nil
}

// GetSessionForUpdate returns a session or nil
func (t *Tx) GetSessionForUpdate(_ context.Context, sessionID string) (*domain.TimerSession, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	s, ok := t.st.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// InsertSession stores a new session, rejecting a second running session
func (t *Tx) InsertSession(_ context.Context, session *domain.TimerSession) error {
	if err := t.check(); err != nil {
		return err
	}
	if session.Status == domain.SessionRunning {
		for _, s := range t.st.sessions {
			if s.UserID == session.UserID && s.Status == domain.SessionRunning {
				return domain.AlreadyRunningError{SessionID: s.ID}
			}
		}
	}
	t.st.sessions[session.ID] = *session
	return nil
}

// FinishSession moves a session to a terminal status
func (t *Tx) FinishSession(_ context.Context, sessionID string, status domain.SessionStatus, endedAt time.Time) error {
	if err := t.check(); err != nil {
		return err
	}
	s, ok := t.st.sessions[sessionID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, sessionID)
	}
	s.Status = status
	s.EndedAt = &endedAt
	t.st.sessions[sessionID] = s
	return nil
}

var (
	_ repository.Timer       = (*TimerRepository)(nil)
	_ repository.Leaderboard = (*TimerRepository)(nil)
)

package timer

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// StartRequest describes a session to start. Duration bounds are enforced by
// the transport layer.
type StartRequest struct {
	Mode        domain.TimerMode `json:"mode"`
	DurationSec int              `json:"duration_sec"`
	SubjectID   *string          `json:"subject_id,omitempty"`
}

// StartResult is returned when a session starts
type StartResult struct {
	Session      *domain.TimerSession `json:"session"`
	ServerNow    time.Time            `json:"server_now"`
	PlannedEndAt time.Time            `json:"planned_end_at"`
}

// StopResult is returned when a session is stopped
type StopResult struct {
	Session       *domain.TimerSession `json:"session"`
	ActualSeconds int64                `json:"actual_seconds"`
}

// Service runs the per-user session state machine.
// RUNNING moves to COMPLETED on stop, or to ABANDONED when a new start
// arrives after the grace window. Both are terminal.
type Service interface {
	StartSession(ctx context.Context, userID string, req StartRequest) (*StartResult, error)
	StopSession(ctx context.Context, userID, sessionID string) (*StopResult, error)
	// GetSession returns ErrSessionNotFound for sessions owned by someone else
	GetSession(ctx context.Context, userID, sessionID string) (*domain.TimerSession, error)
	ListSessions(ctx context.Context, userID string, limit int) ([]domain.TimerSession, error)
	Totals(ctx context.Context, userID string) (*domain.StudyTotals, error)
}

type service struct {
	repo     repository.Timer
	subjects repository.Subjects
	clock    clock.Clock
	grace    time.Duration
	bus      event.Bus
}

// NewService creates a timer service. A negative grace falls back to DefaultGrace.
func NewService(repo repository.Timer, subjects repository.Subjects, clk clock.Clock, grace time.Duration, bus event.Bus) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	if grace < 0 {
		grace = DefaultGrace
	}
	return &service{
		repo:     repo,
		subjects: subjects,
		clock:    clk,
		grace:    grace,
		bus:      bus,
	}
}

func (s *service) StartSession(ctx context.Context, userID string, req StartRequest) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStartCalled, "user_id", userID, "mode", req.Mode, "duration_sec", req.DurationSec)

	if err := s.validateStart(ctx, userID, req); err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.LockUserSessions(ctx, userID); err != nil {
		return nil, fmt.Errorf(ErrMsgLockSessionsFailed, err)
	}

	now := s.clock.Now()

	running, err := tx.GetRunningSessionForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRunningFailed, err)
	}

	var abandoned *domain.TimerSession
	if running != nil {
		plannedEnd := running.PlannedEnd()
		if !now.After(plannedEnd.Add(s.grace)) {
			log.Info(LogMsgStartRejected, "user_id", userID, "session_id", running.ID)
			return nil, domain.AlreadyRunningError{SessionID: running.ID}
		}
		if err := tx.FinishSession(ctx, running.ID, domain.SessionAbandoned, plannedEnd); err != nil {
			return nil, fmt.Errorf(ErrMsgAbandonFailed, running.ID, err)
		}
		running.Status = domain.SessionAbandoned
		running.EndedAt = &plannedEnd
		abandoned = running
	}

	session := &domain.TimerSession{
		ID:                  uuid.NewString(),
		UserID:              userID,
		Mode:                req.Mode,
		ExpectedDurationSec: req.DurationSec,
		Status:              domain.SessionRunning,
		StartedAt:           now,
	}
	// breaks never carry a subject; only study subjects are ownership checked
	if req.Mode == domain.ModeStudy {
		session.SubjectID = req.SubjectID
	}
	if err := tx.InsertSession(ctx, session); err != nil {
		return nil, fmt.Errorf(ErrMsgInsertSessionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	if abandoned != nil {
		log.Info(LogMsgSessionAbandoned, "user_id", userID, "session_id", abandoned.ID, "ended_at", abandoned.EndedAt)
		s.emit(ctx, domain.EventTypeSessionAbandoned, abandoned)
	}
	log.Info(LogMsgSessionStarted, "user_id", userID, "session_id", session.ID)
	s.emit(ctx, domain.EventTypeSessionStarted, session)

	return &StartResult{
		Session:      session,
		ServerNow:    now,
		PlannedEndAt: session.PlannedEnd(),
	}, nil
}

func (s *service) validateStart(ctx context.Context, userID string, req StartRequest) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if !req.Mode.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTimerMode, req.Mode)
	}
	if req.DurationSec <= 0 {
		return fmt.Errorf("%w: duration must be positive", domain.ErrInvalidInput)
	}
	if req.Mode != domain.ModeStudy {
		return nil
	}
	if req.SubjectID == nil || *req.SubjectID == "" {
		return domain.ErrSubjectRequired
	}
	owned, err := s.subjects.IsSubjectOwnedBy(ctx, *req.SubjectID, userID)
	if err != nil {
		return fmt.Errorf(ErrMsgCheckSubjectFailed, err)
	}
	if !owned {
		return fmt.Errorf("%w: %s", domain.ErrSubjectNotOwned, *req.SubjectID)
	}
	return nil
}

func (s *service) StopSession(ctx context.Context, userID, sessionID string) (*StopResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgStopCalled, "user_id", userID, "session_id", sessionID)

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	session, err := tx.GetSessionForUpdate(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != domain.SessionRunning {
		return nil, fmt.Errorf("%w: status is %s", domain.ErrNotRunning, session.Status)
	}

	now := s.clock.Now()
	endAt := now
	if limit := session.PlannedEnd().Add(s.grace); now.After(limit) {
		log.Info(LogMsgStopCappedAtGrace, "session_id", sessionID, "now", now, "capped_at", limit)
		endAt = limit
	}

	if err := tx.FinishSession(ctx, session.ID, domain.SessionCompleted, endAt); err != nil {
		return nil, fmt.Errorf(ErrMsgFinishSessionFailed, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	session.Status = domain.SessionCompleted
	session.EndedAt = &endAt
	actual := int64(endAt.Sub(session.StartedAt) / time.Second)

	log.Info(LogMsgSessionStopped, "user_id", userID, "session_id", session.ID, "actual_seconds", actual)
	s.emit(ctx, domain.EventTypeSessionCompleted, session)

	return &StopResult{Session: session, ActualSeconds: actual}, nil
}

func (s *service) GetSession(ctx context.Context, userID, sessionID string) (*domain.TimerSession, error) {
	session, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if session == nil || session.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

func (s *service) ListSessions(ctx context.Context, userID string, limit int) ([]domain.TimerSession, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	sessions, err := s.repo.ListSessions(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListSessionsFailed, err)
	}
	return sessions, nil
}

func (s *service) Totals(ctx context.Context, userID string) (*domain.StudyTotals, error) {
	totals, err := s.repo.GetStudyTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTotalsFailed, err)
	}
	return totals, nil
}

func (s *service) emit(ctx context.Context, eventType string, session *domain.TimerSession) {
	payload := event.Payload{
		domain.MetadataKeyUserID:    session.UserID,
		domain.MetadataKeySessionID: session.ID,
		domain.MetadataKeyMode:      string(session.Mode),
		"status":                    string(session.Status),
		"expected_duration_sec":     session.ExpectedDurationSec,
	}
	if session.EndedAt != nil {
		payload[domain.MetadataKeySeconds] = int64(session.EndedAt.Sub(session.StartedAt) / time.Second)
	}
	event.Emit(ctx, s.bus, event.New(eventType, payload))
}

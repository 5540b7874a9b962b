package accrual

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/utils"
	"github.com/osse101/StudyGarden_Go/internal/wallet"
)

// Config holds the conversion parameters
type Config struct {
	CoinsPerMinute   float64
	MinCreditMinutes int
}

// CreditResult is the outcome of crediting one session
type CreditResult struct {
	Skipped         bool   `json:"skipped"`
	Reason          string `json:"reason,omitempty"`
	AlreadyCredited bool   `json:"already_credited"`
	Minutes         int64  `json:"minutes"`
	Coins           int64  `json:"coins"`
	Balance         int64  `json:"balance"`
}

// Service converts completed study time into coins
type Service interface {
	// CreditForSession is safe to call repeatedly; the ledger keys the
	// credit by session id
	CreditForSession(ctx context.Context, sessionID string) (*CreditResult, error)
}

type service struct {
	sessions repository.Timer
	wallet   wallet.Service
	cfg      Config
	bus      event.Bus
}

// NewService creates an accrual service
func NewService(sessions repository.Timer, walletSvc wallet.Service, cfg Config, bus event.Bus) Service {
	if cfg.CoinsPerMinute < 0 || math.IsNaN(cfg.CoinsPerMinute) || math.IsInf(cfg.CoinsPerMinute, 0) {
		cfg.CoinsPerMinute = DefaultCoinsPerMinute
	}
	if cfg.MinCreditMinutes < 1 {
		cfg.MinCreditMinutes = DefaultMinCreditMinutes
	}
	return &service{sessions: sessions, wallet: walletSvc, cfg: cfg, bus: bus}
}

func (s *service) CreditForSession(ctx context.Context, sessionID string) (*CreditResult, error) {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCreditCalled, "session_id", sessionID)

	session, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetSessionFailed, err)
	}
	if session == nil {
		return nil, domain.ErrSessionNotFound
	}
	if session.Status != domain.SessionCompleted {
		return s.skip(ctx, session, ReasonNotCompleted, 0), nil
	}

	minutes := sessionSeconds(session) / 60
	if minutes < int64(s.cfg.MinCreditMinutes) {
		return s.skip(ctx, session, ReasonBelowMinimum, minutes), nil
	}

	coins := coinsFor(minutes, s.cfg.CoinsPerMinute)
	if coins <= 0 {
		return s.skip(ctx, session, ReasonNothingToAward, minutes), nil
	}

	credit, err := s.wallet.Credit(ctx, session.UserID, coins, domain.LedgerSessionCredit, session.ID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreditFailed, session.ID, err)
	}

	if !credit.AlreadyCredited {
		log.Info(LogMsgSessionCredited, "user_id", session.UserID, "session_id", session.ID, "coins", coins)
		event.Emit(ctx, s.bus, event.New(domain.EventTypeSessionCredited, event.Payload{
			domain.MetadataKeyUserID:    session.UserID,
			domain.MetadataKeySessionID: session.ID,
			domain.MetadataKeyAmount:    coins,
			"minutes":                   minutes,
		}))
	}

	return &CreditResult{
		AlreadyCredited: credit.AlreadyCredited,
		Minutes:         minutes,
		Coins:           coins,
		Balance:         credit.Balance,
	}, nil
}

func (s *service) skip(ctx context.Context, session *domain.TimerSession, reason string, minutes int64) *CreditResult {
	logger.FromContext(ctx).Warn(LogMsgCreditSkipped, "session_id", session.ID, "status", session.Status, "reason", reason)
	return &CreditResult{Skipped: true, Reason: reason, Minutes: minutes}
}

// sessionSeconds is the recorded span, zero when the session never ended
func sessionSeconds(session *domain.TimerSession) int64 {
	if session.EndedAt == nil {
		return 0
	}
	return max(0, int64(session.EndedAt.Sub(session.StartedAt)/time.Second))
}

func coinsFor(minutes int64, rate float64) int64 {
	return utils.MulFloor(minutes, rate)
}

package leaderboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// Board is a ranked study leaderboard for one range
type Board struct {
	Range   Range                     `json:"range"`
	From    time.Time                 `json:"from"`
	To      time.Time                 `json:"to"`
	Entries []domain.LeaderboardEntry `json:"entries"`
}

// Service builds study leaderboards
type Service interface {
	Study(ctx context.Context, r Range) (*Board, error)
}

type service struct {
	repo  repository.Leaderboard
	clock clock.Clock
}

// NewService creates a leaderboard service
func NewService(repo repository.Leaderboard, clk clock.Clock) Service {
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &service{repo: repo, clock: clk}
}

// ParseRange accepts day, week, month or year. Empty input selects DefaultRange.
func ParseRange(s string) (Range, error) {
	switch r := Range(strings.ToLower(strings.TrimSpace(s))); r {
	case "":
		return DefaultRange, nil
	case RangeDay, RangeWeek, RangeMonth, RangeYear:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown range %q", domain.ErrInvalidInput, s)
	}
}

// RangeStart returns the UTC start of the period containing now. Weeks start on Monday.
func RangeStart(r Range, now time.Time) time.Time {
	now = now.UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	switch r {
	case RangeDay:
		return midnight
	case RangeMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	case RangeYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		offset := (int(now.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset)
	}
}

func (s *service) Study(ctx context.Context, r Range) (*Board, error) {
	logger.FromContext(ctx).Debug(LogMsgStudyCalled, "range", r)

	if r == "" {
		r = DefaultRange
	}
	now := s.clock.Now().UTC()
	from := RangeStart(r, now)

	totals, err := s.repo.GetStudyTotalsSince(ctx, from, MaxEntries)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetTotalsFailed, err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(totals))
	for i, t := range totals {
		if i == MaxEntries {
			break
		}
		entries = append(entries, domain.LeaderboardEntry{Rank: i + 1, StudyTotals: t})
	}

	return &Board{Range: r, From: from, To: now, Entries: entries}, nil
}

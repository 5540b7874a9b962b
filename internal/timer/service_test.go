package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/database/memory"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
)

var epoch = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	store *memory.Store
	clock *clock.SimulatedClock
	bus   *event.MemoryBus
	svc   Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	store.AddSubject("math", "u1")
	store.AddSubject("history", "u2")
	clk := clock.NewSimulatedClock(epoch)
	bus := event.NewMemoryBus()
	return &testEnv{
		store: store,
		clock: clk,
		bus:   bus,
		svc:   NewService(store.Timers(), store, clk, DefaultGrace, bus),
	}
}

func subject(id string) *string { return &id }

func studyRequest(durationSec int) StartRequest {
	return StartRequest{Mode: domain.ModeStudy, DurationSec: durationSec, SubjectID: subject("math")}
}

func TestStartSession_ReturnsPlannedEnd(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.svc.StartSession(context.Background(), "u1", studyRequest(1500))
	require.NoError(t, err)

	assert.Equal(t, domain.SessionRunning, res.Session.Status)
	assert.Equal(t, epoch, res.ServerNow)
	assert.Equal(t, epoch.Add(1500*time.Second), res.PlannedEndAt)
	assert.NotEmpty(t, res.Session.ID)
}

func TestStartSession_Validation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	tests := []struct {
		name string
		user string
		req  StartRequest
		want error
	}{
		{"study without subject", "u1", StartRequest{Mode: domain.ModeStudy, DurationSec: 60}, domain.ErrSubjectRequired},
		{"study with blank subject", "u1", StartRequest{Mode: domain.ModeStudy, DurationSec: 60, SubjectID: subject("")}, domain.ErrSubjectRequired},
		{"foreign subject", "u1", StartRequest{Mode: domain.ModeStudy, DurationSec: 60, SubjectID: subject("history")}, domain.ErrSubjectNotOwned},
		{"unknown subject", "u1", StartRequest{Mode: domain.ModeStudy, DurationSec: 60, SubjectID: subject("art")}, domain.ErrSubjectNotOwned},
		{"unknown mode", "u1", StartRequest{Mode: "NAP", DurationSec: 60}, domain.ErrInvalidTimerMode},
		{"zero duration", "u1", StartRequest{Mode: domain.ModeBreakShort}, domain.ErrInvalidInput},
		{"missing user", "", StartRequest{Mode: domain.ModeBreakShort, DurationSec: 60}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.StartSession(ctx, tt.user, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := env.svc.StartSession(ctx, "u1", StartRequest{Mode: domain.ModeBreakLong, DurationSec: 300})
	assert.NoError(t, err, "breaks need no subject")
}

func TestStartSession_RejectedInsideGraceWindow(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	first, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)

	// planned end + grace is exactly 90s; still inside
	env.clock.Advance(90 * time.Second)
	_, err = env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.ErrorIs(t, err, domain.ErrAlreadyRunning)

	var running domain.AlreadyRunningError
	require.True(t, errors.As(err, &running))
	assert.Equal(t, first.Session.ID, running.SessionID)
}

func TestStartSession_AbandonsStaleSessionAtPlannedEnd(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	var abandonedEvents []event.Event
	env.bus.Subscribe(domain.EventTypeSessionAbandoned, func(_ context.Context, e event.Event) error {
		abandonedEvents = append(abandonedEvents, e)
		return nil
	})

	first, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)

	env.clock.Advance(95 * time.Second)
	second, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)

	old, err := env.store.Timers().GetSession(ctx, first.Session.ID)
	require.NoError(t, err)
	require.NotNil(t, old)
	assert.Equal(t, domain.SessionAbandoned, old.Status)
	require.NotNil(t, old.EndedAt)
	assert.Equal(t, epoch.Add(60*time.Second), *old.EndedAt)

	assert.Equal(t, domain.SessionRunning, second.Session.Status)
	assert.Len(t, abandonedEvents, 1)

	sessions, err := env.svc.ListSessions(ctx, "u1", 0)
	require.NoError(t, err)
	running := 0
	for _, s := range sessions {
		if s.Status == domain.SessionRunning {
			running++
		}
	}
	assert.Equal(t, 1, running)
}

func TestStartSession_UsersAreIndependent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	_, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)
	_, err = env.svc.StartSession(ctx, "u2", StartRequest{Mode: domain.ModeStudy, DurationSec: 60, SubjectID: subject("history")})
	assert.NoError(t, err)
}

func TestStartSession_BreakDropsSubject(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	res, err := env.svc.StartSession(ctx, "u1", StartRequest{Mode: domain.ModeBreakShort, DurationSec: 300, SubjectID: subject("history")})
	require.NoError(t, err)
	assert.Nil(t, res.Session.SubjectID)

	stored, err := env.svc.GetSession(ctx, "u1", res.Session.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.SubjectID)
}

func TestStopSession_Completes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	start, err := env.svc.StartSession(ctx, "u1", studyRequest(120))
	require.NoError(t, err)

	env.clock.Advance(100 * time.Second)
	res, err := env.svc.StopSession(ctx, "u1", start.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.SessionCompleted, res.Session.Status)
	assert.Equal(t, int64(100), res.ActualSeconds)

	_, err = env.svc.StopSession(ctx, "u1", start.Session.ID)
	assert.ErrorIs(t, err, domain.ErrNotRunning)
}

func TestStopSession_CapsAtGraceBoundary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	start, err := env.svc.StartSession(ctx, "u1", studyRequest(120))
	require.NoError(t, err)

	env.clock.Advance(10 * time.Minute)
	res, err := env.svc.StopSession(ctx, "u1", start.Session.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(150), res.ActualSeconds)
	assert.Equal(t, epoch.Add(150*time.Second), *res.Session.EndedAt)
}

func TestStopSession_NotFoundOrForeign(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	start, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)

	_, err = env.svc.StopSession(ctx, "u2", start.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)

	_, err = env.svc.StopSession(ctx, "u1", "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestTotals_CountsCompletedStudyOnly(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	study, err := env.svc.StartSession(ctx, "u1", studyRequest(120))
	require.NoError(t, err)
	env.clock.Advance(120 * time.Second)
	_, err = env.svc.StopSession(ctx, "u1", study.Session.ID)
	require.NoError(t, err)

	brk, err := env.svc.StartSession(ctx, "u1", StartRequest{Mode: domain.ModeBreakShort, DurationSec: 300})
	require.NoError(t, err)
	env.clock.Advance(300 * time.Second)
	_, err = env.svc.StopSession(ctx, "u1", brk.Session.ID)
	require.NoError(t, err)

	totals, err := env.svc.Totals(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(120), totals.TotalSeconds)
	assert.Equal(t, int64(2), totals.TotalMinutes)
	assert.Equal(t, int64(1), totals.SessionsCount)
}

func TestGetSession_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	start, err := env.svc.StartSession(ctx, "u1", studyRequest(60))
	require.NoError(t, err)

	got, err := env.svc.GetSession(ctx, "u1", start.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, start.Session.ID, got.ID)

	_, err = env.svc.GetSession(ctx, "u2", start.Session.ID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/clock"
	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/database/memory"
	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/event"
	"github.com/osse101/StudyGarden_Go/internal/repository"
	"github.com/osse101/StudyGarden_Go/internal/timer"
)

const shippedCatalog = "../../configs/items.json"

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		StorageBackend:      config.StorageBackendMemory,
		GardenSize:          3,
		TimerGrace:          30 * time.Second,
		TimerMinDurationSec: 60,
		TimerMaxDurationSec: 3600,
		CoinsPerMinute:      1,
		MinCreditMinutes:    1,
		HarvestRewardSource: config.HarvestRewardCoinYield,
		CatalogCacheSize:    32,
		CatalogCacheTTL:     time.Minute,
		EventRetentionDays:  30,
		EventMaxRetries:     1,
		EventRetryDelay:     time.Millisecond,
		EventDeadLetterPath: filepath.Join(t.TempDir(), "dl", "events.jsonl"),
	}
}

func TestInitializeStorage_Memory(t *testing.T) {
	st, err := InitializeStorage(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer st.Close()

	assert.Nil(t, st.Pinger)
	assert.NotNil(t, st.Wallets)
	assert.NotNil(t, st.Leaderboard)
}

func TestInitializeStorage_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageBackend = "sqlite"

	_, err := InitializeStorage(context.Background(), cfg)
	assert.ErrorContains(t, err, "sqlite")
}

func TestSyncCatalog(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStorage(memory.NewStore())

	first, err := SyncCatalog(ctx, shippedCatalog, st.Items)
	require.NoError(t, err)
	assert.Positive(t, first.ItemsInserted)

	second, err := SyncCatalog(ctx, shippedCatalog, st.Items)
	require.NoError(t, err)
	assert.Zero(t, second.ItemsInserted)
	assert.Zero(t, second.ItemsUpdated)
	assert.Equal(t, first.ItemsInserted, second.ItemsSkipped)
}

func TestSyncCatalog_MissingFile(t *testing.T) {
	_, err := SyncCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.json"), NewMemoryStorage(memory.NewStore()).Items)
	assert.ErrorContains(t, err, ErrMsgFailedLoadCatalog)
}

func TestInitializeEventSystem_CreatesDeadLetterDir(t *testing.T) {
	cfg := testConfig(t)

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)
	require.NotNil(t, bus)
	require.NotNil(t, publisher)

	info, err := os.Stat(filepath.Dir(cfg.EventDeadLetterPath))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	require.NoError(t, publisher.Shutdown(context.Background()))
}

func TestWiring_EventsReachEventLog(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	st := NewMemoryStorage(memory.NewStore())
	_, err := SyncCatalog(ctx, shippedCatalog, st.Items)
	require.NoError(t, err)

	bus, publisher, err := InitializeEventSystem(cfg)
	require.NoError(t, err)

	svcs := BuildServices(cfg, st, clock.NewSimulatedClock(time.Date(2025, 3, 5, 9, 0, 0, 0, time.UTC)), publisher)
	require.NoError(t, RegisterEventHandlers(EventHandlerDependencies{EventBus: bus, EventLogService: svcs.EventLog}))

	_, err = svcs.Timer.StartSession(ctx, "alice", timer.StartRequest{Mode: domain.ModeStudy, DurationSec: 600})
	require.NoError(t, err)

	events, err := svcs.EventLog.Recent(ctx, repository.EventLogFilter{Limit: 10})
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, domain.EventTypeSessionStarted, events[0].EventType)

	GracefulShutdown(ctx, ShutdownComponents{ResilientPublisher: publisher, Storage: st})
}

func TestServerConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Port = 9090
	cfg.APIKey = "k"

	sc := ServerConfig(cfg)
	assert.Equal(t, 9090, sc.Port)
	assert.Equal(t, "k", sc.APIKey)
	assert.Equal(t, 60, sc.TimerBounds.MinSec)
	assert.Equal(t, 3600, sc.TimerBounds.MaxSec)
}

func TestStartBackgroundJobs_Stop(t *testing.T) {
	st := NewMemoryStorage(memory.NewStore())
	svcs := BuildServices(testConfig(t), st, clock.NewRealClock(), event.NewMemoryBus())

	jobs := StartBackgroundJobs(svcs.EventLog, 30)
	require.NotNil(t, jobs.Pool)

	done := make(chan struct{})
	go func() {
		GracefulShutdown(context.Background(), ShutdownComponents{BackgroundJobs: jobs, Storage: st})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}

package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StudyGarden_Go/internal/config"
	"github.com/osse101/StudyGarden_Go/internal/database"
	"github.com/osse101/StudyGarden_Go/internal/database/memory"
	"github.com/osse101/StudyGarden_Go/internal/database/postgres"
	"github.com/osse101/StudyGarden_Go/internal/handler"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// Storage holds the repository implementations of the selected backend
type Storage struct {
	Wallets     repository.Wallet
	Inventories repository.Inventory
	Timers      repository.Timer
	Subjects    repository.Subjects
	Leaderboard repository.Leaderboard
	Gardens     repository.Garden
	Items       repository.Item
	EventLog    repository.EventLog

	// Pinger backs /readyz; nil for the memory backend
	Pinger handler.Pinger

	pool *pgxpool.Pool
}

// Close releases the connection pool, if any
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitializeStorage opens the backend named by cfg.StorageBackend. For
// postgres it connects the pool and applies pending migrations when
// cfg.RunMigrations is set.
func InitializeStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	var st *Storage
	switch cfg.StorageBackend {
	case config.StorageBackendMemory:
		st = NewMemoryStorage(memory.NewStore())
	case config.StorageBackendPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLifetime)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		if err := migrate(ctx, cfg, pool); err != nil {
			pool.Close()
			return nil, err
		}
		st = NewPostgresStorage(pool)
	default:
		return nil, fmt.Errorf(ErrMsgUnknownStorageBackend, cfg.StorageBackend)
	}

	slog.Info(LogMsgStorageInitialized, "backend", cfg.StorageBackend)
	return st, nil
}

// NewMemoryStorage exposes a memory store as Storage
func NewMemoryStorage(store *memory.Store) *Storage {
	return &Storage{
		Wallets:     store.Wallets(),
		Inventories: store.Inventories(),
		Timers:      store.Timers(),
		Subjects:    store,
		Leaderboard: store.Timers(),
		Gardens:     store.Gardens(),
		Items:       store.Items(),
		EventLog:    store.EventLog(),
	}
}

// NewPostgresStorage exposes a pool as Storage; Close closes the pool
func NewPostgresStorage(pool *pgxpool.Pool) *Storage {
	store := postgres.NewStore(pool)
	return &Storage{
		Wallets:     store.Wallets(),
		Inventories: store.Inventories(),
		Timers:      store.Timers(),
		Subjects:    store,
		Leaderboard: store.Timers(),
		Gardens:     store.Gardens(),
		Items:       store.Items(),
		EventLog:    store.EventLog(),
		Pinger:      store,
		pool:        pool,
	}
}

func migrate(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
	if !cfg.RunMigrations {
		slog.Info(LogMsgMigrationsSkipped)
		return nil
	}

	migrator, err := database.NewMigrator(pool)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedCreateMigrator, err)
	}
	defer migrator.Close()

	applied, err := migrator.Up(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRunMigrations, err)
	}
	slog.Info(LogMsgMigrationsApplied, "applied", applied)
	return nil
}

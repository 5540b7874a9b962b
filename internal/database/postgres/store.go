// Package postgres implements the repository interfaces on PostgreSQL
// using hand-written pgx queries. Units of work map to database
// transactions and serialization relies on row locks.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store groups the per-concern repositories over one connection pool
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a Store over pool
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// Ping checks database connectivity
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) begin(ctx context.Context) (*Tx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a pgx transaction and implements every tx-scoped repository
// interface so services can share one unit of work across concerns
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// Rollback aborts the transaction
func (t *Tx) Rollback(ctx context.Context) error {
	if err := t.tx.Rollback(ctx); err != nil {
		if errors.Is(err, pgx.ErrTxClosed) {
			return repository.ErrTxClosed
		}
		return err
	}
	return nil
}

// advisoryLock takes a transaction-scoped advisory lock on key
func advisoryLock(ctx context.Context, tx pgx.Tx, key string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key)
	return err
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == PgErrorCodeUniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
}

var (
	_ repository.WalletTx    = (*Tx)(nil)
	_ repository.InventoryTx = (*Tx)(nil)
	_ repository.TimerTx     = (*Tx)(nil)
	_ repository.GardenTx    = (*Tx)(nil)
)

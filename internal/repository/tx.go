package repository

import "context"

// Tx is a unit of work. Tx-scoped repository methods are only valid until
// Commit or Rollback is called.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

package repository

import (
	"context"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Inventory defines the interface for holdings and seed unlock persistence
type Inventory interface {
	ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error)
	// GetHolding returns nil, nil when the user holds none of the item
	GetHolding(ctx context.Context, userID string, itemID int) (*domain.Holding, error)
	HasSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error)
	ListSeedUnlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error)
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for inventory transactions
type InventoryTx interface {
	Tx
	// GetHoldingForUpdate locks the holding row; nil, nil when absent
	GetHoldingForUpdate(ctx context.Context, userID string, itemID int) (*domain.Holding, error)
	UpsertHolding(ctx context.Context, holding domain.Holding) error
	DeleteHolding(ctx context.Context, userID string, itemID int) error
	HasSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error)
	// GrantSeedUnlock is idempotent and reports whether a new row was created
	GrantSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error)
}

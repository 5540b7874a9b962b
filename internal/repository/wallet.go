package repository

import (
	"context"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Wallet defines the interface for wallet and ledger persistence
type Wallet interface {
	// GetWallet returns nil, nil when the user has no wallet yet
	GetWallet(ctx context.Context, userID string) (*domain.Wallet, error)
	// GetLedgerEntryByRef returns nil, nil when no entry matches (userID, type, refID)
	GetLedgerEntryByRef(ctx context.Context, userID string, entryType domain.LedgerType, refID string) (*domain.LedgerEntry, error)
	ListLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)
	SumLedger(ctx context.Context, userID string) (int64, error)
	BeginTx(ctx context.Context) (WalletTx, error)
}

// WalletTx defines the interface for wallet transactions
type WalletTx interface {
	Tx
	EnsureWallet(ctx context.Context, userID string) error
	// GetWalletForUpdate locks the wallet row; the wallet must exist
	GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error)
	// InsertLedgerEntry returns domain.ErrDuplicateLedgerEntry when
	// (userID, type, refID) already exists
	InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error
	// AddToBalance applies delta atomically and returns the new balance
	AddToBalance(ctx context.Context, userID string, delta int64) (int64, error)
}

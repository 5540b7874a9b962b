package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// WalletRepository implements repository.Wallet
type WalletRepository struct {
	store *Store
}

// Wallets returns the wallet repository
func (s *Store) Wallets() *WalletRepository {
	return &WalletRepository{store: s}
}

// BeginTx starts a new unit of work
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	return r.store.begin(ctx)
}

// GetWallet returns the user's wallet or nil
func (r *WalletRepository) GetWallet(_ context.Context, userID string) (*domain.Wallet, error) {
	var out *domain.Wallet
	r.store.read(func(st *state) {
		if w, ok := st.wallets[userID]; ok {
			out = &w
		}
	})
	return out, nil
}

// GetLedgerEntryByRef finds an entry by its idempotency key
func (r *WalletRepository) GetLedgerEntryByRef(_ context.Context, userID string, entryType domain.LedgerType, refID string) (*domain.LedgerEntry, error) {
	var out *domain.LedgerEntry
	r.store.read(func(st *state) {
		if idx, ok := st.ledgerRef[ledgerRefKey{userID, entryType, refID}]; ok {
			e := st.ledger[idx]
			out = &e
		}
	})
	return out, nil
}

// ListLedgerEntries returns the newest entries first
func (r *WalletRepository) ListLedgerEntries(_ context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	var out []domain.LedgerEntry
	r.store.read(func(st *state) {
		for i := len(st.ledger) - 1; i >= 0; i-- {
			if st.ledger[i].UserID == userID {
				out = append(out, st.ledger[i])
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SumLedger returns the sum of all ledger amounts for the user
func (r *WalletRepository) SumLedger(_ context.Context, userID string) (int64, error) {
	var sum int64
	r.store.read(func(st *state) {
		for _, e := range st.ledger {
			if e.UserID == userID {
				sum += e.Amount
			}
		}
	})
	return sum, nil
}

// EnsureWallet creates a zero-balance wallet when missing
func (t *Tx) EnsureWallet(_ context.Context, userID string) error {
	if err := t.check(); err != nil {
		return err
	}
	if _, ok := t.st.wallets[userID]; !ok {
		t.st.wallets[userID] = domain.Wallet{UserID: userID, UpdatedAt: time.Now().UTC()}
	}
	return nil
}

// GetWalletForUpdate reads the wallet inside the unit of work
func (t *Tx) GetWalletForUpdate(_ context.Context, userID string) (*domain.Wallet, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	w, ok := t.st.wallets[userID]
	if !ok {
		return nil, fmt.Errorf("wallet for user %s does not exist", userID)
	}
	return &w, nil
}

// InsertLedgerEntry appends an entry, enforcing (user, type, ref) uniqueness
func (t *Tx) InsertLedgerEntry(_ context.Context, entry *domain.LedgerEntry) error {
	if err := t.check(); err != nil {
		return err
	}
	if entry.RefID != "" {
		key := ledgerRefKey{entry.UserID, entry.Type, entry.RefID}
		if _, dup := t.st.ledgerRef[key]; dup {
			return domain.ErrDuplicateLedgerEntry
		}
		t.st.ledgerRef[key] = len(t.st.ledger)
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	t.st.ledger = append(t.st.ledger, *entry)
	return nil
}

// AddToBalance applies delta and returns the new balance
func (t *Tx) AddToBalance(_ context.Context, userID string, delta int64) (int64, error) {
	if err := t.check(); err != nil {
		return 0, err
	}
	w, ok := t.st.wallets[userID]
	if !ok {
		return 0, fmt.Errorf("wallet for user %s does not exist", userID)
	}
	if w.BalanceCoins+delta < 0 {
		return 0, domain.ErrInsufficientBalance
	}
	w.BalanceCoins += delta
	w.UpdatedAt = time.Now().UTC()
	t.st.wallets[userID] = w
	return w.BalanceCoins, nil
}

var _ repository.Wallet = (*WalletRepository)(nil)

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

const ledgerColumns = `entry_id::text, user_id, amount, entry_type, ref_id, created_at`

// WalletRepository implements repository.Wallet
type WalletRepository struct {
	store *Store
}

// Wallets returns the wallet repository
func (s *Store) Wallets() *WalletRepository {
	return &WalletRepository{store: s}
}

// BeginTx starts a wallet unit of work
func (r *WalletRepository) BeginTx(ctx context.Context) (repository.WalletTx, error) {
	return r.store.begin(ctx)
}

// GetWallet returns the wallet or nil
func (r *WalletRepository) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return getWallet(ctx, r.store.db, userID, false)
}

// GetLedgerEntryByRef finds the entry recorded under (user, type, ref)
func (r *WalletRepository) GetLedgerEntryByRef(ctx context.Context, userID string, entryType domain.LedgerType, refID string) (*domain.LedgerEntry, error) {
	row := r.store.db.QueryRow(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE user_id = $1 AND entry_type = $2 AND ref_id = $3`,
		userID, string(entryType), refID)

	entry, err := scanLedgerEntry(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetLedgerEntry, err)
	}
	return entry, nil
}

// ListLedgerEntries returns the newest entries first
func (r *WalletRepository) ListLedgerEntries(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT `+ledgerColumns+`
		FROM ledger_entries
		WHERE user_id = $1
		ORDER BY created_at DESC, entry_id
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLedgerEntries, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryLedgerEntries, err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// SumLedger totals every entry for the user
func (r *WalletRepository) SumLedger(ctx context.Context, userID string) (int64, error) {
	var sum int64
	err := r.store.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0)::bigint FROM ledger_entries WHERE user_id = $1`,
		userID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSumLedger, err)
	}
	return sum, nil
}

// EnsureWallet creates a zero-balance wallet when missing
func (t *Tx) EnsureWallet(ctx context.Context, userID string) error {
	_, err := t.tx.Exec(ctx, `
		INSERT INTO wallets (user_id, balance_coins)
		VALUES ($1, 0)
		ON CONFLICT (user_id) DO NOTHING`, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToEnsureWallet, err)
	}
	return nil
}

// GetWalletForUpdate locks the wallet row
func (t *Tx) GetWalletForUpdate(ctx context.Context, userID string) (*domain.Wallet, error) {
	w, err := getWallet(ctx, t.tx, userID, true)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf(ErrMsgWalletMissingFmt, userID)
	}
	return w, nil
}

// InsertLedgerEntry appends an entry; the partial unique index on
// (user_id, entry_type, ref_id) rejects replays
func (t *Tx) InsertLedgerEntry(ctx context.Context, entry *domain.LedgerEntry) error {
	var refID *string
	if entry.RefID != "" {
		refID = &entry.RefID
	}

	err := t.tx.QueryRow(ctx, `
		INSERT INTO ledger_entries (user_id, amount, entry_type, ref_id)
		VALUES ($1, $2, $3, $4)
		RETURNING entry_id::text, created_at`,
		entry.UserID, entry.Amount, string(entry.Type), refID).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, ConstraintLedgerRef) {
			return domain.ErrDuplicateLedgerEntry
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToInsertLedgerEntry, err)
	}
	return nil
}

// AddToBalance applies delta and returns the new balance. A delta that
// would drive the balance negative matches no row.
func (t *Tx) AddToBalance(ctx context.Context, userID string, delta int64) (int64, error) {
	var balance int64
	err := t.tx.QueryRow(ctx, `
		UPDATE wallets
		SET balance_coins = balance_coins + $2, updated_at = NOW()
		WHERE user_id = $1 AND balance_coins + $2 >= 0
		RETURNING balance_coins`, userID, delta).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		w, getErr := getWallet(ctx, t.tx, userID, false)
		if getErr != nil {
			return 0, getErr
		}
		if w == nil {
			return 0, fmt.Errorf(ErrMsgWalletMissingFmt, userID)
		}
		return 0, domain.ErrInsufficientBalance
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToUpdateBalance, err)
	}
	return balance, nil
}

func getWallet(ctx context.Context, q querier, userID string, forUpdate bool) (*domain.Wallet, error) {
	query := `SELECT user_id, balance_coins, updated_at FROM wallets WHERE user_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	var w domain.Wallet
	err := q.QueryRow(ctx, query, userID).Scan(&w.UserID, &w.BalanceCoins, &w.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetWallet, err)
	}
	return &w, nil
}

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		e         domain.LedgerEntry
		entryType string
		refID     *string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.Amount, &entryType, &refID, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Type = domain.LedgerType(entryType)
	if refID != nil {
		e.RefID = *refID
	}
	return &e, nil
}

var _ repository.Wallet = (*WalletRepository)(nil)

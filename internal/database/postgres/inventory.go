package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// InventoryRepository implements repository.Inventory
type InventoryRepository struct {
	store *Store
}

// Inventories returns the inventory repository
func (s *Store) Inventories() *InventoryRepository {
	return &InventoryRepository{store: s}
}

// BeginTx starts an inventory unit of work
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	return r.store.begin(ctx)
}

// ListHoldings returns the user's holdings ordered by item id
func (r *InventoryRepository) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT user_id, item_id, quantity, metadata
		FROM inventory_holdings
		WHERE user_id = $1
		ORDER BY item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHoldings, err)
	}
	defer rows.Close()

	var holdings []domain.Holding
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQueryHoldings, err)
		}
		holdings = append(holdings, *h)
	}
	return holdings, rows.Err()
}

// GetHolding returns a holding or nil
func (r *InventoryRepository) GetHolding(ctx context.Context, userID string, itemID int) (*domain.Holding, error) {
	return getHolding(ctx, r.store.db, userID, itemID, false)
}

// HasSeedUnlock reports whether the user unlocked the seed
func (r *InventoryRepository) HasSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error) {
	return hasSeedUnlock(ctx, r.store.db, userID, seedItemID)
}

// ListSeedUnlocks returns the user's unlocks ordered by seed id
func (r *InventoryRepository) ListSeedUnlocks(ctx context.Context, userID string) ([]domain.SeedUnlock, error) {
	rows, err := r.store.db.Query(ctx, `
		SELECT user_id, seed_item_id, created_at
		FROM seed_unlocks
		WHERE user_id = $1
		ORDER BY seed_item_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySeedUnlocks, err)
	}
	defer rows.Close()

	var unlocks []domain.SeedUnlock
	for rows.Next() {
		var u domain.SeedUnlock
		if err := rows.Scan(&u.UserID, &u.SeedItemID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToQuerySeedUnlocks, err)
		}
		unlocks = append(unlocks, u)
	}
	return unlocks, rows.Err()
}

// GetHoldingForUpdate locks the holding. An advisory lock on the key
// covers the case where the row does not exist yet.
func (t *Tx) GetHoldingForUpdate(ctx context.Context, userID string, itemID int) (*domain.Holding, error) {
	if err := advisoryLock(ctx, t.tx, fmt.Sprintf(LockKeyHoldingFmt, userID, itemID)); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetHolding, err)
	}
	return getHolding(ctx, t.tx, userID, itemID, true)
}

// UpsertHolding writes a holding
func (t *Tx) UpsertHolding(ctx context.Context, holding domain.Holding) error {
	var metadata []byte
	if len(holding.Metadata) > 0 {
		metadata = holding.Metadata
	}
	_, err := t.tx.Exec(ctx, `
		INSERT INTO inventory_holdings (user_id, item_id, quantity, metadata)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, item_id) DO UPDATE SET
			quantity = EXCLUDED.quantity,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()`,
		holding.UserID, holding.ItemID, holding.Quantity, metadata)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertHolding, err)
	}
	return nil
}

// DeleteHolding removes a holding
func (t *Tx) DeleteHolding(ctx context.Context, userID string, itemID int) error {
	_, err := t.tx.Exec(ctx,
		`DELETE FROM inventory_holdings WHERE user_id = $1 AND item_id = $2`, userID, itemID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDeleteHolding, err)
	}
	return nil
}

// HasSeedUnlock reports whether the user unlocked the seed
func (t *Tx) HasSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error) {
	return hasSeedUnlock(ctx, t.tx, userID, seedItemID)
}

// GrantSeedUnlock inserts the unlock if missing
func (t *Tx) GrantSeedUnlock(ctx context.Context, userID string, seedItemID int) (bool, error) {
	tag, err := t.tx.Exec(ctx, `
		INSERT INTO seed_unlocks (user_id, seed_item_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, seed_item_id) DO NOTHING`, userID, seedItemID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToGrantSeedUnlock, err)
	}
	return tag.RowsAffected() == 1, nil
}

func getHolding(ctx context.Context, q querier, userID string, itemID int, forUpdate bool) (*domain.Holding, error) {
	query := `
		SELECT user_id, item_id, quantity, metadata
		FROM inventory_holdings
		WHERE user_id = $1 AND item_id = $2`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	h, err := scanHolding(q.QueryRow(ctx, query, userID, itemID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetHolding, err)
	}
	return h, nil
}

func hasSeedUnlock(ctx context.Context, q querier, userID string, seedItemID int) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM seed_unlocks WHERE user_id = $1 AND seed_item_id = $2)`,
		userID, seedItemID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckSeedUnlock, err)
	}
	return exists, nil
}

func scanHolding(row pgx.Row) (*domain.Holding, error) {
	var (
		h        domain.Holding
		metadata []byte
	)
	if err := row.Scan(&h.UserID, &h.ItemID, &h.Quantity, &metadata); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		h.Metadata = json.RawMessage(metadata)
	}
	return &h, nil
}

var _ repository.Inventory = (*InventoryRepository)(nil)

package memory

import (
	"context"
	"sort"
	"time"

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

// BeginTx starts a new unit of work
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	return r.store.begin(ctx)
}

// ListHoldings returns the user's holdings ordered by item id
func (r *InventoryRepository) ListHoldings(_ context.Context, userID string) ([]domain.Holding, error) {
	var out []domain.Holding
	r.store.read(func(st *state) {
		for k, h := range st.holdings {
			if k.userID == userID {
				h.Metadata = cloneRaw(h.Metadata)
				out = append(out, h)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out, nil
}

// GetHolding returns a holding or nil
func (r *InventoryRepository) GetHolding(_ context.Context, userID string, itemID int) (*domain.Holding, error) {
	var out *domain.Holding
	r.store.read(func(st *state) {
		if h, ok := st.holdings[userItemKey{userID, itemID}]; ok {
			h.Metadata = cloneRaw(h.Metadata)
			out = &h
		}
	})
	return out, nil
}

// HasSeedUnlock reports whether the user unlocked the seed
func (r *InventoryRepository) HasSeedUnlock(_ context.Context, userID string, seedItemID int) (bool, error) {
	var ok bool
	r.store.read(func(st *state) {
		_, ok = st.unlocks[userItemKey{userID, seedItemID}]
	})
	return ok, nil
}

// ListSeedUnlocks returns all unlocks for the user
func (r *InventoryRepository) ListSeedUnlocks(_ context.Context, userID string) ([]domain.SeedUnlock, error) {
	var out []domain.SeedUnlock
	r.store.read(func(st *state) {
		for k, u := range st.unlocks {
			if k.userID == userID {
				out = append(out, u)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SeedItemID < out[j].SeedItemID })
	return out, nil
}

// GetHoldingForUpdate reads a holding inside the unit of work
func (t *Tx) GetHoldingForUpdate(_ context.Context, userID string, itemID int) (*domain.Holding, error) {
	if err := t.check(); err != nil {
		return nil, err
	}
	h, ok := t.st.holdings[userItemKey{userID, itemID}]
	if !ok {
		return nil, nil
	}
	h.Metadata = cloneRaw(h.Metadata)
	return &h, nil
}

// UpsertHolding writes a holding
func (t *Tx) UpsertHolding(_ context.Context, holding domain.Holding) error {
	if err := t.check(); err != nil {
		return err
	}
	holding.Metadata = cloneRaw(holding.Metadata)
	t.st.holdings[userItemKey{holding.UserID, holding.ItemID}] = holding
	return nil
}

// DeleteHolding removes a holding
func (t *Tx) DeleteHolding(_ context.Context, userID string, itemID int) error {
	if err := t.check(); err != nil {
		return err
	}
	delete(t.st.holdings, userItemKey{userID, itemID})
	return nil
}

// HasSeedUnlock reports whether the user unlocked the seed
func (t *Tx) HasSeedUnlock(_ context.Context, userID string, seedItemID int) (bool, error) {
	if err := t.check(); err != nil {
		return false, err
	}
	_, ok := t.st.unlocks[userItemKey{userID, seedItemID}]
	return ok, nil
}

// GrantSeedUnlock inserts the unlock if missing
func (t *Tx) GrantSeedUnlock(_ context.Context, userID string, seedItemID int) (bool, error) {
	if err := t.check(); err != nil {
		return false, err
	}
	key := userItemKey{userID, seedItemID}
	if _, ok := t.st.unlocks[key]; ok {
		return false, nil
	}
	t.st.unlocks[key] = domain.SeedUnlock{UserID: userID, SeedItemID: seedItemID, CreatedAt: time.Now().UTC()}
	return true, nil
}

var _ repository.Inventory = (*InventoryRepository)(nil)

// Package fixtures builds small in-memory worlds for service tests
package fixtures

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/osse101/StudyGarden_Go/internal/catalog"
	"github.com/osse101/StudyGarden_Go/internal/database/memory"
	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Slugs of the fixture catalog
const (
	SlugTomato     = "tomato"
	SlugBasil      = "basil"
	SlugOrphan     = "orphan"
	SlugStarter    = "starter-pack"
	SlugBroken     = "broken-pack"
	SlugEmpty      = "empty-pack"
	SlugFertilizer = "fertilizer"
)

// World is a memory store with a seeded catalog
type World struct {
	Store   *memory.Store
	Catalog catalog.Service
	Items   map[string]*domain.Item
}

// ID returns the item id for slug
func (w *World) ID(t testing.TB, slug string) int {
	t.Helper()
	item, ok := w.Items[slug]
	require.True(t, ok, "fixture item %q not defined", slug)
	return item.ID
}

// NewWorld creates a store holding:
//
//	tomato       seed, stageCount 2, growthDays 6, coinYield 10, repurchasePrice 10
//	basil        seed, stageCount 3, growthDays 3, list price 20, no coinYield
//	orphan       seed without any price
//	starter-pack pack, price 25, drops tomato:1 basil:3
//	broken-pack  pack, drops a slug that is not a seed
//	empty-pack   pack with only invalid drops
//	fertilizer   other, price 15
func NewWorld(t testing.TB) *World {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	defs := []domain.Item{
		{Slug: SlugTomato, Name: "Tomato", Type: domain.ItemTypeSeed,
			Metadata: raw(map[string]interface{}{"packName": "Common", "stageCount": 2, "growthDays": 6, "coinYield": 10, "repurchasePrice": 10})},
		{Slug: SlugBasil, Name: "Basil", Type: domain.ItemTypeSeed, Price: 20,
			Metadata: raw(map[string]interface{}{"stageCount": 3, "growthDays": 3})},
		{Slug: SlugOrphan, Name: "Orphan", Type: domain.ItemTypeSeed,
			Metadata: raw(map[string]interface{}{"stageCount": 1, "growthDays": 1})},
		{Slug: SlugStarter, Name: "Starter Pack", Type: domain.ItemTypeSeedPack, Price: 25,
			Metadata: raw(map[string]interface{}{"drops": []map[string]interface{}{
				{"seedSlug": SlugTomato, "weight": 1},
				{"seedSlug": SlugBasil, "weight": 3},
			}})},
		{Slug: SlugBroken, Name: "Broken Pack", Type: domain.ItemTypeSeedPack, Price: 5,
			Metadata: raw(map[string]interface{}{"drops": []map[string]interface{}{
				{"seedSlug": SlugTomato, "weight": 1},
				{"seedSlug": SlugFertilizer, "weight": 1},
			}})},
		{Slug: SlugEmpty, Name: "Empty Pack", Type: domain.ItemTypeSeedPack, Price: 5,
			Metadata: raw(map[string]interface{}{"drops": []map[string]interface{}{
				{"seedSlug": SlugTomato, "weight": 0},
				{"seedSlug": "", "weight": 4},
			}})},
		{Slug: SlugFertilizer, Name: "Fertilizer", Type: domain.ItemTypeOther, Price: 15},
	}

	repo := store.Items()
	for i := range defs {
		_, err := repo.UpsertItem(ctx, &defs[i])
		require.NoError(t, err)
	}

	svc := catalog.NewService(repo, 64, time.Minute)
	items := make(map[string]*domain.Item, len(defs))
	for _, def := range defs {
		item, err := svc.GetBySlug(ctx, def.Slug)
		require.NoError(t, err)
		items[def.Slug] = item
	}

	return &World{Store: store, Catalog: svc, Items: items}
}

// Give puts quantity units of slug into the user's inventory directly
func (w *World) Give(t testing.TB, userID, slug string, quantity int) {
	t.Helper()
	ctx := context.Background()
	tx, err := w.Store.Inventories().BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertHolding(ctx, domain.Holding{UserID: userID, ItemID: w.ID(t, slug), Quantity: quantity}))
	require.NoError(t, tx.Commit(ctx))
}

// Unlock grants a seed unlock directly
func (w *World) Unlock(t testing.TB, userID, slug string) {
	t.Helper()
	ctx := context.Background()
	tx, err := w.Store.Inventories().BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.GrantSeedUnlock(ctx, userID, w.ID(t, slug))
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))
}

// Quantity returns the held quantity, zero when absent
func (w *World) Quantity(t testing.TB, userID, slug string) int {
	t.Helper()
	h, err := w.Store.Inventories().GetHolding(context.Background(), userID, w.ID(t, slug))
	require.NoError(t, err)
	if h == nil {
		return 0
	}
	return h.Quantity
}

func raw(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

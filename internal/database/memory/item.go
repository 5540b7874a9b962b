package memory

import (
	"context"
	"sort"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// ItemRepository implements repository.Item
type ItemRepository struct {
	store *Store
}

// Items returns the catalog repository
func (s *Store) Items() *ItemRepository {
	return &ItemRepository{store: s}
}

// GetAllItems returns every item ordered by id
func (r *ItemRepository) GetAllItems(_ context.Context) ([]domain.Item, error) {
	r.store.catalogMu.RLock()
	defer r.store.catalogMu.RUnlock()

	out := make([]domain.Item, 0, len(r.store.items))
	for _, it := range r.store.items {
		out = append(out, copyItem(it))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetItemByID returns an item or nil
func (r *ItemRepository) GetItemByID(_ context.Context, id int) (*domain.Item, error) {
	r.store.catalogMu.RLock()
	defer r.store.catalogMu.RUnlock()

	it, ok := r.store.items[id]
	if !ok {
		return nil, nil
	}
	c := copyItem(it)
	return &c, nil
}

// GetItemBySlug returns an item or nil
func (r *ItemRepository) GetItemBySlug(_ context.Context, slug string) (*domain.Item, error) {
	r.store.catalogMu.RLock()
	defer r.store.catalogMu.RUnlock()

	for _, it := range r.store.items {
		if it.Slug == slug {
			c := copyItem(it)
			return &c, nil
		}
	}
	return nil, nil
}

// GetItemsBySlugs returns the items matching any of slugs
func (r *ItemRepository) GetItemsBySlugs(_ context.Context, slugs []string) ([]domain.Item, error) {
	want := make(map[string]struct{}, len(slugs))
	for _, s := range slugs {
		want[s] = struct{}{}
	}

	r.store.catalogMu.RLock()
	defer r.store.catalogMu.RUnlock()

	var out []domain.Item
	for _, it := range r.store.items {
		if _, ok := want[it.Slug]; ok {
			out = append(out, copyItem(it))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertItem inserts or updates by slug and assigns ids sequentially
func (r *ItemRepository) UpsertItem(_ context.Context, item *domain.Item) (bool, error) {
	r.store.catalogMu.Lock()
	defer r.store.catalogMu.Unlock()

	for id, existing := range r.store.items {
		if existing.Slug == item.Slug {
			item.ID = id
			r.store.items[id] = storedItem(*item)
			return false, nil
		}
	}
	r.store.itemSeq++
	item.ID = r.store.itemSeq
	r.store.items[item.ID] = storedItem(*item)
	return true, nil
}

// storedItem keeps only the persisted columns; typed metadata is derived
func storedItem(it domain.Item) domain.Item {
	it.Metadata = cloneRaw(it.Metadata)
	it.Seed = nil
	it.Pack = nil
	return it
}

func copyItem(it domain.Item) domain.Item {
	it.Metadata = cloneRaw(it.Metadata)
	return it
}

var _ repository.Item = (*ItemRepository)(nil)

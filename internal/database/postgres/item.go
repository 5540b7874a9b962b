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

const itemColumns = `item_id, slug, name, description, item_type, price, metadata`

// ItemRepository implements repository.Item
type ItemRepository struct {
	store *Store
}

// Items returns the catalog repository
func (s *Store) Items() *ItemRepository {
	return &ItemRepository{store: s}
}

// GetAllItems returns every item ordered by id
func (r *ItemRepository) GetAllItems(ctx context.Context) ([]domain.Item, error) {
	rows, err := r.store.db.Query(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAllItems, err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAllItems, err)
	}
	return items, nil
}

// GetItemByID returns an item or nil
func (r *ItemRepository) GetItemByID(ctx context.Context, id int) (*domain.Item, error) {
	row := r.store.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1`, id)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemByID, err)
	}
	return item, nil
}

// GetItemBySlug returns an item or nil
func (r *ItemRepository) GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	row := r.store.db.QueryRow(ctx, `SELECT `+itemColumns+` FROM items WHERE slug = $1`, slug)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemBySlug, err)
	}
	return item, nil
}

// GetItemsBySlugs returns the items matching any of slugs
func (r *ItemRepository) GetItemsBySlugs(ctx context.Context, slugs []string) ([]domain.Item, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	rows, err := r.store.db.Query(ctx,
		`SELECT `+itemColumns+` FROM items WHERE slug = ANY($1) ORDER BY item_id`, slugs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemsBySlugs, err)
	}
	items, err := collectItems(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetItemsBySlugs, err)
	}
	return items, nil
}

// UpsertItem inserts or updates by slug. xmax is zero only for rows
// created by this statement.
func (r *ItemRepository) UpsertItem(ctx context.Context, item *domain.Item) (bool, error) {
	var metadata []byte
	if len(item.Metadata) > 0 {
		metadata = item.Metadata
	}

	var inserted bool
	err := r.store.db.QueryRow(ctx, `
		INSERT INTO items (slug, name, description, item_type, price, metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			item_type = EXCLUDED.item_type,
			price = EXCLUDED.price,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
		RETURNING item_id, (xmax = 0)`,
		item.Slug, item.Name, item.Description, string(item.Type), item.Price, metadata,
	).Scan(&item.ID, &inserted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToUpsertItem, err)
	}
	return inserted, nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		it       domain.Item
		itemType string
		metadata []byte
	)
	if err := row.Scan(&it.ID, &it.Slug, &it.Name, &it.Description, &itemType, &it.Price, &metadata); err != nil {
		return nil, err
	}
	it.Type = domain.ItemType(itemType)
	if len(metadata) > 0 {
		it.Metadata = json.RawMessage(metadata)
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]domain.Item, error) {
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

var _ repository.Item = (*ItemRepository)(nil)

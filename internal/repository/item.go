package repository

import (
	"context"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// Item defines the interface for catalog persistence. Items are returned
// with raw metadata; typed metadata is parsed by the catalog service.
type Item interface {
	GetAllItems(ctx context.Context) ([]domain.Item, error)
	// GetItemByID returns nil, nil when not found
	GetItemByID(ctx context.Context, id int) (*domain.Item, error)
	// GetItemBySlug returns nil, nil when not found
	GetItemBySlug(ctx context.Context, slug string) (*domain.Item, error)
	GetItemsBySlugs(ctx context.Context, slugs []string) ([]domain.Item, error)
	// UpsertItem inserts or updates by slug and reports whether a row was inserted
	UpsertItem(ctx context.Context, item *domain.Item) (bool, error)
}

package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/StudyGarden_Go/internal/domain"
	"github.com/osse101/StudyGarden_Go/internal/logger"
	"github.com/osse101/StudyGarden_Go/internal/repository"
)

// Service resolves catalog items with typed metadata
type Service interface {
	GetByID(ctx context.Context, id int) (*domain.Item, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Item, error)
	// GetBySlugs returns the items found, keyed by slug. Missing slugs are absent.
	GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Item, error)
	Resolve(ctx context.Context, ref domain.ItemRef) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
	// Invalidate drops every cached item, e.g. after a catalog sync
	Invalidate(ctx context.Context)
}

type service struct {
	repo  repository.Item
	cache *itemCache
}

// NewService creates a catalog service with an item cache of the given size and TTL
func NewService(repo repository.Item, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newItemCache(cacheSize, cacheTTL),
	}
}

func (s *service) GetByID(ctx context.Context, id int) (*domain.Item, error) {
	if item, ok := s.cache.get(idKey(id)); ok {
		return item, nil
	}

	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %d: %w", id, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: id %d", domain.ErrItemNotFound, id)
	}

	s.decorate(ctx, item)
	return item, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*domain.Item, error) {
	if item, ok := s.cache.get(slugKey(slug)); ok {
		return item, nil
	}

	item, err := s.repo.GetItemBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %q: %w", slug, err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, slug)
	}

	s.decorate(ctx, item)
	return item, nil
}

func (s *service) GetBySlugs(ctx context.Context, slugs []string) (map[string]*domain.Item, error) {
	found := make(map[string]*domain.Item, len(slugs))
	var misses []string

	for _, slug := range slugs {
		if _, seen := found[slug]; seen {
			continue
		}
		if item, ok := s.cache.get(slugKey(slug)); ok {
			found[slug] = item
			continue
		}
		misses = append(misses, slug)
	}

	if len(misses) == 0 {
		return found, nil
	}

	items, err := s.repo.GetItemsBySlugs(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by slugs: %w", err)
	}
	for i := range items {
		item := items[i]
		s.decorate(ctx, &item)
		found[item.Slug] = &item
	}
	return found, nil
}

func (s *service) Resolve(ctx context.Context, ref domain.ItemRef) (*domain.Item, error) {
	switch {
	case ref.ID != 0:
		return s.GetByID(ctx, ref.ID)
	case ref.Slug != "":
		return s.GetBySlug(ctx, ref.Slug)
	default:
		return nil, fmt.Errorf("%w: item id or slug is required", domain.ErrInvalidInput)
	}
}

func (s *service) List(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.GetAllItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	for i := range items {
		s.decorate(ctx, &items[i])
	}
	return items, nil
}

func (s *service) Invalidate(ctx context.Context) {
	s.cache.clear()
	logger.FromContext(ctx).Info(LogMsgCatalogInvalidated)
}

// decorate parses metadata and caches the result
func (s *service) decorate(ctx context.Context, item *domain.Item) {
	if !Decorate(item) {
		logger.FromContext(ctx).Warn(LogMsgMetadataMalformed, "slug", item.Slug)
	}
	s.cache.set(item)
}

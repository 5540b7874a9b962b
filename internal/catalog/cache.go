package catalog

import (
	"strconv"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/StudyGarden_Go/internal/domain"
)

// cachedItemEntry wraps a parsed item with the schema version it was cached under
type cachedItemEntry struct {
	Version  string
	Item     domain.Item
	CachedAt time.Time
}

// itemCache is an LRU of parsed items keyed both by id and by slug
type itemCache struct {
	lru *expirable.LRU[string, *cachedItemEntry]
}

func newItemCache(size int, ttl time.Duration) *itemCache {
	return &itemCache{
		lru: expirable.NewLRU[string, *cachedItemEntry](size, nil, ttl),
	}
}

func idKey(id int) string        { return cacheKeyPrefixID + strconv.Itoa(id) }
func slugKey(slug string) string { return cacheKeyPrefixSlug + slug }

// get returns a copy so callers can never mutate a cached item
func (c *itemCache) get(key string) (*domain.Item, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}
	item := entry.Item
	return &item, true
}

func (c *itemCache) set(item *domain.Item) {
	entry := &cachedItemEntry{
		Version:  CacheSchemaVersion,
		Item:     *item,
		CachedAt: time.Now(),
	}
	c.lru.Add(idKey(item.ID), entry)
	c.lru.Add(slugKey(item.Slug), entry)
}

func (c *itemCache) clear() {
	c.lru.Purge()
}

func (c *itemCache) len() int {
	return c.lru.Len()
}

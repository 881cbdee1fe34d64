package inkpress

import (
	"sync"
	"time"
)

// PostCache is an in-memory cache of the post index built from the Store, with TTL.
type PostCache struct {
	mu      sync.RWMutex
	index   *Index
	fetched time.Time
	ttl     time.Duration
	store   *Store
}

// NewPostCache creates a PostCache backed by the given Store.
func NewPostCache(s *Store, ttl time.Duration) *PostCache {
	return &PostCache{store: s, ttl: ttl}
}

func (c *PostCache) valid() bool {
	return c.index != nil && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *PostCache) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

func (c *PostCache) load() error {
	if c.valid() {
		return nil
	}
	items, err := c.store.ListItems()
	if err != nil {
		return err
	}
	c.index = BuildIndex(items)
	c.fetched = time.Now()
	return nil
}

// Index returns the cached index after ensuring the cache is fresh.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *PostCache) Index() (*Index, error) {
	c.mu.RLock()
	if c.valid() {
		ix := c.index
		c.mu.RUnlock()
		return ix, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.index, nil
}

// GetPost returns a single published post by slug from the cache.
func (c *PostCache) GetPost(slug string) (ContentItem, error) {
	ix, err := c.Index()
	if err != nil {
		return ContentItem{}, err
	}
	item, ok := ix.BySlug(slug)
	if !ok {
		return ContentItem{}, ErrNotFound
	}
	return item, nil
}

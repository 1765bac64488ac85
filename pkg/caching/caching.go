package caching

import (
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/dtnitsch/legaldoc/pkg/storage"
)

// Cache keeps fetched pages on disk for a limited time, keyed by URL.
type Cache struct {
	store *storage.Storage
	ttl   time.Duration
}

// NewCache creates a cache rooted at dir. Directories are created on first write.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{
		store: storage.New(dir),
		ttl:   ttl,
	}
}

// key generates a SHA256 hash of the URL to use as a filename.
func (c *Cache) key(url string) string {
	return fmt.Sprintf("%x.html", sha256.Sum256([]byte(url)))
}

// Get returns the cached page and true if it exists and has not expired.
func (c *Cache) Get(url string) ([]byte, bool) {
	stats, err := c.store.GetFileStats(c.key(url))
	if err != nil {
		return nil, false
	}
	if time.Since(stats.ModTime) > c.ttl {
		return nil, false
	}

	data, err := c.store.ReadFile(c.key(url))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a page, replacing any previous copy.
func (c *Cache) Set(url string, data []byte) error {
	if err := c.store.SaveFile(c.key(url), data); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

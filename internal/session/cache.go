package session

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/joseph-ayodele/docsheet/internal/pipeline"
)

const hashPrefix = "sha256:"

// Cache keeps recent run results in memory, addressable by run ID and by
// source content hash. Entries expire after the configured TTL.
type Cache struct {
	cache *gocache.Cache
}

func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{cache: gocache.New(ttl, cleanupInterval)}
}

// Put stores res under both of its keys.
func (c *Cache) Put(res *pipeline.RunResult) {
	if res == nil {
		return
	}
	c.cache.SetDefault(res.ID, res)
	if res.SourceHash != "" {
		c.cache.SetDefault(hashPrefix+res.SourceHash, res)
	}
}

// Get looks a result up by run ID.
func (c *Cache) Get(id string) (*pipeline.RunResult, bool) {
	return c.lookup(id)
}

// ByHash returns the most recent result for identical source bytes.
func (c *Cache) ByHash(hash string) (*pipeline.RunResult, bool) {
	return c.lookup(hashPrefix + hash)
}

// Delete drops res from both indexes.
func (c *Cache) Delete(res *pipeline.RunResult) {
	if res == nil {
		return
	}
	c.cache.Delete(res.ID)
	if cur, ok := c.ByHash(res.SourceHash); ok && cur.ID == res.ID {
		c.cache.Delete(hashPrefix + res.SourceHash)
	}
}

// Len counts live runs.
func (c *Cache) Len() int {
	n := 0
	for k := range c.cache.Items() {
		if len(k) < len(hashPrefix) || k[:len(hashPrefix)] != hashPrefix {
			n++
		}
	}
	return n
}

func (c *Cache) Clear() {
	c.cache.Flush()
}

func (c *Cache) lookup(key string) (*pipeline.RunResult, bool) {
	if v, found := c.cache.Get(key); found {
		return v.(*pipeline.RunResult), true
	}
	return nil, false
}

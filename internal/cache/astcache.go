// Package cache provides an in-process, content-hash-keyed cache of
// parsed translation units, so repeated parses of an unchanged header
// (e.g. one #include'd by many files an indexer is walking) skip
// re-lexing and re-parsing entirely.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oxhq/cppdecl/internal/ast"
)

// ASTCache is a lock-free, TTL-evicted cache of parsed translation units.
type ASTCache struct {
	entries   sync.Map // hash string -> *cachedUnit
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
	maxAge    time.Duration
}

type cachedUnit struct {
	unit      *ast.TranslationUnit
	timestamp time.Time
	hitCount  atomic.Int32
}

// New returns a cache whose entries expire after maxAge.
func New(maxAge time.Duration) *ASTCache {
	return &ASTCache{maxAge: maxAge}
}

// Global is a shared package-level cache instance whose entries expire
// after five minutes. Parse has no cache of its own; the CLI builds its own
// instance from config.Config.CacheTTL rather than using Global.
var Global = New(5 * time.Minute)

// Hash returns the content-addressed cache key for src.
func Hash(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached translation unit for src's hash, if present and
// not expired.
func (c *ASTCache) Get(src string) (*ast.TranslationUnit, bool) {
	hash := Hash(src)
	v, ok := c.entries.Load(hash)
	if !ok {
		c.misses.Add(1)
		return nil, false
	}
	cu := v.(*cachedUnit)
	if time.Since(cu.timestamp) > c.maxAge {
		c.entries.Delete(hash)
		c.evictions.Add(1)
		c.misses.Add(1)
		return nil, false
	}
	cu.hitCount.Add(1)
	c.hits.Add(1)
	return cu.unit, true
}

// Store records unit under src's content hash.
func (c *ASTCache) Store(src string, unit *ast.TranslationUnit) {
	hash := Hash(src)
	c.entries.Store(hash, &cachedUnit{unit: unit, timestamp: time.Now()})
	go c.evictExpired()
}

// evictExpired sweeps expired entries; run asynchronously after each store
// so a Store call never blocks on cleanup.
func (c *ASTCache) evictExpired() {
	c.entries.Range(func(key, value any) bool {
		cu := value.(*cachedUnit)
		if time.Since(cu.timestamp) > c.maxAge {
			c.entries.Delete(key)
			c.evictions.Add(1)
		}
		return true
	})
}

// Stats reports cache hit/miss/eviction counters.
func (c *ASTCache) Stats() map[string]int64 {
	hits, misses := c.hits.Load(), c.misses.Load()
	total := hits + misses
	rate := int64(0)
	if total > 0 {
		rate = hits * 100 / total
	}
	return map[string]int64{
		"hits":      hits,
		"misses":    misses,
		"evictions": c.evictions.Load(),
		"hit_rate":  rate,
	}
}

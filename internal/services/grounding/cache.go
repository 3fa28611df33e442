package grounding

import (
	"strings"
	"sync"
	"time"

	"github.com/chartproof/chartproof/internal/models"
)

// DefaultCacheTTL bounds how long grounding results are reused per ticker.
// Search-grounded generation is billed per query, so repeated analyses of
// the same ticker within the window share one search run.
const DefaultCacheTTL = time.Hour

type cacheEntry struct {
	data      *models.GroundingResult
	timestamp time.Time
}

// Cache is a TTL cache of grounding results keyed by uppercased ticker.
// Entries are checked lazily on lookup; an expired entry is evicted and
// treated as a miss. Safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache with the given TTL (DefaultCacheTTL if zero).
func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns a copy of the cached result for ticker, or nil on miss/expiry.
func (c *Cache) Get(ticker string) *models.GroundingResult {
	key := strings.ToUpper(ticker)

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil
	}
	if c.now().Sub(entry.timestamp) >= c.ttl {
		delete(c.entries, key)
		return nil
	}
	return entry.data.Clone()
}

// Set stores a copy of the result for ticker.
func (c *Cache) Set(ticker string, data *models.GroundingResult) {
	key := strings.ToUpper(ticker)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{data: data.Clone(), timestamp: c.now()}
}

// Len returns the number of entries, including any not yet evicted.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

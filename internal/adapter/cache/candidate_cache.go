package cache

import (
	"strconv"
	"sync"
	"time"

	"reco/internal/domain"
)

// CandidateCache memoizes ranked candidate pools so that building both a
// diversified and a plain slate in one run aggregates the catalog once.
// Entries expire by TTL and are dropped when the catalog generation changes.
type CandidateCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	gen     uint64
}

type cacheEntry struct {
	candidates []domain.Candidate
	timestamp  time.Time
	gen        uint64
}

func NewCandidateCache(maxSize int, ttl time.Duration) *CandidateCache {
	if maxSize <= 0 {
		maxSize = 16
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &CandidateCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

func cacheKey(poolSize, minRatings int) string {
	return strconv.Itoa(poolSize) + ":" + strconv.Itoa(minRatings)
}

func (c *CandidateCache) Get(poolSize, minRatings int) ([]domain.Candidate, bool) {
	c.mu.RLock()
	key := cacheKey(poolSize, minRatings)
	entry, exists := c.entries[key]
	currentGen := c.gen
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.ttl || entry.gen != currentGen {
		c.mu.Lock()
		delete(c.entries, key)
		c.removeFromOrder(key)
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.moveToEnd(key)
	c.mu.Unlock()

	return entry.candidates, true
}

func (c *CandidateCache) Put(poolSize, minRatings int, candidates []domain.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(poolSize, minRatings)

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{
			candidates: candidates,
			timestamp:  time.Now(),
			gen:        c.gen,
		}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &cacheEntry{
		candidates: candidates,
		timestamp:  time.Now(),
		gen:        c.gen,
	}
	c.order = append(c.order, key)
}

// Invalidate drops all cached pools by bumping the catalog generation.
func (c *CandidateCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
}

func (c *CandidateCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func (c *CandidateCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

package utilities

import (
	"sync"

	"github.com/antonio-alexander/go-books-admin/internal/data"
)

type counter struct {
	hit  int
	miss int
}

type cacheCounter struct {
	sync.RWMutex
	counters map[string]*counter
}

// Counter tracks cache hit/miss totals per collection so the cache's
// effectiveness can be read off the diagnostics endpoint
type Counter interface {
	Read(key string) (hitCount, missCount int)
	ReadAll() *data.CacheCounters
	IncrementHit(key string) (hitCount int)
	IncrementMiss(key string) (missCount int)
	Reset()
}

func NewCounter() Counter {
	return &cacheCounter{
		counters: make(map[string]*counter),
	}
}

func (c *cacheCounter) Read(key string) (int, int) {
	c.RLock()
	defer c.RUnlock()

	if counter, found := c.counters[key]; found {
		return counter.hit, counter.miss
	}
	return -1, -1
}

func (c *cacheCounter) ReadAll() *data.CacheCounters {
	c.RLock()
	defer c.RUnlock()

	counterHits := make(map[string]int)
	counterMisses := make(map[string]int)
	for key, value := range c.counters {
		counterHits[key] = value.hit
		counterMisses[key] = value.miss
	}
	return &data.CacheCounters{
		CounterHits:   counterHits,
		CounterMisses: counterMisses,
	}
}

func (c *cacheCounter) Reset() {
	c.Lock()
	defer c.Unlock()

	c.counters = make(map[string]*counter)
}

func (c *cacheCounter) increment(key string, hit bool) int {
	c.Lock()
	defer c.Unlock()

	cntr, found := c.counters[key]
	if !found {
		cntr = &counter{}
		c.counters[key] = cntr
	}
	if hit {
		cntr.hit++
		return cntr.hit
	}
	cntr.miss++
	return cntr.miss
}

func (c *cacheCounter) IncrementHit(key string) int {
	return c.increment(key, true)
}

func (c *cacheCounter) IncrementMiss(key string) int {
	return c.increment(key, false)
}

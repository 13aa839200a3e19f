package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type cacheEntry struct {
	outcome   *Outcome
	curve     *Curve
	expiresAt time.Time
}

// Cache keeps recent outcomes and inertia curves in memory. A nil *Cache is
// valid and caches nothing.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{store: make(map[string]*cacheEntry), ttl: ttl, now: time.Now}
}

func outcomeKey(name string) string { return "run:" + name }

func curveKey(name string, maxK int) string { return fmt.Sprintf("inertia:%s:%d", name, maxK) }

func (c *Cache) get(key string) (*cacheEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.store[key]
	if !ok || c.now().After(e.expiresAt) {
		return nil, false
	}
	return e, true
}

func (c *Cache) set(key string, e *cacheEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e.expiresAt = c.now().Add(c.ttl)
	c.store[key] = e
}

func (c *Cache) outcome(name string) (*Outcome, bool) {
	e, ok := c.get(outcomeKey(name))
	if !ok {
		return nil, false
	}
	return e.outcome, true
}

func (c *Cache) putOutcome(name string, o *Outcome) { c.set(outcomeKey(name), &cacheEntry{outcome: o}) }

func (c *Cache) curve(name string, maxK int) (*Curve, bool) {
	e, ok := c.get(curveKey(name, maxK))
	if !ok {
		return nil, false
	}
	return e.curve, true
}

func (c *Cache) putCurve(name string, maxK int, cv *Curve) {
	c.set(curveKey(name, maxK), &cacheEntry{curve: cv})
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*cacheEntry)
}

// Prune removes expired entries.
func (c *Cache) Prune() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for key, e := range c.store {
		if now.After(e.expiresAt) {
			delete(c.store, key)
		}
	}
}

// StartCleanup prunes expired entries every interval until ctx is done.
func (c *Cache) StartCleanup(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Prune()
			}
		}
	}()
}

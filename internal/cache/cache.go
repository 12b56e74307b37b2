// Package cache serves fused records from a TTL-bounded store and collapses
// concurrent duplicate requests for one key into a single fusion sequence.
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"tokenintel/internal/token"
)

// DefaultTTL matches the original service's 300-second record lifetime.
const DefaultTTL = 300 * time.Second

// Loader computes a fresh record for a key. It must always return a value;
// unlisted outcomes are records too and are cached like any success. ERROR
// records are returned to callers but never stored.
type Loader func(ctx context.Context, key string) token.Record

type entry struct {
	record    token.Record
	expiresAt time.Time
}

// Cache is a keyed store of fused records with expiry and in-flight request
// deduplication. Keys are the raw identifiers as submitted: two spellings
// that resolve to the same on-chain token occupy two entries and expire
// independently.
type Cache struct {
	ttl  time.Duration
	load Loader
	now  func() time.Time

	mu      sync.RWMutex
	entries map[string]entry

	group singleflight.Group
}

// New creates a Cache over the given loader. A non-positive ttl falls back
// to DefaultTTL.
func New(ttl time.Duration, load Loader) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		ttl:     ttl,
		load:    load,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Get returns the record for key, running the loader at most once however
// many callers arrive concurrently. With bypass set, the cached value is
// ignored for the read but the call still joins any in-flight load and its
// result still overwrites the entry, so a debug request cannot desynchronize
// concurrent normal requests for the same key.
func (c *Cache) Get(ctx context.Context, key string, bypass bool) token.Record {
	if !bypass {
		if rec, ok := c.lookup(key); ok {
			return rec
		}
	}

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// A load may have finished between the miss and the flight start.
		if !bypass {
			if rec, ok := c.lookup(key); ok {
				return rec, nil
			}
		}
		rec := c.load(ctx, key)
		// Unlisted results are cached like successes; ERROR records are
		// not, so a transient fault never wedges a key for a full TTL.
		if rec.Status != token.StatusError {
			c.store(key, rec)
		}
		return rec, nil
	})
	return v.(token.Record)
}

// Len reports the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) lookup(key string) (token.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return token.Record{}, false
	}
	return e.record, true
}

func (c *Cache) store(key string, rec token.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{record: rec, expiresAt: c.now().Add(c.ttl)}
}

// Package cache implements the two-tier read cache: an in-process
// staleness tier in front of a persisted remote tier. A stale in-process
// hit is served immediately and refreshed in the background; a confirmed
// mutation invalidates both tiers before the next read.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"
)

// retention is how long the remote tier keeps an entry at all. Freshness
// is judged per read against the caller's TTL; an entry older than the
// TTL is deleted from the remote tier, not merely skipped.
const retention = 30 * time.Minute

type Loader func(ctx context.Context) ([]byte, error)

type persistedEntry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

type memoryEntry struct {
	data    []byte
	fetched time.Time
}

type TwoTier struct {
	remote RemoteStore

	mu       sync.Mutex
	mem      map[string]memoryEntry
	epoch    map[string]uint64
	inflight map[string]bool

	now func() time.Time
}

func NewTwoTier(remote RemoteStore) *TwoTier {
	return &TwoTier{
		remote:   remote,
		mem:      make(map[string]memoryEntry),
		epoch:    make(map[string]uint64),
		inflight: make(map[string]bool),
		now:      time.Now,
	}
}

// Get is the read-through path. A fresh in-process hit returns
// immediately. A stale in-process hit returns the cached value and
// triggers one deduplicated background refresh. On an in-process miss the
// remote tier is consulted; entries past their TTL are deleted. The
// loader runs only when both tiers come up empty.
func (c *TwoTier) Get(ctx context.Context, key string, ttl time.Duration, loader Loader) ([]byte, error) {
	c.mu.Lock()
	if e, ok := c.mem[key]; ok {
		if c.now().Sub(e.fetched) < ttl {
			c.mu.Unlock()
			return e.data, nil
		}
		c.refreshLocked(key, loader)
		c.mu.Unlock()
		return e.data, nil
	}
	epoch := c.epoch[key]
	c.epoch[key] = epoch // register so Invalidate can supersede this load
	c.mu.Unlock()

	if b, err := c.remote.Get(ctx, key); err != nil {
		log.Printf("cache: remote get %s: %v", key, err)
	} else if b != nil {
		var entry persistedEntry
		if err := json.Unmarshal(b, &entry); err == nil {
			fetched := time.UnixMilli(entry.Timestamp)
			if c.now().Sub(fetched) < ttl {
				// keep the remote timestamp so the entry's total age
				// stays bounded by the TTL across both tiers
				c.store(key, entry.Data, epoch, fetched, false)
				return entry.Data, nil
			}
			if err := c.remote.Del(ctx, key); err != nil {
				log.Printf("cache: remote del %s: %v", key, err)
			}
		}
	}

	data, err := loader(ctx)
	if err != nil {
		return nil, err
	}
	c.store(key, data, epoch, c.now(), true)
	return data, nil
}

// Refresh bypasses both tiers and repopulates them from the loader.
func (c *TwoTier) Refresh(ctx context.Context, key string, loader Loader) error {
	c.mu.Lock()
	epoch := c.epoch[key]
	c.epoch[key] = epoch
	c.mu.Unlock()

	data, err := loader(ctx)
	if err != nil {
		return err
	}
	c.store(key, data, epoch, c.now(), true)
	return nil
}

// Invalidate drops every entry under the prefix from both tiers. Loads
// already in flight for those keys are discarded when they complete, so a
// response that predates the mutation can never repopulate the cache.
func (c *TwoTier) Invalidate(ctx context.Context, prefix string) {
	c.mu.Lock()
	for key := range c.mem {
		if strings.HasPrefix(key, prefix) {
			delete(c.mem, key)
		}
	}
	// the epoch map is a superset of the memory tier: it also covers
	// keys whose first load is still in flight
	for key := range c.epoch {
		if strings.HasPrefix(key, prefix) {
			c.epoch[key]++
		}
	}
	c.mu.Unlock()

	keys, err := c.remote.KeysByPrefix(ctx, prefix)
	if err != nil {
		log.Printf("cache: scan %s: %v", prefix, err)
		return
	}
	if err := c.remote.Del(ctx, keys...); err != nil {
		log.Printf("cache: remote del prefix %s: %v", prefix, err)
	}
}

// refreshLocked starts a background reload for a stale key unless one is
// already running. Callers hold c.mu.
func (c *TwoTier) refreshLocked(key string, loader Loader) {
	if c.inflight[key] {
		return
	}
	c.inflight[key] = true
	epoch := c.epoch[key]

	go func() {
		defer func() {
			c.mu.Lock()
			delete(c.inflight, key)
			c.mu.Unlock()
		}()
		data, err := loader(context.Background())
		if err != nil {
			log.Printf("cache: background refresh %s: %v", key, err)
			return
		}
		c.store(key, data, epoch, c.now(), true)
	}()
}

// store writes both tiers unless the key's epoch moved while the value
// was being produced (last request wins: a superseded load is dropped).
func (c *TwoTier) store(key string, data []byte, epoch uint64, fetched time.Time, writeRemote bool) {
	c.mu.Lock()
	if c.epoch[key] != epoch {
		c.mu.Unlock()
		return
	}
	c.mem[key] = memoryEntry{data: data, fetched: fetched}
	c.mu.Unlock()

	if !writeRemote {
		return
	}
	entry := persistedEntry{Data: data, Timestamp: fetched.UnixMilli()}
	b, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.remote.Set(context.Background(), key, b, retention); err != nil {
		log.Printf("cache: remote set %s: %v", key, err)
		return
	}

	// an Invalidate can interleave between the epoch check above and the
	// Set landing: its remote deletes run first and this write would leave
	// superseded data in the persisted tier. Re-check and withdraw.
	c.mu.Lock()
	superseded := c.epoch[key] != epoch
	c.mu.Unlock()
	if superseded {
		if err := c.remote.Del(context.Background(), key); err != nil {
			log.Printf("cache: remote del %s: %v", key, err)
		}
	}
}

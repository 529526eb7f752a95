package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type MemoryQueryCache struct {
	mu     sync.RWMutex
	ttl    time.Duration
	tables map[string]map[string]memoryEntry
	gens   map[string]int64
	now    func() time.Time
}

func NewMemoryQueryCache(ttl time.Duration) *MemoryQueryCache {
	return &MemoryQueryCache{
		ttl:    ttl,
		tables: make(map[string]map[string]memoryEntry),
		gens:   make(map[string]int64),
		now:    time.Now,
	}
}

func (c *MemoryQueryCache) Get(_ context.Context, table, key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.tables[table][key]
	if !ok || !c.now().Before(entry.expiresAt) {
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryQueryCache) Set(_ context.Context, table, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, ok := c.tables[table]
	if !ok {
		entries = make(map[string]memoryEntry)
		c.tables[table] = entries
	}
	entries[key] = memoryEntry{value: value, expiresAt: c.now().Add(c.ttl)}
}

func (c *MemoryQueryCache) InvalidateTable(_ context.Context, table string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.tables, table)
	c.gens[table]++
}

func (c *MemoryQueryCache) Generation(_ context.Context, table string) (int64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gens[table], true
}

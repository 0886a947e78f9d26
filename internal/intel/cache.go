package intel

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry is one cached provider payload. Entries are read and written by key
// only; expiry is lazy: a stale entry behaves as a miss and is overwritten
// by the next successful fetch.
type Entry struct {
	Key       string
	Payload   Payload
	ExpiresAt time.Time
}

// Store is the backing key/value store for the response cache. Any store
// with TTL semantics satisfies it; the in-process MemoryStore is the
// default and internal/store provides a sqlite-backed one.
type Store interface {
	Get(key string) (Entry, bool, error)
	Set(entry Entry) error
}

// CacheKey derives the stable cache key for a provider/subject pair.
func CacheKey(providerID, normalizedValue string) string {
	sum := sha256.Sum256([]byte(providerID + "\x00" + normalizedValue))
	return hex.EncodeToString(sum[:])
}

// Cache is the TTL-keyed response cache shared across requests. Concurrent
// populates for the same key race benignly: payloads for the same key within
// a TTL window are treated as equivalent, so last write wins. Store errors
// are fail-open: a broken store reads as a miss and drops writes.
type Cache struct {
	store Store
	now   func() time.Time
}

func NewCache(store Store) *Cache {
	return &Cache{store: store, now: time.Now}
}

// Get returns the cached payload for (providerID, normalizedValue), or a
// miss if none exists, the entry expired, or the store errored.
func (c *Cache) Get(providerID, normalizedValue string) (Payload, bool) {
	entry, ok, err := c.store.Get(CacheKey(providerID, normalizedValue))
	if err != nil || !ok {
		return nil, false
	}
	if !c.now().Before(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Payload.Clone(), true
}

// Set stores the payload under (providerID, normalizedValue) for ttl.
// Non-positive TTLs disable caching for the write.
func (c *Cache) Set(providerID, normalizedValue string, payload Payload, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	_ = c.store.Set(Entry{
		Key:       CacheKey(providerID, normalizedValue),
		Payload:   payload.Clone(),
		ExpiresAt: c.now().Add(ttl),
	})
}

// MemoryStore is the default in-process Store. Reads and writes are keyed
// and independent across keys; one RWMutex over the map is enough at this
// request volume.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (m *MemoryStore) Get(key string) (Entry, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[key]
	return entry, ok, nil
}

func (m *MemoryStore) Set(entry Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Key] = entry
	return nil
}

// Purge drops expired entries. The cache works without it (expiry is lazy);
// long-running servers call it periodically to bound memory.
func (m *MemoryStore) Purge(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for key, entry := range m.entries {
		if !now.Before(entry.ExpiresAt) {
			delete(m.entries, key)
			removed++
		}
	}
	return removed
}

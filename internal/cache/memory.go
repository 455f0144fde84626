package cache

import (
	"path"
	"sync"
	"time"
)

type memoryEntry struct {
	value     interface{}
	expiresAt time.Time
}

// MemoryCache is the in-process L1. Expired entries are dropped lazily on
// read and swept whenever the map is scanned for a pattern delete.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	metrics *CacheMetrics
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		metrics: NewCacheMetrics(),
	}
}

func (m *MemoryCache) Set(key string, value interface{}, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	m.metrics.RecordSet()
}

func (m *MemoryCache) Get(key string) (interface{}, bool) {
	m.mu.RLock()
	entry, found := m.entries[key]
	m.mu.RUnlock()

	if !found {
		m.metrics.RecordMiss()
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		m.metrics.RecordMiss()
		return nil, false
	}

	m.metrics.RecordHit()
	return entry.value, true
}

func (m *MemoryCache) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	m.metrics.RecordDelete()
}

// DeletePattern removes every key matching a glob pattern, e.g.
// "tasks_page:*". Expired entries encountered on the way are swept too.
func (m *MemoryCache) DeletePattern(pattern string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for key, entry := range m.entries {
		if now.After(entry.expiresAt) {
			delete(m.entries, key)
			continue
		}
		if matched, err := path.Match(pattern, key); err == nil && matched {
			delete(m.entries, key)
			m.metrics.RecordDelete()
		}
	}
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCache) Stats() map[string]interface{} {
	stats := m.metrics.Snapshot()
	stats["entries"] = m.Len()
	return stats
}

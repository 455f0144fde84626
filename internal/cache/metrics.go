package cache

import (
	"sync"
)

type CacheMetrics struct {
	mu      sync.RWMutex
	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

func NewCacheMetrics() *CacheMetrics {
	return &CacheMetrics{}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *CacheMetrics) RecordSet() {
	m.mu.Lock()
	m.sets++
	m.mu.Unlock()
}

func (m *CacheMetrics) RecordDelete() {
	m.mu.Lock()
	m.deletes++
	m.mu.Unlock()
}

func (m *CacheMetrics) HitRate() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hits + m.misses
	if total == 0 {
		return 0
	}
	return float64(m.hits) / float64(total)
}

func (m *CacheMetrics) Snapshot() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := m.hits + m.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(m.hits) / float64(total)
	}

	return map[string]interface{}{
		"hits":     m.hits,
		"misses":   m.misses,
		"sets":     m.sets,
		"deletes":  m.deletes,
		"hit_rate": hitRate,
	}
}

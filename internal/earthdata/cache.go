package earthdata

import (
	"fmt"
	"sync"
	"time"
)

// Cache - потокобезопасный in-memory кэш с фиксированным TTL.
// Владелец кэша (вызывающая сторона) задаёт TTL при создании,
// провайдер только читает и пишет по ключам.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	now     func() time.Time
}

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// NewCache создаёт кэш с заданным временем жизни записей.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get возвращает живую запись по ключу. Просроченная запись удаляется.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set сохраняет значение с текущим TTL кэша.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// cacheKey строит ключ по префиксу и координатам, округлённым
// до двух знаков: близкие точки делят одну запись.
func cacheKey(prefix string, lat, lon float64) string {
	return fmt.Sprintf("%s_%.2f_%.2f", prefix, lat, lon)
}

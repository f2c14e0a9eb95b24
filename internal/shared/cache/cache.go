package cache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache is an LRU cache whose entries expire after a fixed TTL.
// 인기 피드 목록처럼 약간 오래된 값이 허용되는 조회에 사용한다.
type TTLCache[K comparable, V any] struct {
	lru *lru.Cache[K, entry[V]]
	ttl time.Duration
}

// NewTTLCache creates a TTL cache holding at most size entries.
func NewTTLCache[K comparable, V any](size int, ttl time.Duration) (*TTLCache[K, V], error) {
	c, err := lru.New[K, entry[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[K, V]{lru: c, ttl: ttl}, nil
}

// Get returns the cached value when present and not expired.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	e, ok := c.lru.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(e.expiresAt) {
		c.lru.Remove(key)
		return zero, false
	}
	return e.value, true
}

// Set stores a value with the cache-wide TTL.
func (c *TTLCache[K, V]) Set(key K, value V) {
	c.lru.Add(key, entry[V]{
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
}

// Remove evicts a key. 쓰기 경로에서 무효화할 때 사용.
func (c *TTLCache[K, V]) Remove(key K) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *TTLCache[K, V]) Purge() {
	c.lru.Purge()
}

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// EmbeddingCache memoizes query embeddings for the lifetime of one pipeline
// run, so repeated questions over the same index skip the embedding call.
// LRU with a bounded size.
type EmbeddingCache struct {
	mu      sync.Mutex
	entries map[string][]float32
	order   []string
	maxSize int
}

func NewEmbeddingCache(maxSize int) *EmbeddingCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &EmbeddingCache{
		entries: make(map[string][]float32),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

func cacheKey(text string) string {
	hash := sha256.Sum256([]byte(text))
	return hex.EncodeToString(hash[:16])
}

func (c *EmbeddingCache) Get(text string) ([]float32, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)
	vec, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	c.moveToEnd(key)
	return vec, true
}

func (c *EmbeddingCache) Put(text string, vec []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(text)
	if _, exists := c.entries[key]; exists {
		c.entries[key] = vec
		c.moveToEnd(key)
		return
	}

	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = vec
	c.order = append(c.order, key)
}

func (c *EmbeddingCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *EmbeddingCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}

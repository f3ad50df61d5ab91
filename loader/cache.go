package loader

import (
	"container/list"
	"sync"
)

// Cache holds loaded resources keyed by source path. With a positive
// capacity it evicts the least recently used entry once full.
type Cache struct {
	mu  sync.Mutex
	cap int
	ll  *list.List
	m   map[string]*list.Element
}

type cacheEntry struct {
	key string
	val any
}

// NewCache creates a cache. capacity <= 0 means unbounded.
func NewCache(capacity int) *Cache {
	return &Cache{cap: capacity, ll: list.New(), m: make(map[string]*list.Element)}
}

// Get returns the resource stored for src.
func (c *Cache) Get(src string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.m[src]; ok {
		c.ll.MoveToFront(ele)
		return ele.Value.(cacheEntry).val, true
	}
	return nil, false
}

// Add stores val for src, replacing any previous value.
func (c *Cache) Add(src string, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ele, ok := c.m[src]; ok {
		ele.Value = cacheEntry{key: src, val: val}
		c.ll.MoveToFront(ele)
		return
	}
	c.m[src] = c.ll.PushFront(cacheEntry{key: src, val: val})
	if c.cap > 0 && c.ll.Len() > c.cap {
		if tail := c.ll.Back(); tail != nil {
			c.ll.Remove(tail)
			delete(c.m, tail.Value.(cacheEntry).key)
		}
	}
}

// Remove drops src. Returns false if it was not cached.
func (c *Cache) Remove(src string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	ele, ok := c.m[src]
	if !ok {
		return false
	}
	c.ll.Remove(ele)
	delete(c.m, src)
	return true
}

// Len returns the number of cached resources.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

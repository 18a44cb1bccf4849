package query

import (
	"container/list"
	"sync"
)

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

type lruEntry struct {
	key   string
	value any
}

// LRUCache is a thread-safe ProgramCache that evicts the least recently used
// program once capacity is reached.
type LRUCache struct {
	capacity int
	items    map[string]*list.Element
	eviction *list.List
	mu       sync.Mutex
}

// NewLRUCache creates a cache holding at most capacity programs. A capacity
// below one is raised to one.
func NewLRUCache(capacity int) *LRUCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRUCache{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		eviction: list.New(),
	}
}

// Get retrieves a program and marks it as recently used.
func (c *LRUCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		return elem.Value.(*lruEntry).value, true
	}
	return nil, false
}

// Set adds or replaces a program, evicting the oldest one when full.
func (c *LRUCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.eviction.MoveToFront(elem)
		elem.Value.(*lruEntry).value = value
		return
	}

	c.items[key] = c.eviction.PushFront(&lruEntry{key: key, value: value})
	if c.eviction.Len() > c.capacity {
		c.evictOldest()
	}
}

// Len returns the number of cached programs.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.eviction.Len()
}

// Must be called with lock held.
func (c *LRUCache) evictOldest() {
	elem := c.eviction.Back()
	if elem == nil {
		return
	}
	c.eviction.Remove(elem)
	delete(c.items, elem.Value.(*lruEntry).key)
}

// cacheKey keeps programs of different engines apart in a shared cache.
func cacheKey(engine, expression string) string {
	return engine + "\x00" + expression
}

package session

import (
	"container/list"
	"sync"
)

// LRUCache is a thread-safe LRU cache of sessions keyed by id.
type LRUCache struct {
	mu       sync.RWMutex
	capacity int
	cache    map[string]*list.Element
	order    *list.List
}

// NewLRUCache creates a new LRU cache with the given capacity.
func NewLRUCache(capacity int) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		cache:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get retrieves a session and marks it most recently used. Returns nil if not found.
func (c *LRUCache) Get(id string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[id]
	if !exists {
		return nil
	}

	c.order.MoveToFront(elem)
	return elem.Value.(*Session)
}

// Put adds a session. When the cache is full the least recently used session
// is removed and returned so the caller can dispose it outside the lock.
func (c *LRUCache) Put(s *Session) (evicted *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, exists := c.cache[s.ID]; exists {
		c.order.MoveToFront(elem)
		elem.Value = s
		return nil
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			evicted = oldest.Value.(*Session)
			delete(c.cache, evicted.ID)
			c.order.Remove(oldest)
		}
	}

	c.cache[s.ID] = c.order.PushFront(s)
	return evicted
}

// Invalidate removes and returns a session, or nil if it was not cached.
func (c *LRUCache) Invalidate(id string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.cache[id]
	if !exists {
		return nil
	}

	delete(c.cache, id)
	c.order.Remove(elem)
	return elem.Value.(*Session)
}

// Clear removes and returns every session.
func (c *LRUCache) Clear() []*Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*Session, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(*Session))
	}

	c.cache = make(map[string]*list.Element)
	c.order = list.New()
	return out
}

// Len returns the number of cached sessions.
func (c *LRUCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

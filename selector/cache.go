package selector

import (
	"container/list"
	"sync"

	"scraper-go/internal/metrics"
)

// DefaultCacheSize bounds a Cache built with capacity <= 0.
const DefaultCacheSize = 256

// Cache is a bounded LRU of compiled selectors keyed by their literal
// string. It is an explicit object rather than package state so callers
// control its lifecycle, and it is safe for concurrent use.
type Cache struct {
	mu    sync.Mutex
	cap   int
	order *list.List // front = most recently used
	items map[string]*list.Element
}

type cacheEntry struct {
	key string
	sel *Selector
}

// NewCache returns an empty cache holding at most capacity selectors.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{
		cap:   capacity,
		order: list.New(),
		items: make(map[string]*list.Element),
	}
}

// Get returns the compiled form of src, compiling and storing it on a miss.
// A syntax error is returned as-is and nothing is cached for the faulty
// string.
func (c *Cache) Get(src string) (*Selector, error) {
	c.mu.Lock()
	if el, ok := c.items[src]; ok {
		c.order.MoveToFront(el)
		c.mu.Unlock()
		metrics.SelectorCacheHits.Inc()
		return el.Value.(*cacheEntry).sel, nil
	}
	c.mu.Unlock()

	metrics.SelectorCacheMisses.Inc()
	sel, err := Compile(src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[src]; ok {
		// lost a compile race; keep the stored one
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).sel, nil
	}
	c.items[src] = c.order.PushFront(&cacheEntry{key: src, sel: sel})
	for c.order.Len() > c.cap {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*cacheEntry).key)
	}
	return sel, nil
}

// Len reports the number of cached selectors.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear evicts everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

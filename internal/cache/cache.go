// Package cache provides a small LRU used to memoize search results.
package cache

import "container/list"

// LRU is a fixed-capacity least-recently-used cache. It is not safe for
// concurrent use; owners guard it with their own lock.
type LRU[K comparable, V any] struct {
	capacity  int
	evictList *list.List
	items     map[K]*list.Element
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRU returns an empty cache holding at most capacity entries. A
// non-positive capacity is treated as 1.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity:  capacity,
		evictList: list.New(),
		items:     make(map[K]*list.Element),
	}
}

// Get returns the cached value for key, marking it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		return ele.Value.(*entry[K, V]).value, true
	}
	var zero V
	return zero, false
}

// Put stores value under key, evicting the oldest entry when full.
func (c *LRU[K, V]) Put(key K, value V) {
	if ele, hit := c.items[key]; hit {
		c.evictList.MoveToFront(ele)
		ele.Value.(*entry[K, V]).value = value
		return
	}

	ele := c.evictList.PushFront(&entry[K, V]{key: key, value: value})
	c.items[key] = ele

	if c.evictList.Len() > c.capacity {
		c.removeOldest()
	}
}

// Remove drops key from the cache if present.
func (c *LRU[K, V]) Remove(key K) {
	if ele, hit := c.items[key]; hit {
		c.removeElement(ele)
	}
}

// Len reports the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.evictList.Len()
}

// Purge discards every cached entry.
func (c *LRU[K, V]) Purge() {
	c.evictList.Init()
	c.items = make(map[K]*list.Element)
}

func (c *LRU[K, V]) removeOldest() {
	if ele := c.evictList.Back(); ele != nil {
		c.removeElement(ele)
	}
}

func (c *LRU[K, V]) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry[K, V]).key)
}

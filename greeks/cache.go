package greeks

import (
	"container/list"

	"github.com/meenmo/optlib/option"
)

// priceCache memoizes prices keyed by the full parameter set. Params is a
// comparable value type, so the key is canonical by construction. Capacity
// is bounded with least-recently-used eviction so a long-lived
// differentiator cannot grow without limit.
//
// priceCache is not safe for concurrent use on its own; the owning
// Differentiator serializes access.
type priceCache struct {
	capacity int
	order    *list.List // front = most recently used
	entries  map[option.Params]*list.Element
}

type cacheEntry struct {
	key   option.Params
	price float64
}

func newPriceCache(capacity int) *priceCache {
	return &priceCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[option.Params]*list.Element, capacity),
	}
}

func (c *priceCache) get(key option.Params) (float64, bool) {
	el, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).price, true
}

func (c *priceCache) put(key option.Params, price float64) {
	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).price = price
		c.order.MoveToFront(el)
		return
	}
	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, price: price})
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *priceCache) len() int {
	return c.order.Len()
}

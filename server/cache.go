package server

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/dhamidi/hermes/jpql/parser"
)

const defaultCacheSize = 256

type cacheEntry struct {
	key  string
	root *parser.JPQLExpression
}

// treeCache is an LRU cache of parsed queries. Trees are never modified
// after parsing, so a cached tree can be shared between requests.
type treeCache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

func newTreeCache(capacity int) *treeCache {
	if capacity <= 0 {
		capacity = defaultCacheSize
	}
	return &treeCache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

func cacheKey(query string, version parser.Version, tolerant bool) string {
	return fmt.Sprintf("%s\x00%t\x00%s", version, tolerant, query)
}

func (c *treeCache) get(key string) (*parser.JPQLExpression, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.ll.MoveToFront(el)
	return el.Value.(*cacheEntry).root, true
}

func (c *treeCache) put(key string, root *parser.JPQLExpression) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).root = root
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		if back := c.ll.Back(); back != nil {
			c.ll.Remove(back)
			delete(c.items, back.Value.(*cacheEntry).key)
		}
	}
	c.items[key] = c.ll.PushFront(&cacheEntry{key: key, root: root})
}

func (c *treeCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

package cache

import (
	"container/list"
	"sync"

	"github.com/kiwiland/railquery/internal/model"
)

// defaultCapacity is the default number of query results the cache
// will hold. Use NewQueryCacheWithCap for a custom size.
const defaultCapacity = 1024

// QueryKey identifies one query result. Epoch is the graph generation
// the result was computed against; bumping the epoch on a graph swap
// implicitly invalidates every older entry.
type QueryKey struct {
	Kind  string
	Args  string
	Epoch uint64
}

type queryEntry struct {
	key QueryKey
	val model.QueryResponse
}

// QueryCache is a bounded LRU cache for query results.
// It's safe for concurrent use.
type QueryCache struct {
	mu       sync.Mutex
	epoch    uint64
	m        map[QueryKey]*list.Element
	ll       *list.List
	capacity int
	// stats
	puts      int
	gets      int
	hits      int
	evictions int
}

// NewQueryCache returns an LRU query cache with the default capacity.
func NewQueryCache() *QueryCache {
	return NewQueryCacheWithCap(defaultCapacity)
}

// NewQueryCacheWithCap returns an LRU query cache with the provided
// capacity. capacity must be > 0.
func NewQueryCacheWithCap(capacity int) *QueryCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &QueryCache{
		m:        make(map[QueryKey]*list.Element, capacity),
		ll:       list.New(),
		capacity: capacity,
	}
}

// Epoch returns the current graph generation.
func (c *QueryCache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// BumpEpoch advances the graph generation, orphaning all cached
// results. Orphans age out of the LRU on their own.
func (c *QueryCache) BumpEpoch() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
}

// Get returns the cached result for key, and true if it was found.
// It updates LRU position on hit.
func (c *QueryCache) Get(k QueryKey) (model.QueryResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if el, ok := c.m[k]; ok {
		c.hits++
		c.ll.MoveToFront(el)
		return el.Value.(queryEntry).val, true
	}
	return model.QueryResponse{}, false
}

// Put inserts a result. If insertion pushes the cache over capacity,
// the least-recently-used entry is evicted.
func (c *QueryCache) Put(k QueryKey, v model.QueryResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.m[k]; ok {
		el.Value = queryEntry{key: k, val: v}
		c.ll.MoveToFront(el)
		c.puts++
		return
	}

	el := c.ll.PushFront(queryEntry{key: k, val: v})
	c.m[k] = el
	c.puts++

	if c.ll.Len() > c.capacity {
		tail := c.ll.Back()
		if tail != nil {
			qe := tail.Value.(queryEntry)
			delete(c.m, qe.key)
			c.ll.Remove(tail)
			c.evictions++
		}
	}
}

// Clear fully resets the cache and stats. The epoch is kept so that
// entries written before the clear can never resurface.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m = make(map[QueryKey]*list.Element, c.capacity)
	c.ll.Init()
	c.puts = 0
	c.gets = 0
	c.hits = 0
	c.evictions = 0
}

// Stats returns (gets, hits, puts, evictions), snapshot under lock.
func (c *QueryCache) Stats() (gets, hits, puts, evictions int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gets, c.hits, c.puts, c.evictions
}

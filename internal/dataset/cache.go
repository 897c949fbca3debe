package dataset

import "sync"

// Cache memoizes loaded tables by source identity. Sources are treated as
// static for the life of the process, so entries are never invalidated.
// Failed loads are not cached.
type Cache struct {
	opt Options

	mu      sync.Mutex
	entries map[string]*cacheEntry
	loads   int
}

type cacheEntry struct {
	once  sync.Once
	table *Table
	err   error
}

// NewCache returns an empty cache that loads with opt.
func NewCache(opt Options) *Cache {
	return &Cache{opt: opt, entries: make(map[string]*cacheEntry)}
}

// Get returns the table for path, loading it on first use.
func (c *Cache) Get(path string) (*Table, error) {
	id, err := SourceID(path)
	if err != nil {
		return nil, err
	}
	c.mu.Lock()
	e, ok := c.entries[id]
	if !ok {
		e = &cacheEntry{}
		c.entries[id] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.table, e.err = LoadFile(id, c.opt)
		c.mu.Lock()
		c.loads++
		if e.err != nil {
			delete(c.entries, id)
		}
		c.mu.Unlock()
	})
	return e.table, e.err
}

// Loads reports how many times a source was actually read.
func (c *Cache) Loads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loads
}

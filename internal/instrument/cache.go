package instrument

// Cache maps a type signature to the declaration generated for it. Keys
// keep their insertion order so every walk over the cache is
// deterministic.
type Cache struct {
	keys    []string
	entries map[string]any
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

func (c *Cache) Lookup(key string) (any, bool) {
	entry, ok := c.entries[key]
	return entry, ok
}

// Store records entry under key. A key is stored at most once; storing it
// again keeps the original entry and reports false.
func (c *Cache) Store(key string, entry any) bool {
	if _, exists := c.entries[key]; exists {
		return false
	}
	c.keys = append(c.keys, key)
	c.entries[key] = entry
	return true
}

// Keys returns the stored keys in insertion order
func (c *Cache) Keys() []string {
	return c.keys
}

func (c *Cache) Len() int {
	return len(c.keys)
}

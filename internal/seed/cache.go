package seed

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the number of distinct keys remembered by NewCache.
const DefaultCacheSize = 1024

// Cache memoizes seeds by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (int, bool)
	Add(key string, seed int)
	Purge()
}

// lruCache is a bounded, concurrency-safe Cache.
type lruCache struct {
	cache *lru.Cache[string, int]
}

// NewCache creates an LRU backed Cache holding up to size keys.
func NewCache(size int) (Cache, error) {
	cache, err := lru.New[string, int](size)
	if err != nil {
		return nil, fmt.Errorf("creating seed cache: %w", err)
	}

	return &lruCache{cache: cache}, nil
}

func (c *lruCache) Get(key string) (int, bool) {
	return c.cache.Get(key)
}

func (c *lruCache) Add(key string, seed int) {
	c.cache.Add(key, seed)
}

func (c *lruCache) Purge() {
	c.cache.Purge()
}

// noCache never remembers anything.
type noCache struct{}

func (noCache) Get(string) (int, bool) { return 0, false }
func (noCache) Add(string, int)        {}
func (noCache) Purge()                 {}

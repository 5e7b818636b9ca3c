package seed

import (
	"time"
)

// Deriver derives seeds and remembers them per key.
// The zero value is not usable; create one with NewDeriver.
type Deriver struct {
	cache Cache
	now   func() time.Time
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithCache replaces the default LRU cache.
func WithCache(cache Cache) Option {
	return func(d *Deriver) {
		d.cache = cache
	}
}

// WithoutCache disables memoization.
func WithoutCache() Option {
	return WithCache(noCache{})
}

// WithClock sets the clock consulted for empty keys.
func WithClock(now func() time.Time) Option {
	return func(d *Deriver) {
		d.now = now
	}
}

// NewDeriver creates a Deriver with an LRU cache of DefaultCacheSize keys.
func NewDeriver(opts ...Option) *Deriver {
	deriver := &Deriver{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(deriver)
	}

	if deriver.cache == nil {
		cache, err := NewCache(DefaultCacheSize)
		if err != nil {
			// Only reachable with a non-positive size.
			panic(err)
		}

		deriver.cache = cache
	}

	return deriver
}

// Seed returns the seed for key, consulting the cache first.
// Empty keys bypass the cache since their seed depends on the clock.
func (d *Deriver) Seed(key string) int {
	if key == "" {
		return Derive(key, d.now)
	}

	if seed, ok := d.cache.Get(key); ok {
		return seed
	}

	seed := Derive(key, d.now)

	d.cache.Add(key, seed)

	return seed
}

// Purge drops every remembered seed.
func (d *Deriver) Purge() {
	d.cache.Purge()
}

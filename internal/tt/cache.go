package tt

import (
	"errors"
	"log/slog"
)

// DefaultBuckets is the default bucket count.
const DefaultBuckets = 1 << 16

// nilIndex terminates a chain.
const nilIndex int32 = -1

// ErrAllocFailed is returned by Insert when the arena cannot grow.
var ErrAllocFailed = errors.New("tt: entry allocation failed")

// Entry is one cached evaluation.
type Entry struct {
	Key   uint64
	Score int
	Move  int
}

type node struct {
	Entry
	next int32
}

// Cache is a chained hash table keyed by position hash.
type Cache struct {
	buckets    []int32
	arena      []node
	maxEntries int

	lookups       int64
	hits          int64
	dropped       int64
	invalidations int64
}

// Option configures a Cache.
type Option func(*Cache)

// WithBuckets sets the bucket count. Values below 1 are ignored.
func WithBuckets(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.buckets = make([]int32, n)
		}
	}
}

// WithMaxEntries caps the arena. Inserts beyond the cap fail with
// ErrAllocFailed, standing in for allocator exhaustion. 0 means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		if n >= 0 {
			c.maxEntries = n
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{}
	for _, opt := range opts {
		opt(c)
	}
	if c.buckets == nil {
		c.buckets = make([]int32, DefaultBuckets)
	}
	for i := range c.buckets {
		c.buckets[i] = nilIndex
	}
	return c
}

func (c *Cache) bucket(key uint64) int {
	return int(key % uint64(len(c.buckets)))
}

// Lookup returns the newest entry whose key equals key.
// The boolean is false when no such entry exists.
func (c *Cache) Lookup(key uint64) (Entry, bool) {
	c.lookups++
	for i := c.buckets[c.bucket(key)]; i != nilIndex; i = c.arena[i].next {
		if c.arena[i].Key == key {
			c.hits++
			return c.arena[i].Entry, true
		}
	}
	return Entry{}, false
}

// Insert links a new entry at the head of the key's bucket chain.
// Existing entries with the same key are shadowed, not replaced.
func (c *Cache) Insert(key uint64, score, move int) error {
	if c.maxEntries > 0 && len(c.arena) >= c.maxEntries {
		c.dropped++
		slog.Warn("transposition cache entry allocation failed",
			"key", key,
			"entries", len(c.arena),
			"max_entries", c.maxEntries,
		)
		return ErrAllocFailed
	}

	b := c.bucket(key)
	c.arena = append(c.arena, node{
		Entry: Entry{Key: key, Score: score, Move: move},
		next:  c.buckets[b],
	})
	c.buckets[b] = int32(len(c.arena) - 1)
	return nil
}

// Invalidate drops every entry and empties every bucket.
func (c *Cache) Invalidate() {
	// Reuse the arena's backing array; stale nodes are overwritten on insert.
	c.arena = c.arena[:0]
	for i := range c.buckets {
		c.buckets[i] = nilIndex
	}
	c.invalidations++
}

// Len returns the number of allocated entries, shadowed duplicates included.
func (c *Cache) Len() int {
	return len(c.arena)
}

// Buckets returns the bucket count.
func (c *Cache) Buckets() int {
	return len(c.buckets)
}

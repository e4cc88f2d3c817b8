package ops

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/coregx/reinfer/internal/bitset"
)

// concatKey identifies a memoized Concat(left, right) call.
type concatKey struct {
	left, right bitset.CS
}

// ConcatCache memoizes Concat results behind a bounded LRU keyed on the
// (left, right) operand pair. The bottom-up cost-level sweep recomputes
// Concat(left, right) for overlapping pairs across adjacent cost windows —
// a hot-key, repeated-lookup, bounded-memory access pattern — so a
// fixed-capacity LRU avoids re-walking the guide table for pairs seen
// before. RevertConcat does not use this cache; its pruning calls
// concatForTest directly.
type ConcatCache struct {
	lru     *lru.Cache[concatKey, bitset.CS]
	forward func(x, y bitset.CS) bitset.CS
}

// NewConcatCache creates a ConcatCache of the given capacity that delegates
// uncached computations to forward. Capacity must be positive; the caller
// typically sizes it from Config.ConcatCacheSize.
func NewConcatCache(capacity int, forward func(x, y bitset.CS) bitset.CS) (*ConcatCache, error) {
	c, err := lru.New[concatKey, bitset.CS](capacity)
	if err != nil {
		return nil, err
	}
	return &ConcatCache{lru: c, forward: forward}, nil
}

// Concat returns Concat(x, y), computing and memoizing it on a cache miss.
func (c *ConcatCache) Concat(x, y bitset.CS) bitset.CS {
	key := concatKey{left: x, right: y}
	if v, ok := c.lru.Get(key); ok {
		return v
	}
	v := c.forward(x, y)
	c.lru.Add(key, v)
	return v
}

// Len returns the number of memoized entries.
func (c *ConcatCache) Len() int {
	return c.lru.Len()
}

// Purge discards all memoized entries.
func (c *ConcatCache) Purge() {
	c.lru.Purge()
}

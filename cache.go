package goshape

import (
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes operator results by structural fingerprint of the input
// schema plus the operator parameters. It is safe for concurrent use and
// returns exactly what the uncached operator returns. Errors are never
// cached.
type Cache struct {
	m      sync.Map // string -> Schema
	group  singleflight.Group
	n      atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64
}

// NewCache returns an empty cache.
func NewCache() *Cache { return &Cache{} }

// Len returns the number of memoized results.
func (c *Cache) Len() int { return int(c.n.Load()) }

// Stats returns the hit and miss counters.
func (c *Cache) Stats() (hits, misses int64) { return c.hits.Load(), c.misses.Load() }

// MakePartial is the memoized MakePartial.
func (c *Cache) MakePartial(s Schema) Schema {
	out, _ := c.do("partial", s, nil, func() (Schema, error) { return MakePartial(s), nil })
	return out
}

func (c *Cache) MakeRequired(s Schema) Schema {
	out, _ := c.do("required", s, nil, func() (Schema, error) { return MakeRequired(s), nil })
	return out
}

func (c *Cache) Pick(s Schema, keys ...Key) (Schema, error) {
	return c.do("pick", s, keys, func() (Schema, error) { return Pick(s, keys...) })
}

func (c *Cache) Omit(s Schema, keys ...Key) (Schema, error) {
	return c.do("omit", s, keys, func() (Schema, error) { return Omit(s, keys...) })
}

func (c *Cache) do(op string, s Schema, keys []Key, fn func() (Schema, error)) (Schema, error) {
	key, ok := cacheKey(op, s, keys)
	if !ok {
		return fn()
	}
	if v, hit := c.m.Load(key); hit {
		c.hits.Add(1)
		return v.(Schema), nil
	}
	c.misses.Add(1)
	// concurrent misses on one key compute once
	v, err, _ := c.group.Do(key, func() (any, error) {
		out, err := fn()
		if err != nil {
			return out, err
		}
		if _, loaded := c.m.LoadOrStore(key, out); !loaded {
			c.n.Add(1)
		}
		return out, nil
	})
	return v.(Schema), err
}

func cacheKey(op string, s Schema, keys []Key) (string, bool) {
	fp, err := Fingerprint(s)
	if err != nil {
		return "", false
	}
	b := &strings.Builder{}
	b.WriteString(op)
	b.WriteByte(0)
	b.WriteString(fp)
	if len(keys) > 0 {
		sorted := append([]Key(nil), keys...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].less(sorted[j]) })
		for _, k := range sorted {
			b.WriteByte(0)
			b.WriteString(k.Kind().String())
			b.WriteByte(':')
			b.WriteString(strconv.Quote(k.Text()))
			if id := k.symbolID(); id != 0 {
				b.WriteByte('#')
				b.WriteString(strconv.FormatUint(id, 10))
			}
		}
	}
	return b.String(), true
}

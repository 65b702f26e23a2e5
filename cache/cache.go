// Copyright (c) 2014 AKUALAB INC., All rights reserved.
//
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cache

// Probability cache keyed by symbol sequence.
// This is a front end for the ristretto cache.
//  https://github.com/dgraph-io/ristretto
//
// Every entry has unit cost, so capacity is a number of sequences.
// Writes are buffered. Call Wait() to make them visible to Get().

import (
	"strconv"
	"strings"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache maps symbol sequences to probabilities.
// Safe for concurrent use.
type Cache struct {
	c        *ristretto.Cache[string, float64]
	capacity int64
}

// NewCache returns a cache that holds up to capacity sequences.
func NewCache(capacity int64) (*Cache, error) {

	if capacity < 1 {
		capacity = 1
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, float64]{
		NumCounters: 10 * capacity,
		MaxCost:     capacity,
		BufferItems: 64,
		Metrics:     true,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Cache{c: c, capacity: capacity}, nil
}

// Key returns the cache key for a symbol sequence. Each symbol is
// prefixed with its length, so distinct sequences never share a key.
func Key(symbols []string) string {
	var b strings.Builder
	for _, s := range symbols {
		b.WriteString(strconv.Itoa(len(s)))
		b.WriteByte(':')
		b.WriteString(s)
	}
	return b.String()
}

// Stats returns hit and miss counts and the capacity.
func (c *Cache) Stats() (hits, misses uint64, capacity int64) {

	m := c.c.Metrics
	return m.Hits(), m.Misses(), c.capacity
}

// Set stores v. Returns false if the write was dropped.
func (c *Cache) Set(symbols []string, v float64) bool {
	return c.c.Set(Key(symbols), v, 1)
}

// Get returns the value stored for symbols, if any.
func (c *Cache) Get(symbols []string) (v float64, ok bool) {
	return c.c.Get(Key(symbols))
}

// Delete removes the entry for symbols.
func (c *Cache) Delete(symbols []string) {
	c.c.Del(Key(symbols))
}

// Wait blocks until buffered writes are applied.
func (c *Cache) Wait() {
	c.c.Wait()
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.c.Clear()
}

// Close stops the cache goroutines. The cache must not be used afterwards.
func (c *Cache) Close() {
	c.c.Close()
}

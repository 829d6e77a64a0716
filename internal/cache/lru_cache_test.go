package cache

import (
	"fmt"
	"testing"
)

func TestLRUCacheInsertLookup(t *testing.T) {
	c := NewLRUCache(1024)
	key := CacheKey{TableID: 1, BlockOffset: 0}

	h := c.Insert(key, []byte("value"), 5)
	if h == nil {
		t.Fatal("Insert() = nil")
	}
	c.Release(h)

	got := c.Lookup(key)
	if got == nil {
		t.Fatal("Lookup() = nil for an inserted key")
	}
	if string(got.Value()) != "value" {
		t.Errorf("Value() = %q, want %q", got.Value(), "value")
	}
	if got.Charge() != 5 {
		t.Errorf("Charge() = %d, want 5", got.Charge())
	}
	c.Release(got)
}

func TestLRUCacheLookupMiss(t *testing.T) {
	c := NewLRUCache(1024)
	if got := c.Lookup(CacheKey{TableID: 1, BlockOffset: 0}); got != nil {
		t.Error("Lookup() on an empty cache returned a non-nil handle")
	}
}

func TestLRUCacheEviction(t *testing.T) {
	// Capacity for exactly 2 entries of charge 10 each.
	c := NewLRUCache(20)

	k1 := CacheKey{TableID: 1, BlockOffset: 0}
	k2 := CacheKey{TableID: 1, BlockOffset: 1}
	k3 := CacheKey{TableID: 1, BlockOffset: 2}

	c.Release(c.Insert(k1, []byte("v1"), 10))
	c.Release(c.Insert(k2, []byte("v2"), 10))

	// k1 is now least-recently-used; inserting k3 must evict it.
	c.Release(c.Insert(k3, []byte("v3"), 10))

	if c.Lookup(k1) != nil {
		t.Error("k1 survived eviction, want it evicted")
	}
	if got := c.Lookup(k2); got == nil {
		t.Error("k2 was evicted, want it to survive")
	} else {
		c.Release(got)
	}
	if got := c.Lookup(k3); got == nil {
		t.Error("k3 missing after insert")
	} else {
		c.Release(got)
	}
}

func TestLRUCachePinnedEntryNotEvicted(t *testing.T) {
	c := NewLRUCache(10)
	k1 := CacheKey{TableID: 1, BlockOffset: 0}
	k2 := CacheKey{TableID: 1, BlockOffset: 1}

	h1 := c.Insert(k1, []byte("v1"), 10)
	// h1 is still held (not released) when k2 is inserted over capacity.
	c.Release(c.Insert(k2, []byte("v2"), 10))

	if c.Lookup(k1) == nil {
		t.Error("pinned entry k1 was evicted")
	}
	c.Release(h1)
}

func TestLRUCacheInsertUpdatesExistingKey(t *testing.T) {
	c := NewLRUCache(1024)
	key := CacheKey{TableID: 1, BlockOffset: 0}

	c.Release(c.Insert(key, []byte("v1"), 1))
	c.Release(c.Insert(key, []byte("v2"), 2))

	got := c.Lookup(key)
	if got == nil {
		t.Fatal("Lookup() = nil after re-Insert")
	}
	if string(got.Value()) != "v2" {
		t.Errorf("Value() = %q, want %q", got.Value(), "v2")
	}
	c.Release(got)
}

func TestLRUCacheInsertUpdateEvictsOnLargerCharge(t *testing.T) {
	c := NewLRUCache(20)
	k1 := CacheKey{TableID: 1, BlockOffset: 0}
	k2 := CacheKey{TableID: 1, BlockOffset: 1}

	c.Release(c.Insert(k1, []byte("v1"), 5))
	c.Release(c.Insert(k2, []byte("v2"), 5))

	// Re-inserting k1 with a much larger charge must evict k2 to stay
	// within capacity rather than letting usage exceed it permanently.
	c.Release(c.Insert(k1, []byte("v1-big"), 18))

	if c.usage > c.capacity {
		t.Errorf("usage = %d, want <= capacity %d", c.usage, c.capacity)
	}
	if got := c.Lookup(k2); got != nil {
		c.Release(got)
		t.Error("k2 survived after k1's charge grew past capacity, want it evicted")
	}
	if got := c.Lookup(k1); got == nil {
		t.Error("k1 missing after update")
	} else {
		c.Release(got)
	}
}

func TestShardedLRUCacheInsertLookup(t *testing.T) {
	c := NewShardedLRUCache(1024, 4)

	for i := 0; i < 50; i++ {
		key := CacheKey{TableID: uint64(i % 3), BlockOffset: uint64(i)}
		c.Release(c.Insert(key, []byte(fmt.Sprintf("v%d", i)), 1))
	}

	for i := 0; i < 50; i++ {
		key := CacheKey{TableID: uint64(i % 3), BlockOffset: uint64(i)}
		h := c.Lookup(key)
		if h == nil {
			t.Fatalf("Lookup(%+v) = nil after Insert", key)
		}
		if string(h.Value()) != fmt.Sprintf("v%d", i) {
			t.Errorf("Value() = %q, want %q", h.Value(), fmt.Sprintf("v%d", i))
		}
		c.Release(h)
	}
}

func TestShardedLRUCacheCapacityRoundsToPowerOfTwo(t *testing.T) {
	c := NewShardedLRUCache(1600, 3)
	if len(c.shards) != 4 {
		t.Errorf("len(shards) = %d, want 4 (rounded up from 3)", len(c.shards))
	}
}

func TestShardedLRUCacheReleaseNilIsNoOp(t *testing.T) {
	c := NewShardedLRUCache(1024, 4)
	c.Release(nil) // must not panic
}

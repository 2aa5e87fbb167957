package main

import (
	"fmt"
	"strings"
	"testing"
)

func TestCacheKey_TruncatesText(t *testing.T) {
	long := strings.Repeat("x", 500)
	short := long[:100]
	if cacheKey(long, "App", "model") != cacheKey(short, "App", "model") {
		t.Error("texts sharing a 100-char prefix should share a key")
	}
	if cacheKey(long, "App", "model") == cacheKey(long, "Other", "model") {
		t.Error("different app names should not share a key")
	}
	if cacheKey(long, "App", "model") == cacheKey(long, "App", "other") {
		t.Error("different models should not share a key")
	}
}

func TestCache_HitAndMissCounters(t *testing.T) {
	c := newResultCache[int](10)

	if _, ok := c.Get("a"); ok {
		t.Fatal("unexpected hit on empty cache")
	}
	c.Put("a", 1)
	v, ok := c.Get("a")
	if !ok || v != 1 {
		t.Fatalf("got (%v, %v), want (1, true)", v, ok)
	}

	hits, misses := c.Counters()
	if hits != 1 || misses != 1 {
		t.Errorf("counters: got hits=%d misses=%d, want 1/1", hits, misses)
	}
	if rate := c.HitRate(); rate != 0.5 {
		t.Errorf("hit rate: got %v, want 0.5", rate)
	}
}

func TestCache_HitRateZeroWhenUnused(t *testing.T) {
	c := newResultCache[int](10)
	if rate := c.HitRate(); rate != 0 {
		t.Errorf("got %v, want 0", rate)
	}
}

func TestCache_BatchEviction(t *testing.T) {
	c := newResultCache[int](100)
	for i := 0; i < 101; i++ {
		c.Put(fmt.Sprintf("key-%03d", i), i)
	}

	// The 101st insert evicts the 10 oldest in one batch.
	if got := c.Len(); got != 91 {
		t.Fatalf("len: got %d, want 91", got)
	}
	for i := 0; i < 10; i++ {
		if _, ok := c.Get(fmt.Sprintf("key-%03d", i)); ok {
			t.Errorf("key-%03d should have been evicted", i)
		}
	}
	for _, i := range []int{10, 50, 100} {
		if _, ok := c.Get(fmt.Sprintf("key-%03d", i)); !ok {
			t.Errorf("key-%03d should have survived", i)
		}
	}
}

func TestCache_OverwriteDoesNotGrow(t *testing.T) {
	c := newResultCache[int](10)
	c.Put("a", 1)
	c.Put("a", 2)
	if got := c.Len(); got != 1 {
		t.Fatalf("len: got %d, want 1", got)
	}
	if v, _ := c.Get("a"); v != 2 {
		t.Errorf("got %d, want 2", v)
	}
}

package registry

import (
	"testing"
	"time"
)

func TestCacheKeyOrderIndependent(t *testing.T) {
	a := CacheKey("studies", map[string]string{"pageSize": "10", "query.term": "diabetes", "fields": "NCTId"})
	b := CacheKey("studies", map[string]string{"fields": "NCTId", "query.term": "diabetes", "pageSize": "10"})
	if a != b {
		t.Fatalf("expected identical keys, got %q vs %q", a, b)
	}
	if a != "studies?fields=NCTId&pageSize=10&query.term=diabetes" {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestCacheExpiryTreatedAsAbsent(t *testing.T) {
	now := time.Now()
	c := NewCache(time.Hour)
	c.now = func() time.Time { return now }

	c.Put("k", "payload")
	if v, ok := c.Get("k"); !ok || v != "payload" {
		t.Fatalf("expected fresh hit, got %v %v", v, ok)
	}

	now = now.Add(time.Hour + time.Second)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected expired entry to be absent")
	}
	// Stale data survives for fallback use.
	if v, ok := c.Stale("k"); !ok || v != "payload" {
		t.Fatalf("expected stale entry, got %v %v", v, ok)
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache(time.Hour)
	c.Put("a", 1)
	c.Put("b", 2)
	size, _ := c.Stats()
	if size != 2 {
		t.Fatalf("expected 2 entries, got %d", size)
	}
	c.Clear()
	if _, ok := c.Stale("a"); ok {
		t.Fatal("expected clear to drop stale data too")
	}
}

func TestLimiterHardCapAndWindowReset(t *testing.T) {
	now := time.Now()
	l := NewLimiter(3, time.Hour)
	l.now = func() time.Time { return now }
	l.windowStart = now

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("expected admission %d", i+1)
		}
	}
	if l.Allow() {
		t.Fatal("expected deny at limit")
	}
	count, limit, _ := l.Status()
	if count != 3 || limit != 3 {
		t.Fatalf("unexpected status count=%d limit=%d", count, limit)
	}

	now = now.Add(time.Hour + time.Minute)
	if !l.Allow() {
		t.Fatal("expected admission after window boundary")
	}
	count, _, _ = l.Status()
	if count != 1 {
		t.Fatalf("expected counter reset to 1, got %d", count)
	}
}

package cache

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time          { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestGetSet(t *testing.T) {
	clock := newFakeClock()
	c := New(clock.Now)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("categories:tree", "payload", 30*time.Minute)

	v, ok := c.Get("categories:tree")
	if !ok || v.(string) != "payload" {
		t.Fatalf("got (%v, %v), want (payload, true)", v, ok)
	}
}

func TestExpiry(t *testing.T) {
	clock := newFakeClock()
	c := New(clock.Now)

	c.Set("categories:roots", 1, time.Hour)

	clock.Advance(59 * time.Minute)
	if _, ok := c.Get("categories:roots"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("categories:roots"); ok {
		t.Fatal("entry survived past its TTL")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not evicted, len = %d", c.Len())
	}
}

func TestSetOverwritesTTL(t *testing.T) {
	clock := newFakeClock()
	c := New(clock.Now)

	c.Set("k", "old", time.Minute)
	clock.Advance(50 * time.Second)
	c.Set("k", "new", time.Minute)
	clock.Advance(30 * time.Second)

	v, ok := c.Get("k")
	if !ok || v.(string) != "new" {
		t.Fatalf("got (%v, %v), want (new, true)", v, ok)
	}
}

func TestDelete(t *testing.T) {
	clock := newFakeClock()
	c := New(clock.Now)

	c.Set("categories:tree", 1, time.Hour)
	c.Set("categories:children:a", 1, time.Hour)
	c.Set("categories:children:b", 1, time.Hour)
	c.Set("categories:popular:10", 1, time.Hour)

	c.Delete("categories:tree", "categories:children:a", "not-there")
	if _, ok := c.Get("categories:tree"); ok {
		t.Fatal("deleted key still readable")
	}
	if _, ok := c.Get("categories:children:b"); !ok {
		t.Fatal("unrelated key dropped")
	}

	c.DeletePrefix("categories:children:")
	if _, ok := c.Get("categories:children:b"); ok {
		t.Fatal("prefix delete missed a key")
	}
	if _, ok := c.Get("categories:popular:10"); !ok {
		t.Fatal("prefix delete dropped a non-matching key")
	}
}

package cache

import (
	"testing"
	"time"
)

func TestGetPutInvalidate(t *testing.T) {
	c := New(0)
	if _, ok := GetSlice[string](c, "parking"); ok {
		t.Fatal("empty cache should miss")
	}

	items := []string{"a", "b"}
	PutSlice(c, "parking", items)
	items[0] = "mutated"

	got, ok := GetSlice[string](c, "parking")
	if !ok || got[0] != "a" {
		t.Errorf("GetSlice = %v %v, want a private copy", got, ok)
	}
	got[1] = "mutated"
	again, _ := GetSlice[string](c, "parking")
	if again[1] != "b" {
		t.Error("mutating a read changed the cache")
	}

	c.Invalidate("parking")
	if _, ok := GetSlice[string](c, "parking"); ok {
		t.Error("invalidated key should miss")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New(50 * time.Millisecond)

	PutSlice(c, "users", []int{1})
	if _, ok := GetSlice[int](c, "users"); !ok {
		t.Fatal("entry should still be fresh")
	}
	time.Sleep(80 * time.Millisecond)
	if _, ok := GetSlice[int](c, "users"); ok {
		t.Error("entry should expire at the ttl")
	}
}

func TestReadsDoNotExtendTTL(t *testing.T) {
	c := New(200 * time.Millisecond)
	PutSlice(c, "parking", []string{"a"})

	time.Sleep(100 * time.Millisecond)
	if _, ok := GetSlice[string](c, "parking"); !ok {
		t.Fatal("entry should still be fresh")
	}
	time.Sleep(150 * time.Millisecond)
	if _, ok := GetSlice[string](c, "parking"); ok {
		t.Error("a read must not refresh the entry")
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := New(0)
	PutSlice(c, "bookings", []int{1, 2})
	time.Sleep(10 * time.Millisecond)
	if got, ok := GetSlice[int](c, "bookings"); !ok || len(got) != 2 {
		t.Errorf("GetSlice = %v %v", got, ok)
	}
}

func TestTypeMismatchMisses(t *testing.T) {
	c := New(0)
	PutSlice(c, "k", []int{1})
	if _, ok := GetSlice[string](c, "k"); ok {
		t.Error("reading with the wrong element type should miss")
	}
	c.InvalidateAll()
	if _, ok := GetSlice[int](c, "k"); ok {
		t.Error("InvalidateAll should clear every key")
	}
}

package store

import (
	"testing"

	"github.com/akaoio/xmd/value"
)

func TestSetGetRoundTrip(t *testing.T) {
	s := New()
	s.Set("x", value.Number(42))
	v, ok := s.Get("x")
	if !ok || v.Num() != 42 {
		t.Fatalf("got %v, %v; want 42, true", v, ok)
	}
}

func TestGetUnboundReturnsFalse(t *testing.T) {
	s := New()
	if _, ok := s.Get("missing"); ok {
		t.Error("expected ok=false for unbound name")
	}
}

func TestSetReplacesExistingBinding(t *testing.T) {
	s := New()
	s.Set("x", value.Number(1))
	s.Set("x", value.Number(2))
	if s.Size() != 1 {
		t.Errorf("expected size 1 after replace, got %d", s.Size())
	}
	v, _ := s.Get("x")
	if v.Num() != 2 {
		t.Errorf("expected replaced value 2, got %v", v.Num())
	}
}

func TestRemove(t *testing.T) {
	s := New()
	s.Set("x", value.Number(1))
	s.Remove("x")
	if s.Has("x") {
		t.Error("expected x to be removed")
	}
	if s.Size() != 0 {
		t.Errorf("expected size 0, got %d", s.Size())
	}
}

func TestRemoveMissingIsNoop(t *testing.T) {
	s := New()
	s.Remove("missing")
	if s.Size() != 0 {
		t.Errorf("expected size 0, got %d", s.Size())
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.Set("a", value.Number(1))
	s.Set("b", value.Number(2))
	s.Clear()
	if s.Size() != 0 || s.Has("a") || s.Has("b") {
		t.Error("expected store to be empty after Clear")
	}
}

func TestResizeOnLoadFactor(t *testing.T) {
	s := New()
	for i := 0; i < 100; i++ {
		s.Set(string(rune('a'+i%26))+string(rune(i)), value.Number(float64(i)))
	}
	if s.Size() != 100 {
		t.Fatalf("expected 100 bindings, got %d", s.Size())
	}
	if s.capacity <= initialCapacity {
		t.Errorf("expected capacity to grow past %d, got %d", initialCapacity, s.capacity)
	}
	for i := 0; i < 100; i++ {
		key := string(rune('a'+i%26)) + string(rune(i))
		v, ok := s.Get(key)
		if !ok || v.Num() != float64(i) {
			t.Errorf("key %q: got %v, %v; want %d, true", key, v, ok, i)
		}
	}
}

func TestKeysCoversAllBindings(t *testing.T) {
	s := New()
	want := map[string]bool{"a": true, "b": true, "c": true}
	for k := range want {
		s.Set(k, value.String(k))
	}
	got := s.Keys()
	if len(got) != len(want) {
		t.Fatalf("got %d keys, want %d", len(got), len(want))
	}
	for _, k := range got {
		if !want[k] {
			t.Errorf("unexpected key %q", k)
		}
	}
}

func TestDjb2HashMatchesSeed(t *testing.T) {
	// h starts at 5381 and folds in each byte as h = 33*h + c; for the
	// empty key the hash is just the seed reduced modulo capacity.
	got := djb2Hash("", 16)
	want := int(uint64(5381) % 16)
	if got != want {
		t.Errorf("djb2Hash(\"\", 16) = %d, want %d", got, want)
	}
}

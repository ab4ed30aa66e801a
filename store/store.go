// Package store implements the XMD variable store: a separate-chaining
// hash table keyed by name, djb2-hashed, resizing when the load factor
// reaches 0.75 (spec.md §3/§4.5). Grounded directly on
// _examples/original_source/src/store/{store_create,store_set,
// store_resize}.c and src/store/operations/hash_key.c's djb2
// implementation, transcribed onto a Go slice-of-buckets instead of the
// original's manual linked-list-of-entries (Go's garbage collector
// removes the need for the original's store_entry_destroy free pass, per
// spec.md §9's note on manual reference counting).
package store

import "github.com/akaoio/xmd/value"

const (
	initialCapacity  = 16
	loadFactorLimit  = 0.75
)

type entry struct {
	key   string
	value *value.Value
	next  *entry
}

// Store is a name-keyed mapping from identifier to a runtime value,
// holding the current lexical bindings visible to evaluation.
type Store struct {
	buckets  []*entry
	size     int
	capacity int
}

// New returns an empty store with the original's initial capacity of 16.
func New() *Store {
	return &Store{
		buckets:  make([]*entry, initialCapacity),
		capacity: initialCapacity,
	}
}

// djb2Hash implements `h = 33*h + c`, seed 5381, matching
// src/store/operations/hash_key.c exactly.
func djb2Hash(key string, capacity int) int {
	h := uint64(5381)
	for i := 0; i < len(key); i++ {
		h = 33*h + uint64(key[i])
	}
	return int(h % uint64(capacity))
}

// Set creates or replaces a binding. Replacing a binding drops the
// previous value (freed by the GC; spec.md's refcount-decrement-then-
// increment invariant is automatically satisfied once there is no manual
// refcounting to get wrong).
func (s *Store) Set(name string, v *value.Value) {
	if float64(s.size)/float64(s.capacity) >= loadFactorLimit {
		s.resize()
	}

	idx := djb2Hash(name, s.capacity)
	for e := s.buckets[idx]; e != nil; e = e.next {
		if e.key == name {
			e.value = v
			return
		}
	}

	s.buckets[idx] = &entry{key: name, value: v, next: s.buckets[idx]}
	s.size++
}

// Get returns the bound value and true, or (nil, false) if unbound.
func (s *Store) Get(name string) (*value.Value, bool) {
	idx := djb2Hash(name, s.capacity)
	for e := s.buckets[idx]; e != nil; e = e.next {
		if e.key == name {
			return e.value, true
		}
	}
	return nil, false
}

// Has reports whether name is bound.
func (s *Store) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Remove deletes a binding, if present.
func (s *Store) Remove(name string) {
	idx := djb2Hash(name, s.capacity)
	var prev *entry
	for e := s.buckets[idx]; e != nil; e = e.next {
		if e.key == name {
			if prev == nil {
				s.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			s.size--
			return
		}
		prev = e
	}
}

// Keys returns all bound names; order is unspecified (the store is a
// hash table, not the ordered value.Object — see SPEC_FULL.md §10).
func (s *Store) Keys() []string {
	keys := make([]string, 0, s.size)
	for _, head := range s.buckets {
		for e := head; e != nil; e = e.next {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Clear removes every binding, resetting to the initial capacity.
func (s *Store) Clear() {
	s.buckets = make([]*entry, initialCapacity)
	s.capacity = initialCapacity
	s.size = 0
}

// Size reports the number of bound names.
func (s *Store) Size() int { return s.size }

// resize doubles capacity and rehashes every entry, per
// src/store/store_resize/store_resize.c.
func (s *Store) resize() {
	oldBuckets := s.buckets
	s.capacity *= 2
	s.buckets = make([]*entry, s.capacity)
	s.size = 0

	for _, head := range oldBuckets {
		for e := head; e != nil; {
			next := e.next
			idx := djb2Hash(e.key, s.capacity)
			e.next = s.buckets[idx]
			s.buckets[idx] = e
			s.size++
			e = next
		}
	}
}

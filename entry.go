package gostreams

import (
	"fmt"
	"sync"
)

// Entry is a key-value pair.
//
// Entries created by NewEntry and by stream operations are immutable. Entries produced by FromMap and FromMapOf
// write changes through to the map they were read from.
type Entry[K any, V any] struct {
	key   K
	value V

	// set is non-nil if the entry is backed by a map.
	set func(value V)
}

// NewEntry returns an immutable entry.
func NewEntry[K any, V any](key K, value V) Entry[K, V] {
	return Entry[K, V]{
		key:   key,
		value: value,
	}
}

// mapEntry returns an entry that stores changes to its value in m.
// Changes are serialized using mu.
func mapEntry[K comparable, V any](m Mapping[K, V], mu *sync.Mutex, key K, value V) Entry[K, V] {
	return Entry[K, V]{
		key:   key,
		value: value,
		set: func(value V) {
			mu.Lock()
			defer mu.Unlock()

			m.Put(key, value)
		},
	}
}

// Key returns the entry's key.
func (e Entry[K, V]) Key() K {
	return e.key
}

// Value returns the entry's value.
func (e Entry[K, V]) Value() V {
	return e.value
}

// Mutable returns true if SetValue writes through to a map.
func (e Entry[K, V]) Mutable() bool {
	return e.set != nil
}

// SetValue stores value in the map backing the entry, and returns an entry with the new value.
// If the entry is not backed by a map, it returns the unchanged entry and ErrImmutableEntry.
func (e Entry[K, V]) SetValue(value V) (Entry[K, V], error) {
	if e.set == nil {
		return e, ErrImmutableEntry
	}

	e.set(value)
	e.value = value

	return e, nil
}

// Invert returns an immutable entry with key and value swapped.
func (e Entry[K, V]) Invert() Entry[V, K] {
	return NewEntry(e.value, e.key)
}

// String returns the entry formatted as "key=value".
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.key, e.value)
}

// EntryEqual returns true if a and b have equal keys and values.
func EntryEqual[K comparable, V comparable](a Entry[K, V], b Entry[K, V]) bool {
	return a.key == b.key && a.value == b.value
}

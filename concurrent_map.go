package gostreams

import (
	"iter"

	"github.com/puzpuzpuz/xsync/v3"
)

// ConcurrentMap is a Mapping that is safe for concurrent use. Its iteration order is undefined.
// The zero value is not usable, use NewConcurrentMap.
type ConcurrentMap[K comparable, V any] struct {
	m *xsync.MapOf[K, V]
}

var _ Mapping[string, int] = (*ConcurrentMap[string, int])(nil)

// NewConcurrentMap returns an empty ConcurrentMap.
func NewConcurrentMap[K comparable, V any]() *ConcurrentMap[K, V] {
	return &ConcurrentMap[K, V]{
		m: xsync.NewMapOf[K, V](),
	}
}

// Get implements Mapping.
func (m *ConcurrentMap[K, V]) Get(key K) (V, bool) {
	return m.m.Load(key)
}

// Put implements Mapping.
func (m *ConcurrentMap[K, V]) Put(key K, value V) {
	m.m.Store(key, value)
}

// PutIfAbsent stores value for key unless key is already present.
// It returns the value stored for key, and true if the value was already present.
func (m *ConcurrentMap[K, V]) PutIfAbsent(key K, value V) (V, bool) {
	return m.m.LoadOrStore(key, value)
}

// Merge atomically stores value for key, or the result of calling merge with the existing value and value if key
// is already present.
func (m *ConcurrentMap[K, V]) Merge(key K, value V, merge func(existing V, incoming V) V) V {
	actual, _ := m.m.Compute(key, func(existing V, loaded bool) (V, bool) {
		if !loaded {
			return value, false
		}

		return merge(existing, value), false
	})

	return actual
}

// Len implements Mapping.
func (m *ConcurrentMap[K, V]) Len() int {
	return m.m.Size()
}

// All implements Mapping.
func (m *ConcurrentMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		m.m.Range(yield)
	}
}

// ToMap returns a copy of the map's contents as a builtin map.
func (m *ConcurrentMap[K, V]) ToMap() map[K]V {
	result := make(map[K]V, m.Len())

	for k, v := range m.All() {
		result[k] = v
	}

	return result
}

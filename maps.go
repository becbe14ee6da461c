package gostreams

import (
	"iter"
	"strings"
)

// Mapping is a mapping from keys to values that streams can be collected into.
type Mapping[K comparable, V any] interface {
	// Get returns the value stored for key, and true, or the zero value and false.
	Get(key K) (V, bool)

	// Put stores value for key, replacing any existing value.
	Put(key K, value V)

	// Len returns the number of keys.
	Len() int

	// All returns an iterator over all key-value pairs.
	All() iter.Seq2[K, V]
}

// HashMap is a builtin map implementing Map. Its iteration order is undefined.
type HashMap[K comparable, V any] map[K]V

// OrderedMap is a Mapping that iterates keys in insertion order.
// Replacing the value of an existing key does not change its position.
// The zero value is not usable, use NewOrderedMap.
type OrderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

var (
	_ Mapping[string, int] = HashMap[string, int]{}
	_ Mapping[string, int] = (*OrderedMap[string, int])(nil)
)

// NewHashMap returns an empty HashMap.
func NewHashMap[K comparable, V any]() HashMap[K, V] {
	return HashMap[K, V]{}
}

// Get implements Mapping.
func (m HashMap[K, V]) Get(key K) (V, bool) {
	v, ok := m[key]
	return v, ok
}

// Put implements Mapping.
func (m HashMap[K, V]) Put(key K, value V) {
	m[key] = value
}

// Len implements Mapping.
func (m HashMap[K, V]) Len() int {
	return len(m)
}

// All implements Mapping.
func (m HashMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range m {
			if !yield(k, v) {
				return
			}
		}
	}
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{
		index: map[K]int{},
	}
}

// Get implements Mapping.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	i, ok := m.index[key]
	if !ok {
		var zero V
		return zero, false
	}

	return m.vals[i], true
}

// Put implements Mapping.
func (m *OrderedMap[K, V]) Put(key K, value V) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = value
		return
	}

	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, value)
}

// Len implements Mapping.
func (m *OrderedMap[K, V]) Len() int {
	return len(m.keys)
}

// All implements Mapping.
func (m *OrderedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range m.keys {
			if !yield(k, m.vals[i]) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

// String returns the map formatted as "{k1=v1, k2=v2}".
func (m *OrderedMap[K, V]) String() string {
	return formatMap[K, V](m.All())
}

// formatMap formats all key-value pairs of seq as "{k1=v1, k2=v2}".
func formatMap[K any, V any](seq iter.Seq2[K, V]) string {
	builder := strings.Builder{}
	builder.WriteString("{")

	first := true

	for k, v := range seq {
		if !first {
			builder.WriteString(", ")
		}

		first = false

		builder.WriteString(NewEntry(k, v).String())
	}

	builder.WriteString("}")

	return builder.String()
}

package gostreams

import (
	"iter"
	"sync"

	"github.com/google/btree"
	"golang.org/x/exp/constraints"
)

// sortedMapDegree is the degree of the B-tree backing a SortedMap.
const sortedMapDegree = 16

// SortedMap is a Mapping that iterates keys in ascending order. It is safe for concurrent use.
// The zero value is not usable, use NewSortedMap or NewSortedMapFunc.
type SortedMap[K comparable, V any] struct {
	mu   sync.RWMutex
	tree *btree.BTreeG[sortedMapItem[K, V]]
}

type sortedMapItem[K any, V any] struct {
	key   K
	value V
}

var _ Mapping[string, int] = (*SortedMap[string, int])(nil)

// NewSortedMap returns an empty SortedMap ordering keys naturally.
func NewSortedMap[K constraints.Ordered, V any]() *SortedMap[K, V] {
	return NewSortedMapFunc[K, V](func(a K, b K) bool {
		return a < b
	})
}

// NewSortedMapFunc returns an empty SortedMap ordering keys using less.
// Keys for which neither less(a, b) nor less(b, a) are true are considered the same key.
func NewSortedMapFunc[K comparable, V any](less func(a K, b K) bool) *SortedMap[K, V] {
	return &SortedMap[K, V]{
		tree: btree.NewG(sortedMapDegree, func(a sortedMapItem[K, V], b sortedMapItem[K, V]) bool {
			return less(a.key, b.key)
		}),
	}
}

// Get implements Mapping.
func (m *SortedMap[K, V]) Get(key K) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.tree.Get(sortedMapItem[K, V]{key: key})

	return item.value, ok
}

// Put implements Mapping.
func (m *SortedMap[K, V]) Put(key K, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tree.ReplaceOrInsert(sortedMapItem[K, V]{key: key, value: value})
}

// Len implements Mapping.
func (m *SortedMap[K, V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.tree.Len()
}

// All implements Mapping. It iterates over a snapshot taken when iteration starts.
func (m *SortedMap[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, item := range m.snapshot() {
			if !yield(item.key, item.value) {
				return
			}
		}
	}
}

// Keys returns the keys in ascending order.
func (m *SortedMap[K, V]) Keys() []K {
	items := m.snapshot()

	keys := make([]K, len(items))
	for i, item := range items {
		keys[i] = item.key
	}

	return keys
}

// First returns the smallest key and its value, and true, or zero values and false if the map is empty.
func (m *SortedMap[K, V]) First() (K, V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.tree.Min()

	return item.key, item.value, ok
}

// Last returns the greatest key and its value, and true, or zero values and false if the map is empty.
func (m *SortedMap[K, V]) Last() (K, V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.tree.Max()

	return item.key, item.value, ok
}

// String returns the map formatted as "{k1=v1, k2=v2}".
func (m *SortedMap[K, V]) String() string {
	return formatMap[K, V](m.All())
}

func (m *SortedMap[K, V]) snapshot() []sortedMapItem[K, V] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]sortedMapItem[K, V], 0, m.tree.Len())

	m.tree.Ascend(func(item sortedMapItem[K, V]) bool {
		items = append(items, item)
		return true
	})

	return items
}

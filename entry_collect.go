package gostreams

import (
	"context"
	"errors"

	"golang.org/x/exp/constraints"
)

// entryKeyMapper returns a mapper that maps entries to their keys.
func entryKeyMapper[K any, V any]() MapperFunc[Entry[K, V], K] {
	return FuncMapper(Entry[K, V].Key)
}

// entryValueMapper returns a mapper that maps entries to their values.
func entryValueMapper[K any, V any]() MapperFunc[Entry[K, V], V] {
	return FuncMapper(Entry[K, V].Value)
}

// collect reduces the entries of s into acc, logging the cause if s was canceled.
func collect[K any, V any, A any](ctx context.Context, s EntryStream[K, V], op string, acc A, reduce AccumulatorFunc[Entry[K, V], A]) (A, error) {
	acc, err := Reduce(ctx, s.prod, acc, reduce)
	s.logErr(op, err)

	return acc, err
}

func (s EntryStream[K, V]) logErr(op string, err error) {
	switch {
	case err == nil:

	case errors.Is(err, ErrDuplicateKey):
		s.cfg.Logger.Debug("duplicate key in entry stream", "op", op, "error", err)

	default:
		s.cfg.Logger.Debug("entry stream canceled", "op", op, "error", err)
	}
}

// ToMap returns a map of all entries of s.
// If two entries have the same key, the stream is canceled with a DuplicateKeyError.
// Keys must be hashable: an interface key holding an unhashable value such as a slice panics in the caller.
func ToMap[K comparable, V any](ctx context.Context, s EntryStream[K, V]) (map[K]V, error) {
	return collect(ctx, s, "ToMap", map[K]V{}, CollectMapNoDuplicateKeys(entryKeyMapper[K, V](), entryValueMapper[K, V]()))
}

// ToMapMerge returns a map of all entries of s.
// If two entries have the same key, the value is replaced by the result of calling merge with both values.
// Keys must be hashable: an interface key holding an unhashable value such as a slice panics in the caller.
func ToMapMerge[K comparable, V any](ctx context.Context, s EntryStream[K, V], merge func(existing V, incoming V) V) (map[K]V, error) {
	return collect(ctx, s, "ToMapMerge", map[K]V{}, CollectMapMerge(entryKeyMapper[K, V](), entryValueMapper[K, V](), merge))
}

// ToCustomMap returns a map returned by newMap, containing all entries of s.
// If two entries have the same key, the stream is canceled with a DuplicateKeyError.
func ToCustomMap[K comparable, V any, M Mapping[K, V]](ctx context.Context, s EntryStream[K, V], newMap func() M) (M, error) {
	return collect(ctx, s, "ToCustomMap", newMap(), collectMapNoDuplicateKeys[K, V, M]())
}

// ToCustomMapMerge returns a map returned by newMap, containing all entries of s.
// If two entries have the same key, the value is replaced by the result of calling merge with both values.
func ToCustomMapMerge[K comparable, V any, M Mapping[K, V]](ctx context.Context, s EntryStream[K, V], merge func(existing V, incoming V) V, newMap func() M) (M, error) {
	return collect(ctx, s, "ToCustomMapMerge", newMap(), collectMapMerge[K, V, M](merge))
}

// ToSortedMap returns a map of all entries of s, sorted by key.
// If two entries have the same key, the stream is canceled with a DuplicateKeyError.
func ToSortedMap[K constraints.Ordered, V any](ctx context.Context, s EntryStream[K, V]) (*SortedMap[K, V], error) {
	return ToCustomMap(ctx, s, NewSortedMap[K, V])
}

// ToSortedMapMerge returns a map of all entries of s, sorted by key.
// If two entries have the same key, the value is replaced by the result of calling merge with both values.
func ToSortedMapMerge[K constraints.Ordered, V any](ctx context.Context, s EntryStream[K, V], merge func(existing V, incoming V) V) (*SortedMap[K, V], error) {
	return ToCustomMapMerge(ctx, s, merge, NewSortedMap[K, V])
}

// ToSortedMapFunc returns a map of all entries of s, sorted by key using less.
// If two entries have the same key, the stream is canceled with a DuplicateKeyError.
func ToSortedMapFunc[K comparable, V any](ctx context.Context, s EntryStream[K, V], less func(a K, b K) bool) (*SortedMap[K, V], error) {
	return ToCustomMap(ctx, s, func() *SortedMap[K, V] {
		return NewSortedMapFunc[K, V](less)
	})
}

// ToConcurrentMap returns a concurrent map of all entries of s.
// If s is parallel, entries are stored concurrently.
// If two entries have the same key, the stream is canceled with a DuplicateKeyError.
func ToConcurrentMap[K comparable, V any](ctx context.Context, s EntryStream[K, V]) (*ConcurrentMap[K, V], error) {
	m := NewConcurrentMap[K, V]()

	if !s.parallel {
		return collect(ctx, s, "ToConcurrentMap", m, collectMapNoDuplicateKeys[K, V, *ConcurrentMap[K, V]]())
	}

	err := eachConcurrent(ctx, s.prod, s.cfg, func(_ context.Context, cancel context.CancelCauseFunc, entry Entry[K, V], _ uint64) {
		if existing, loaded := m.PutIfAbsent(entry.key, entry.value); loaded {
			cancel(&DuplicateKeyError[K, V]{
				Key:      entry.key,
				Existing: existing,
				Incoming: entry.value,
			})
		}
	})

	s.logErr("ToConcurrentMap", err)

	return m, err
}

// ToConcurrentMapMerge returns a concurrent map of all entries of s.
// If s is parallel, entries are stored concurrently, and merge may be called in any order.
// If two entries have the same key, the value is replaced by the result of calling merge with both values.
func ToConcurrentMapMerge[K comparable, V any](ctx context.Context, s EntryStream[K, V], merge func(existing V, incoming V) V) (*ConcurrentMap[K, V], error) {
	m := NewConcurrentMap[K, V]()

	if !s.parallel {
		return collect(ctx, s, "ToConcurrentMapMerge", m, collectMapMerge[K, V, *ConcurrentMap[K, V]](merge))
	}

	err := eachConcurrent(ctx, s.prod, s.cfg, func(_ context.Context, _ context.CancelCauseFunc, entry Entry[K, V], _ uint64) {
		m.Merge(entry.key, entry.value, merge)
	})

	s.logErr("ToConcurrentMapMerge", err)

	return m, err
}

// Grouping returns a map of the keys of all entries of s to slices of their values, in order.
// Keys must be hashable: an interface key holding an unhashable value such as a slice panics in the caller.
func Grouping[K comparable, V any](ctx context.Context, s EntryStream[K, V]) (map[K][]V, error) {
	return collect(ctx, s, "Grouping", map[K][]V{}, CollectGroup(entryKeyMapper[K, V](), entryValueMapper[K, V]()))
}

// GroupingInto returns a map returned by newMap, mapping the keys of all entries of s to slices of their values,
// in order.
func GroupingInto[K comparable, V any, M Mapping[K, []V]](ctx context.Context, s EntryStream[K, V], newMap func() M) (M, error) {
	return GroupingByInto(ctx, s, newMap, Listing[V]())
}

// GroupingBy returns a map of the keys of all entries of s to the reductions of their values using c.
// Keys must be hashable: an interface key holding an unhashable value such as a slice panics in the caller.
func GroupingBy[K comparable, V any, A any](ctx context.Context, s EntryStream[K, V], c Collector[V, A]) (map[K]A, error) {
	m, err := GroupingByInto(ctx, s, NewHashMap[K, A], c)
	return map[K]A(m), err
}

// GroupingByInto returns a map returned by newMap, mapping the keys of all entries of s to the reductions of their
// values using c.
func GroupingByInto[K comparable, V any, A any, M Mapping[K, A]](ctx context.Context, s EntryStream[K, V], newMap func() M, c Collector[V, A]) (M, error) {
	return collect(ctx, s, "GroupingBy", newMap(), func(_ context.Context, _ context.CancelCauseFunc, entry Entry[K, V], _ uint64, acc M) M {
		container, ok := acc.Get(entry.key)
		if !ok {
			container = c.Supplier()
		}

		acc.Put(entry.key, c.Accumulator(container, entry.value))

		return acc
	})
}

// MaxBy returns the greatest entry of s according to less, and true.
// If s is empty, it returns the zero value and false.
func MaxBy[K any, V any](ctx context.Context, s EntryStream[K, V], less func(a Entry[K, V], b Entry[K, V]) bool) (Entry[K, V], bool, error) {
	return MaxFunc(ctx, s.prod, less)
}

// collectMapNoDuplicateKeys returns an accumulator that collects entries into a Mapping.
// If a key is already in the map, the stream's context will be canceled with a DuplicateKeyError.
func collectMapNoDuplicateKeys[K comparable, V any, M Mapping[K, V]]() AccumulatorFunc[Entry[K, V], M] {
	return func(_ context.Context, cancel context.CancelCauseFunc, entry Entry[K, V], _ uint64, acc M) M {
		if existing, ok := acc.Get(entry.key); ok {
			cancel(&DuplicateKeyError[K, V]{
				Key:      entry.key,
				Existing: existing,
				Incoming: entry.value,
			})

			return acc
		}

		acc.Put(entry.key, entry.value)

		return acc
	}
}

// collectMapMerge returns an accumulator that collects entries into a Mapping.
// If a key is already in the map, the value will be replaced by the result of calling merge
// with the existing and the new value.
func collectMapMerge[K comparable, V any, M Mapping[K, V]](merge func(existing V, incoming V) V) AccumulatorFunc[Entry[K, V], M] {
	return func(_ context.Context, _ context.CancelCauseFunc, entry Entry[K, V], _ uint64, acc M) M {
		value := entry.value
		if existing, ok := acc.Get(entry.key); ok {
			value = merge(existing, value)
		}

		acc.Put(entry.key, value)

		return acc
	}
}

package gostreams

import (
	"context"

	"golang.org/x/exp/constraints"
)

// A Collector describes a reduction of elements of type T into a container of type A.
// It is used as the downstream reduction of grouping operations.
type Collector[T any, A any] struct {
	// Supplier returns a new, empty container.
	Supplier func() A

	// Accumulator folds elem into acc, returning acc, or a new container.
	Accumulator func(acc A, elem T) A
}

// CollectSlice returns an accumulator that collects elements into a slice.
func CollectSlice[T any]() AccumulatorFunc[T, []T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64, acc []T) []T {
		return append(acc, elem)
	}
}

// CollectSet returns an accumulator that collects elements into a set.
func CollectSet[T comparable]() AccumulatorFunc[T, map[T]struct{}] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64, acc map[T]struct{}) map[T]struct{} {
		acc[elem] = struct{}{}
		return acc
	}
}

// CollectMap returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the map entry will be overwritten.
func CollectMap[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K]V] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64, acc map[K]V) map[K]V {
		acc[key(ctx, cancel, elem, index)] = value(ctx, cancel, elem, index)
		return acc
	}
}

// CollectMapNoDuplicateKeys returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the stream's context will be canceled with a DuplicateKeyError.
func CollectMapNoDuplicateKeys[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K]V] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64, acc map[K]V) map[K]V {
		k := key(ctx, cancel, elem, index)
		v := value(ctx, cancel, elem, index)

		if existing, ok := acc[k]; ok {
			cancel(&DuplicateKeyError[K, V]{
				Key:      k,
				Existing: existing,
				Incoming: v,
			})

			return acc
		}

		acc[k] = v

		return acc
	}
}

// CollectMapMerge returns an accumulator that collects elements into a map.
// Elements are mapped using key and value, respectively.
// If a key is already in the map, the map entry will be replaced by the result of calling merge
// with the existing and the new value.
func CollectMapMerge[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V], merge func(existing V, incoming V) V) AccumulatorFunc[T, map[K]V] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64, acc map[K]V) map[K]V {
		k := key(ctx, cancel, elem, index)
		v := value(ctx, cancel, elem, index)

		if existing, ok := acc[k]; ok {
			v = merge(existing, v)
		}

		acc[k] = v

		return acc
	}
}

// CollectGroup returns an accumulator that collects elements into a group map.
// Elements will be grouped into slices according to key.
func CollectGroup[T any, K comparable, V any](key MapperFunc[T, K], value MapperFunc[T, V]) AccumulatorFunc[T, map[K][]V] {
	return func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64, acc map[K][]V) map[K][]V {
		key := key(ctx, cancel, elem, index)
		acc[key] = append(acc[key], value(ctx, cancel, elem, index))

		return acc
	}
}

// CollectPartition returns an accumulator that collects elements into a partition map.
// Elements will be grouped into slices according to pred.
func CollectPartition[T any, V any](pred PredicateFunc[T], value MapperFunc[T, V]) AccumulatorFunc[T, map[bool][]V] {
	return CollectGroup(MapperFunc[T, bool](pred), value)
}

// Counting returns a collector that counts elements.
func Counting[T any]() Collector[T, int] {
	return Collector[T, int]{
		Supplier: func() int {
			return 0
		},
		Accumulator: func(acc int, _ T) int {
			return acc + 1
		},
	}
}

// Summing returns a collector that sums up elements.
func Summing[T constraints.Integer | constraints.Float]() Collector[T, T] {
	return Collector[T, T]{
		Supplier: func() T {
			return 0
		},
		Accumulator: func(acc T, elem T) T {
			return acc + elem
		},
	}
}

// Listing returns a collector that collects elements into slices.
func Listing[T any]() Collector[T, []T] {
	return Collector[T, []T]{
		Supplier: func() []T {
			return nil
		},
		Accumulator: func(acc []T, elem T) []T {
			return append(acc, elem)
		},
	}
}

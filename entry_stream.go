package gostreams

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"sync"
)

// EntryStream is a stream of key-value pairs.
//
// An EntryStream is immutable: every operation returns a new stream, and the receiver can still be used to build
// other pipelines. Like all streams, an EntryStream is lazy, it does not produce any entries until a terminal
// operation consumes it.
//
// A parallel EntryStream calls the callbacks of mapping, filtering, and peeking operations concurrently. Entries
// are still produced in upstream order, so that collecting a parallel stream yields the same result as collecting
// the equivalent sequential stream.
type EntryStream[K any, V any] struct {
	prod     ProducerFunc[Entry[K, V]]
	parallel bool
	cfg      Config
}

func newEntryStream[K any, V any](prod ProducerFunc[Entry[K, V]], cfg Config) EntryStream[K, V] {
	return EntryStream[K, V]{
		prod: prod,
		cfg:  cfg,
	}
}

// derive returns a stream that produces the entries produced by prod, using the same mode and configuration as s.
func derive[K any, V any, K2 any, V2 any](s EntryStream[K, V], prod ProducerFunc[Entry[K2, V2]]) EntryStream[K2, V2] {
	return EntryStream[K2, V2]{
		prod:     prod,
		parallel: s.parallel,
		cfg:      s.cfg,
	}
}

// EmptyEntries returns a stream that produces no entries.
func EmptyEntries[K any, V any](opts ...Option) EntryStream[K, V] {
	return newEntryStream(Empty[Entry[K, V]](), ApplyOptions(opts...))
}

// OfEntry returns a stream that produces a single immutable entry.
func OfEntry[K any, V any](key K, value V, opts ...Option) EntryStream[K, V] {
	return FromEntries([]Entry[K, V]{NewEntry(key, value)}, opts...)
}

// FromEntries returns a stream that produces the given entries, in order.
func FromEntries[K any, V any](entries []Entry[K, V], opts ...Option) EntryStream[K, V] {
	return newEntryStream(Produce(entries), ApplyOptions(opts...))
}

// FromMap returns a stream that produces the entries of m, in undefined order.
// Calling SetValue on a produced entry stores the new value in m.
func FromMap[K comparable, V any](m map[K]V, opts ...Option) EntryStream[K, V] {
	return FromMapOf[K, V](HashMap[K, V](m), opts...)
}

// FromMapOf returns a stream that produces the entries of m, in the iteration order of m.
// Calling SetValue on a produced entry stores the new value in m.
// The entries are read from m when the stream is consumed.
// A nil m, including a nil pointer to a map type, produces no entries.
func FromMapOf[K comparable, V any](m Mapping[K, V], opts ...Option) EntryStream[K, V] {
	if isNil(m) {
		return EmptyEntries[K, V](opts...)
	}

	mu := &sync.Mutex{}

	return newEntryStream(func(ctx context.Context, cancel context.CancelCauseFunc) <-chan Entry[K, V] {
		mu.Lock()

		entries := make([]Entry[K, V], 0, m.Len())
		for k, v := range m.All() {
			entries = append(entries, mapEntry(m, mu, k, v))
		}

		mu.Unlock()

		return Produce(entries)(ctx, cancel)
	}, ApplyOptions(opts...))
}

// FromProducer returns a stream that produces the entries produced by prod.
func FromProducer[K any, V any](prod ProducerFunc[Entry[K, V]], opts ...Option) EntryStream[K, V] {
	return newEntryStream(prod, ApplyOptions(opts...))
}

// FromSeq2 returns a stream that produces an immutable entry for each key-value pair yielded by seq, in order.
func FromSeq2[K any, V any](seq iter.Seq2[K, V], opts ...Option) EntryStream[K, V] {
	return newEntryStream(ProduceSeq(func(yield func(Entry[K, V]) bool) {
		for k, v := range seq {
			if !yield(NewEntry(k, v)) {
				return
			}
		}
	}), ApplyOptions(opts...))
}

// Zip returns a stream that produces an immutable entry for each pair of keys[i] and values[i].
// If keys and values are of different lengths, the stream is canceled with ErrLengthMismatch when consumed.
func Zip[K any, V any](keys []K, values []V, opts ...Option) EntryStream[K, V] {
	cfg := ApplyOptions(opts...)

	return newEntryStream(func(ctx context.Context, cancel context.CancelCauseFunc) <-chan Entry[K, V] {
		if len(keys) != len(values) {
			cfg.Logger.Debug("cannot zip slices", "keys", len(keys), "values", len(values))

			cancel(fmt.Errorf("%w: %d keys, %d values", ErrLengthMismatch, len(keys), len(values)))

			return Empty[Entry[K, V]]()(ctx, cancel)
		}

		return Map(Produce(keys), func(_ context.Context, _ context.CancelCauseFunc, key K, index uint64) Entry[K, V] {
			return NewEntry(key, values[index])
		})(ctx, cancel)
	}, cfg)
}

// Indexed returns a stream that produces an immutable entry for each element of values, keyed by its index.
func Indexed[V any](values []V, opts ...Option) EntryStream[int, V] {
	return newEntryStream(Map(Produce(values), func(_ context.Context, _ context.CancelCauseFunc, elem V, index uint64) Entry[int, V] {
		return NewEntry(int(index), elem)
	}), ApplyOptions(opts...))
}

// MapToEntry returns a stream that produces an immutable entry for each element produced by prod,
// using key and value to compute the entry's key and value, respectively.
func MapToEntry[T any, K any, V any](prod ProducerFunc[T], key Function[T, K], value Function[T, V], opts ...Option) EntryStream[K, V] {
	return newEntryStream(Map(prod, FuncMapper(func(elem T) Entry[K, V] {
		return NewEntry(key(elem), value(elem))
	})), ApplyOptions(opts...))
}

// FlatMapToEntry returns a stream that produces the entries of the maps returned by calling mapp for each element
// produced by prod. Entries of a single map are produced in undefined order. A nil map produces no entries.
func FlatMapToEntry[T any, K comparable, V any](prod ProducerFunc[T], mapp Function[T, map[K]V], opts ...Option) EntryStream[K, V] {
	return newEntryStream(FlatMap(prod, FuncMapper(func(elem T) ProducerFunc[Entry[K, V]] {
		m := mapp(elem)
		if m == nil {
			return nil
		}

		return FromSeq2[K, V](HashMap[K, V](m).All()).prod
	})), ApplyOptions(opts...))
}

// OfPairs returns a stream that produces an immutable entry for each pair of values[i] and values[j],
// where i < j, in lexicographic order of (i, j).
func OfPairs[T any](values []T, opts ...Option) EntryStream[T, T] {
	return newEntryStream(ProduceSeq(func(yield func(Entry[T, T]) bool) {
		for i := range values {
			for j := i + 1; j < len(values); j++ {
				if !yield(NewEntry(values[i], values[j])) {
					return
				}
			}
		}
	}), ApplyOptions(opts...))
}

// Parallel returns an equivalent stream that calls callbacks concurrently.
func (s EntryStream[K, V]) Parallel() EntryStream[K, V] {
	s.parallel = true
	return s
}

// Sequential returns an equivalent stream that calls callbacks sequentially.
func (s EntryStream[K, V]) Sequential() EntryStream[K, V] {
	s.parallel = false
	return s
}

// IsParallel returns true if s calls callbacks concurrently.
func (s EntryStream[K, V]) IsParallel() bool {
	return s.parallel
}

// WithOptions returns an equivalent stream using the configuration of s, modified by opts.
func (s EntryStream[K, V]) WithOptions(opts ...Option) EntryStream[K, V] {
	s.cfg = s.cfg.with(opts...)
	return s
}

// Entries returns a producer that produces the entries of s.
func (s EntryStream[K, V]) Entries() ProducerFunc[Entry[K, V]] {
	return s.prod
}

// Keys returns a producer that produces the keys of the entries of s.
func (s EntryStream[K, V]) Keys() ProducerFunc[K] {
	return Map(s.prod, FuncMapper(Entry[K, V].Key))
}

// Values returns a producer that produces the values of the entries of s.
func (s EntryStream[K, V]) Values() ProducerFunc[V] {
	return Map(s.prod, FuncMapper(Entry[K, V].Value))
}

// Filter returns a stream that only produces the entries for which pred returns true.
func (s EntryStream[K, V]) Filter(pred func(entry Entry[K, V]) bool) EntryStream[K, V] {
	if s.parallel {
		s.prod = filterConcurrent(s.prod, s.cfg, FuncPredicate(pred))
		return s
	}

	s.prod = filterSequential(s.prod, s.cfg, FuncPredicate(pred))

	return s
}

// FilterKeys returns a stream that only produces the entries whose keys match pred.
func (s EntryStream[K, V]) FilterKeys(pred func(key K) bool) EntryStream[K, V] {
	return s.Filter(func(entry Entry[K, V]) bool {
		return pred(entry.key)
	})
}

// FilterValues returns a stream that only produces the entries whose values match pred.
func (s EntryStream[K, V]) FilterValues(pred func(value V) bool) EntryStream[K, V] {
	return s.Filter(func(entry Entry[K, V]) bool {
		return pred(entry.value)
	})
}

// FilterKeyValue returns a stream that only produces the entries whose keys and values match pred.
func (s EntryStream[K, V]) FilterKeyValue(pred func(key K, value V) bool) EntryStream[K, V] {
	return s.Filter(func(entry Entry[K, V]) bool {
		return pred(entry.key, entry.value)
	})
}

// RemoveKeys returns a stream that does not produce the entries whose keys match pred.
func (s EntryStream[K, V]) RemoveKeys(pred func(key K) bool) EntryStream[K, V] {
	return s.FilterKeys(func(key K) bool {
		return !pred(key)
	})
}

// RemoveValues returns a stream that does not produce the entries whose values match pred.
func (s EntryStream[K, V]) RemoveValues(pred func(value V) bool) EntryStream[K, V] {
	return s.FilterValues(func(value V) bool {
		return !pred(value)
	})
}

// RemoveKeyValue returns a stream that does not produce the entries whose keys and values match pred.
func (s EntryStream[K, V]) RemoveKeyValue(pred func(key K, value V) bool) EntryStream[K, V] {
	return s.FilterKeyValue(func(key K, value V) bool {
		return !pred(key, value)
	})
}

// NonNilKeys returns a stream that does not produce the entries whose keys are nil.
func (s EntryStream[K, V]) NonNilKeys() EntryStream[K, V] {
	return s.FilterKeys(func(key K) bool {
		return !isNil(key)
	})
}

// NonNilValues returns a stream that does not produce the entries whose values are nil.
func (s EntryStream[K, V]) NonNilValues() EntryStream[K, V] {
	return s.FilterValues(func(value V) bool {
		return !isNil(value)
	})
}

// Peek returns a stream that calls peek for each entry, and produces the same entries.
// If s is parallel, calls of peek are not ordered.
func (s EntryStream[K, V]) Peek(peek func(entry Entry[K, V])) EntryStream[K, V] {
	if s.parallel {
		s.prod = peekConcurrent(s.prod, s.cfg, FuncConsumer(peek))
		return s
	}

	s.prod = peekSequential(s.prod, s.cfg, FuncConsumer(peek))

	return s
}

// PeekKeys returns a stream that calls peek for the key of each entry, and produces the same entries.
func (s EntryStream[K, V]) PeekKeys(peek func(key K)) EntryStream[K, V] {
	return s.Peek(func(entry Entry[K, V]) {
		peek(entry.key)
	})
}

// PeekValues returns a stream that calls peek for the value of each entry, and produces the same entries.
func (s EntryStream[K, V]) PeekValues(peek func(value V)) EntryStream[K, V] {
	return s.Peek(func(entry Entry[K, V]) {
		peek(entry.value)
	})
}

// PeekKeyValue returns a stream that calls peek for the key and value of each entry, and produces the same entries.
func (s EntryStream[K, V]) PeekKeyValue(peek func(key K, value V)) EntryStream[K, V] {
	return s.Peek(func(entry Entry[K, V]) {
		peek(entry.key, entry.value)
	})
}

// Limit returns a stream that produces up to max entries.
func (s EntryStream[K, V]) Limit(max uint64) EntryStream[K, V] {
	s.prod = Limit(s.prod, max)
	return s
}

// Skip returns a stream that skips the first num entries.
func (s EntryStream[K, V]) Skip(num uint64) EntryStream[K, V] {
	s.prod = Skip(s.prod, num)
	return s
}

// Sorted returns a stream that produces all entries sorted using less.
// Equal entries keep their order.
func (s EntryStream[K, V]) Sorted(less func(a Entry[K, V], b Entry[K, V]) bool) EntryStream[K, V] {
	s.prod = sortSequential(s.prod, s.cfg, FuncLess(less))
	return s
}

// ReverseSorted returns a stream that produces all entries sorted in reverse order using less.
// Equal entries keep their order.
func (s EntryStream[K, V]) ReverseSorted(less func(a Entry[K, V], b Entry[K, V]) bool) EntryStream[K, V] {
	return s.Sorted(func(a Entry[K, V], b Entry[K, V]) bool {
		return less(b, a)
	})
}

// Append returns a stream that produces the entries of s, followed by entries.
func (s EntryStream[K, V]) Append(entries ...Entry[K, V]) EntryStream[K, V] {
	s.prod = Join(s.prod, Produce(entries))
	return s
}

// AppendStream returns a stream that produces the entries of s, followed by the entries of other.
func (s EntryStream[K, V]) AppendStream(other EntryStream[K, V]) EntryStream[K, V] {
	s.prod = Join(s.prod, other.prod)
	return s
}

// Prepend returns a stream that produces entries, followed by the entries of s.
func (s EntryStream[K, V]) Prepend(entries ...Entry[K, V]) EntryStream[K, V] {
	s.prod = Join(Produce(entries), s.prod)
	return s
}

// PrependStream returns a stream that produces the entries of other, followed by the entries of s.
func (s EntryStream[K, V]) PrependStream(other EntryStream[K, V]) EntryStream[K, V] {
	s.prod = Join(other.prod, s.prod)
	return s
}

// Invert returns a stream that produces immutable entries with keys and values swapped.
func (s EntryStream[K, V]) Invert() EntryStream[V, K] {
	return derive(s, Map(s.prod, FuncMapper(Entry[K, V].Invert)))
}

// Join returns a producer that produces the string representation of each entry's key and value,
// separated by sep.
func (s EntryStream[K, V]) Join(sep string) ProducerFunc[string] {
	return s.JoinWith(sep, "", "")
}

// JoinWith returns a producer that produces the string representation of each entry's key and value,
// separated by sep, enclosed in prefix and suffix.
func (s EntryStream[K, V]) JoinWith(sep string, prefix string, suffix string) ProducerFunc[string] {
	return Map(s.prod, FuncMapper(func(entry Entry[K, V]) string {
		return fmt.Sprintf("%s%v%s%v%s", prefix, entry.key, sep, entry.value, suffix)
	}))
}

// ForEach calls each for each entry.
// If s is parallel, calls of each are not ordered.
func (s EntryStream[K, V]) ForEach(ctx context.Context, each func(entry Entry[K, V])) error {
	if s.parallel {
		return eachConcurrent(ctx, s.prod, s.cfg, FuncConsumer(each))
	}

	return Each(ctx, s.prod, FuncConsumer(each))
}

// ForKeyValue calls each for the key and value of each entry.
// If s is parallel, calls of each are not ordered.
func (s EntryStream[K, V]) ForKeyValue(ctx context.Context, each func(key K, value V)) error {
	return s.ForEach(ctx, func(entry Entry[K, V]) {
		each(entry.key, entry.value)
	})
}

// Count returns the number of entries.
func (s EntryStream[K, V]) Count(ctx context.Context) (uint64, error) {
	return Count(ctx, s.prod)
}

// ToSlice returns all entries, in order.
func (s EntryStream[K, V]) ToSlice(ctx context.Context) ([]Entry[K, V], error) {
	return ReduceSlice(ctx, s.prod)
}

// AnyMatch returns true as soon as pred returns true for the key and value of an entry.
func (s EntryStream[K, V]) AnyMatch(ctx context.Context, pred func(key K, value V) bool) (bool, error) {
	return AnyMatch(ctx, s.prod, FuncPredicate(func(entry Entry[K, V]) bool {
		return pred(entry.key, entry.value)
	}))
}

// AllMatch returns true if pred returns true for the keys and values of all entries.
func (s EntryStream[K, V]) AllMatch(ctx context.Context, pred func(key K, value V) bool) (bool, error) {
	return AllMatch(ctx, s.prod, FuncPredicate(func(entry Entry[K, V]) bool {
		return pred(entry.key, entry.value)
	}))
}

// isNil returns true if v is nil, or a nil pointer, map, slice, channel, or function.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()

	default:
		return false
	}
}

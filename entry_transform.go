package gostreams

// mapStream returns a producer that calls mapp for each entry of s, concurrently if s is parallel.
func mapStream[K any, V any, R any](s EntryStream[K, V], mapp Function[Entry[K, V], R]) ProducerFunc[R] {
	if s.parallel {
		return mapConcurrent(s.prod, s.cfg, FuncMapper(mapp))
	}

	return mapSequential(s.prod, s.cfg, FuncMapper(mapp))
}

// MapEntries returns a producer that produces the result of calling mapp for each entry of s.
func MapEntries[K any, V any, R any](s EntryStream[K, V], mapp func(entry Entry[K, V]) R) ProducerFunc[R] {
	return mapStream(s, mapp)
}

// MapKeyValue returns a producer that produces the result of calling mapp for the key and value of each entry of s.
func MapKeyValue[K any, V any, R any](s EntryStream[K, V], mapp func(key K, value V) R) ProducerFunc[R] {
	return mapStream(s, func(entry Entry[K, V]) R {
		return mapp(entry.key, entry.value)
	})
}

// MapKeys returns a stream that replaces the key of each entry of s with the result of calling mapp for the key.
func MapKeys[K any, V any, K2 any](s EntryStream[K, V], mapp func(key K) K2) EntryStream[K2, V] {
	return derive(s, mapStream(s, func(entry Entry[K, V]) Entry[K2, V] {
		return NewEntry(mapp(entry.key), entry.value)
	}))
}

// MapValues returns a stream that replaces the value of each entry of s with the result of calling mapp for the value.
func MapValues[K any, V any, V2 any](s EntryStream[K, V], mapp func(value V) V2) EntryStream[K, V2] {
	return derive(s, mapStream(s, func(entry Entry[K, V]) Entry[K, V2] {
		return NewEntry(entry.key, mapp(entry.value))
	}))
}

// MapToKey returns a stream that replaces the key of each entry of s with the result of calling mapp for the key
// and value.
func MapToKey[K any, V any, K2 any](s EntryStream[K, V], mapp func(key K, value V) K2) EntryStream[K2, V] {
	return derive(s, mapStream(s, func(entry Entry[K, V]) Entry[K2, V] {
		return NewEntry(mapp(entry.key, entry.value), entry.value)
	}))
}

// MapToValue returns a stream that replaces the value of each entry of s with the result of calling mapp for the
// key and value.
func MapToValue[K any, V any, V2 any](s EntryStream[K, V], mapp func(key K, value V) V2) EntryStream[K, V2] {
	return derive(s, mapStream(s, func(entry Entry[K, V]) Entry[K, V2] {
		return NewEntry(entry.key, mapp(entry.key, entry.value))
	}))
}

// FlatMapEntries returns a producer that produces all elements produced by the producers returned by calling mapp
// for each entry of s, in order. A nil producer produces no elements.
func FlatMapEntries[K any, V any, R any](s EntryStream[K, V], mapp func(entry Entry[K, V]) ProducerFunc[R]) ProducerFunc[R] {
	return flatten(mapStream(s, mapp), s.cfg)
}

// FlatMapKeyValue returns a producer that produces all elements produced by the producers returned by calling mapp
// for the key and value of each entry of s, in order. A nil producer produces no elements.
func FlatMapKeyValue[K any, V any, R any](s EntryStream[K, V], mapp func(key K, value V) ProducerFunc[R]) ProducerFunc[R] {
	return FlatMapEntries(s, func(entry Entry[K, V]) ProducerFunc[R] {
		return mapp(entry.key, entry.value)
	})
}

// FlatCollection returns a producer that produces all elements of the slices returned by calling mapp for each entry
// of s, in order.
func FlatCollection[K any, V any, R any](s EntryStream[K, V], mapp func(entry Entry[K, V]) []R) ProducerFunc[R] {
	return FlatMapEntries(s, func(entry Entry[K, V]) ProducerFunc[R] {
		return Produce(mapp(entry))
	})
}

// FlatMapKeys returns a stream that replaces each entry of s with one entry for each key produced by the producer
// returned by calling mapp for the entry's key. The new entries keep the original value.
// A nil producer removes the entry.
func FlatMapKeys[K any, V any, K2 any](s EntryStream[K, V], mapp func(key K) ProducerFunc[K2]) EntryStream[K2, V] {
	return derive(s, FlatMapEntries(s, func(entry Entry[K, V]) ProducerFunc[Entry[K2, V]] {
		keys := mapp(entry.key)
		if keys == nil {
			return nil
		}

		return Map(keys, FuncMapper(func(key K2) Entry[K2, V] {
			return NewEntry(key, entry.value)
		}))
	}))
}

// FlatMapValues returns a stream that replaces each entry of s with one entry for each value produced by the producer
// returned by calling mapp for the entry's value. The new entries keep the original key.
// A nil producer removes the entry.
func FlatMapValues[K any, V any, V2 any](s EntryStream[K, V], mapp func(value V) ProducerFunc[V2]) EntryStream[K, V2] {
	return derive(s, FlatMapEntries(s, func(entry Entry[K, V]) ProducerFunc[Entry[K, V2]] {
		values := mapp(entry.value)
		if values == nil {
			return nil
		}

		return Map(values, FuncMapper(func(value V2) Entry[K, V2] {
			return NewEntry(entry.key, value)
		}))
	}))
}

// SelectKeys returns a stream that only produces the entries whose keys are of type K2, converted to K2.
func SelectKeys[K2 any, K any, V any](s EntryStream[K, V]) EntryStream[K2, V] {
	typed := s.FilterKeys(func(key K) bool {
		_, ok := any(key).(K2)
		return ok
	})

	return derive(s, Map(typed.prod, FuncMapper(func(entry Entry[K, V]) Entry[K2, V] {
		return NewEntry(any(entry.key).(K2), entry.value)
	})))
}

// SelectValues returns a stream that only produces the entries whose values are of type V2, converted to V2.
func SelectValues[V2 any, K any, V any](s EntryStream[K, V]) EntryStream[K, V2] {
	typed := s.FilterValues(func(value V) bool {
		_, ok := any(value).(V2)
		return ok
	})

	return derive(s, Map(typed.prod, FuncMapper(func(entry Entry[K, V]) Entry[K, V2] {
		return NewEntry(entry.key, any(entry.value).(V2))
	})))
}

// entryKey is a comparable representation of an entry.
type entryKey[K comparable, V comparable] struct {
	key   K
	value V
}

// DistinctEntries returns a stream that skips entries equal to an entry already produced.
// The keys and values must be hashable: an interface holding an unhashable value such as a slice cancels the stream
// with a PanicError.
func DistinctEntries[K comparable, V comparable](s EntryStream[K, V]) EntryStream[K, V] {
	return derive(s, DistinctBy(s.prod, func(entry Entry[K, V]) entryKey[K, V] {
		return entryKey[K, V]{
			key:   entry.key,
			value: entry.value,
		}
	}))
}

// DistinctKeys returns a stream that skips entries whose key equals the key of an entry already produced.
// The keys must be hashable: an interface holding an unhashable value such as a slice cancels the stream
// with a PanicError.
func DistinctKeys[K comparable, V any](s EntryStream[K, V]) EntryStream[K, V] {
	return derive(s, DistinctBy(s.prod, Entry[K, V].Key))
}

// DistinctValues returns a stream that skips entries whose value equals the value of an entry already produced.
// The values must be hashable: an interface holding an unhashable value such as a slice cancels the stream
// with a PanicError.
func DistinctValues[K any, V comparable](s EntryStream[K, V]) EntryStream[K, V] {
	return derive(s, DistinctBy(s.prod, Entry[K, V].Value))
}

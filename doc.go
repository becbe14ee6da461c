// Package gostreams implements lazy streams of elements and of key-value entries on top of goroutines and channels.
//
// A stream starts with a ProducerFunc. Produce, ProduceSeq, and ProduceChannel build producers from slices,
// iterators, and channels, but any function returning a channel can be used as a source.
//
// Intermediate operations such as Map, Filter, FlatMap, Limit, and Sort wrap a producer in a new one.
// The concurrent variants (MapConcurrent, FilterConcurrent, ...) call their callbacks on several goroutines,
// but still produce elements in upstream order.
//
// Terminal operations consume a producer: Reduce and its accumulators collect elements into slices, sets,
// maps, or groups, Each iterates, and AnyMatch, AllMatch, Count, and Max compute a single result.
//
// Every callback receives a context.CancelCauseFunc. Canceling stops the whole stream, and terminal operations
// return the cause, except for ErrShortCircuit, which marks a successful early exit. Producers must watch their
// context.Context and stop producing when it is done.
//
// Elements are produced on demand: a producer produces the next element only once the previous one has been
// consumed downstream.
//
// # Entry streams
//
// EntryStream wraps a producer of Entry elements and adds operations addressing keys, values, or both:
// FilterKeys, PeekValues, MapKeys, FlatMapValues, Invert, and so on. Entry streams are collected using
// ToMap, ToSortedMap, ToCustomMap, ToConcurrentMap, and the Grouping functions. Collecting two entries
// with the same key into a map cancels the stream with a DuplicateKeyError, unless a merge function is given.
//
// An EntryStream may be switched to parallel mode using EntryStream.Parallel. Mapping, filtering, and peeking
// callbacks of a parallel stream run on a bounded pool of goroutines, see WithParallelism.
package gostreams

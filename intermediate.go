package gostreams

import (
	"context"

	"golang.org/x/exp/slices"
)

// Function returns the result of applying an operation to elem.
type Function[T any, U any] func(elem T) U

// MapperFunc maps element elem to type U.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type MapperFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) U

// PredicateFunc returns true elem matches a predicate.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type PredicateFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) bool

// LessFunc returns true if element a is "less" than element b.
type LessFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, a T, b T) bool

// FuncMapper returns a mapper that calls mapp for each element.
func FuncMapper[T any, U any](mapp Function[T, U]) MapperFunc[T, U] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) U {
		return mapp(elem)
	}
}

// FuncPredicate returns a predicate that calls pred for each element.
func FuncPredicate[T any](pred func(elem T) bool) PredicateFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) bool {
		return pred(elem)
	}
}

// FuncLess returns a LessFunc that calls less.
func FuncLess[T any](less func(a T, b T) bool) LessFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, a T, b T) bool {
		return less(a, b)
	}
}

// Map returns a producer that calls mapp for each element produced by prod, mapping it to type U.
// A panicking mapp cancels the stream with a PanicError.
func Map[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, U]) ProducerFunc[U] {
	return mapSequential(prod, DefaultConfig(), mapp)
}

func mapSequential[T any, U any](prod ProducerFunc[T], cfg Config, mapp MapperFunc[T, U]) ProducerFunc[U] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan U {
		ch := prod(ctx, cancel)

		outCh := make(chan U)

		go func() {
			defer close(outCh)
			defer recoverCallback(cfg, cancel)

			index := uint64(0)

			for elem := range ch {
				outElem := mapp(ctx, cancel, elem, index)

				if contextDone(ctx) || !send(ctx, outCh, outElem) {
					return
				}

				index++
			}
		}()

		return outCh
	}
}

// MapConcurrent returns a producer that concurrently calls mapp for each element produced by prod, mapping it to type U.
// Up to GOMAXPROCS calls of mapp run at the same time. The new producer produces elements in upstream order.
func MapConcurrent[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, U]) ProducerFunc[U] {
	return mapConcurrent(prod, DefaultConfig(), mapp)
}

func mapConcurrent[T any, U any](prod ProducerFunc[T], cfg Config, mapp MapperFunc[T, U]) ProducerFunc[U] {
	return produceOrdered(prod, cfg.Parallelism, cfg, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) (U, bool) {
		return mapp(ctx, cancel, elem, index), true
	})
}

// FlatMap returns a producer that calls mapp for each element produced by prod, mapping it to an intermediate producer
// that produces elements of type U.
// The new producer produces all elements produced by the intermediate producers, in order.
// A nil intermediate producer produces no elements.
func FlatMap[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, ProducerFunc[U]]) ProducerFunc[U] {
	cfg := DefaultConfig()
	return flatten(mapSequential(prod, cfg, mapp), cfg)
}

// FlatMapConcurrent returns a producer that concurrently calls mapp for each element produced by prod, mapping it
// to an intermediate producer that produces elements of type U.
// The new producer produces all elements produced by the intermediate producers, in upstream order.
func FlatMapConcurrent[T any, U any](prod ProducerFunc[T], mapp MapperFunc[T, ProducerFunc[U]]) ProducerFunc[U] {
	cfg := DefaultConfig()
	return flatten(mapConcurrent(prod, cfg, mapp), cfg)
}

// flatten returns a producer that produces the elements of each producer produced by prods, in order.
func flatten[U any](prods ProducerFunc[ProducerFunc[U]], cfg Config) ProducerFunc[U] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan U {
		ch := prods(ctx, cancel)

		outCh := make(chan U)

		go func() {
			defer close(outCh)
			defer recoverCallback(cfg, cancel)

			for prod := range ch {
				if prod == nil {
					continue
				}

				for elem := range prod(ctx, cancel) {
					if !send(ctx, outCh, elem) {
						return
					}
				}
			}
		}()

		return outCh
	}
}

// Filter returns a producer that calls filter for each element produced by prod, and only produces elements for which
// filter returns true.
// A panicking filter cancels the stream with a PanicError.
func Filter[T any](prod ProducerFunc[T], filter PredicateFunc[T]) ProducerFunc[T] {
	return filterSequential(prod, DefaultConfig(), filter)
}

func filterSequential[T any](prod ProducerFunc[T], cfg Config, filter PredicateFunc[T]) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		ch := prod(ctx, cancel)

		outCh := make(chan T)

		go func() {
			defer close(outCh)
			defer recoverCallback(cfg, cancel)

			index := uint64(0)

			for elem := range ch {
				filterResult := filter(ctx, cancel, elem, index)

				if contextDone(ctx) {
					return
				}

				index++

				if !filterResult {
					continue
				}

				if !send(ctx, outCh, elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// FilterConcurrent returns a producer that concurrently calls filter for each element produced by prod, and only
// produces elements for which filter returns true.
// Up to GOMAXPROCS calls of filter run at the same time. The new producer produces elements in upstream order.
func FilterConcurrent[T any](prod ProducerFunc[T], filter PredicateFunc[T]) ProducerFunc[T] {
	return filterConcurrent(prod, DefaultConfig(), filter)
}

func filterConcurrent[T any](prod ProducerFunc[T], cfg Config, filter PredicateFunc[T]) ProducerFunc[T] {
	return produceOrdered(prod, cfg.Parallelism, cfg, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) (T, bool) {
		return elem, filter(ctx, cancel, elem, index)
	})
}

// Peek returns a producer that calls peek for each element produced by prod, in order, and produces the same elements.
func Peek[T any](prod ProducerFunc[T], peek ConsumerFunc[T]) ProducerFunc[T] {
	return peekSequential(prod, DefaultConfig(), peek)
}

func peekSequential[T any](prod ProducerFunc[T], cfg Config, peek ConsumerFunc[T]) ProducerFunc[T] {
	return mapSequential(prod, cfg, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) T {
		peek(ctx, cancel, elem, index)
		return elem
	})
}

// PeekConcurrent returns a producer that concurrently calls peek for each element produced by prod, and produces the
// same elements, in upstream order. The calls of peek are not ordered.
func PeekConcurrent[T any](prod ProducerFunc[T], peek ConsumerFunc[T]) ProducerFunc[T] {
	return peekConcurrent(prod, DefaultConfig(), peek)
}

func peekConcurrent[T any](prod ProducerFunc[T], cfg Config, peek ConsumerFunc[T]) ProducerFunc[T] {
	return mapConcurrent(prod, cfg, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) T {
		peek(ctx, cancel, elem, index)
		return elem
	})
}

// Limit returns a producer that produces the same elements as prod, in order, up to max elements.
func Limit[T any](prod ProducerFunc[T], max uint64) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		prodCtx, cancelProd := context.WithCancelCause(ctx)

		ch := prod(prodCtx, cancel)

		outCh := make(chan T)

		go func() {
			defer cancelProd(nil)

			defer close(outCh)

			if max == 0 {
				cancelProd(ErrLimitReached)
				return
			}

			done := uint64(0)

			for elem := range ch {
				if !send(ctx, outCh, elem) {
					return
				}

				done++
				if done == max {
					cancelProd(ErrLimitReached)
					return
				}
			}
		}()

		return outCh
	}
}

// Skip returns a producer that produces the same elements as prod, in order, skipping the first num elements.
func Skip[T any](prod ProducerFunc[T], num uint64) ProducerFunc[T] {
	return Filter(prod, func(_ context.Context, _ context.CancelCauseFunc, _ T, index uint64) bool {
		return index >= num
	})
}

// Sort returns a producer that consumes all elements from prod, sorts them using less, and produces them in sorted
// order. Equal elements keep their upstream order.
// A panicking less cancels the stream with a PanicError.
func Sort[T any](prod ProducerFunc[T], less LessFunc[T]) ProducerFunc[T] {
	return sortSequential(prod, DefaultConfig(), less)
}

func sortSequential[T any](prod ProducerFunc[T], cfg Config, less LessFunc[T]) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		ch := prod(ctx, cancel)

		outCh := make(chan T)

		go func() {
			defer close(outCh)
			defer recoverCallback(cfg, cancel)

			result := []T{}
			for elem := range ch {
				result = append(result, elem)
			}

			if contextDone(ctx) {
				return
			}

			slices.SortStableFunc(result, func(a T, b T) bool {
				return less(ctx, cancel, a, b)
			})

			if contextDone(ctx) {
				return
			}

			for _, elem := range result {
				if !send(ctx, outCh, elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// Distinct returns a producer that produces the elements produced by prod, in order, skipping elements equal to an
// element already produced.
func Distinct[T comparable](prod ProducerFunc[T]) ProducerFunc[T] {
	return DistinctBy(prod, func(elem T) T {
		return elem
	})
}

// DistinctBy returns a producer that produces the elements produced by prod, in order, skipping elements whose key
// equals the key of an element already produced.
// An unhashable key held in an interface cancels the stream with a PanicError.
func DistinctBy[T any, K comparable](prod ProducerFunc[T], key Function[T, K]) ProducerFunc[T] {
	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan T {
		seen := map[K]struct{}{}

		return Filter(prod, func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) bool {
			k := key(elem)

			if _, ok := seen[k]; ok {
				return false
			}

			seen[k] = struct{}{}

			return true
		})(ctx, cancel)
	}
}

// Identity returns a mapper that returns the same element it receives.
func Identity[T any]() MapperFunc[T, T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) T {
		return elem
	}
}

package gostreams

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/exp/constraints"
	"golang.org/x/sync/errgroup"
)

// ConsumerFunc consumes element elem.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type ConsumerFunc[T any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64)

// AccumulatorFunc folds element elem into the accumulator acc, returning acc, or a new accumulator.
// The index is the 0-based index of elem, in the order produced by the upstream producer.
type AccumulatorFunc[T any, A any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64, acc A) A

// FuncConsumer returns a consumer that calls each for each element.
func FuncConsumer[T any](each func(elem T)) ConsumerFunc[T] {
	return func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) {
		each(elem)
	}
}

// Reduce calls reduce for each element produced by prod, folding it into accumulator acc, returning the final accumulator.
// If prod or reduce cancel the stream's context, it returns the accumulator so far, and the cause of the cancelation.
func Reduce[T any, A any](ctx context.Context, prod ProducerFunc[T], acc A, reduce AccumulatorFunc[T, A]) (A, error) {
	err := Each(ctx, prod, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) {
		acc = reduce(ctx, cancel, elem, index, acc)
	})

	return acc, err
}

// ReduceSlice returns a slice of all elements produced by prod, in order.
func ReduceSlice[T any](ctx context.Context, prod ProducerFunc[T]) ([]T, error) {
	return Reduce(ctx, prod, []T{}, CollectSlice[T]())
}

// ReduceSet returns a set of all elements produced by prod.
func ReduceSet[T comparable](ctx context.Context, prod ProducerFunc[T]) (map[T]struct{}, error) {
	return Reduce(ctx, prod, map[T]struct{}{}, CollectSet[T]())
}

// Each calls each for each element produced by prod.
// If prod or each cancel the stream's context, it returns cause of the cancelation.
func Each[T any](ctx context.Context, prod ProducerFunc[T], each ConsumerFunc[T]) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	ch := prod(ctx, cancel)

	index := uint64(0)

	for elem := range ch {
		each(ctx, cancel, elem, index)

		if contextDone(ctx) {
			break
		}

		index++
	}

	return streamErr(ctx)
}

// EachConcurrent concurrently calls each for each element produced by prod.
// Up to GOMAXPROCS calls of each run at the same time, in undefined order.
// If prod or each cancel the stream's context, it returns cause of the cancelation.
func EachConcurrent[T any](ctx context.Context, prod ProducerFunc[T], each ConsumerFunc[T]) error {
	return eachConcurrent(ctx, prod, DefaultConfig(), each)
}

func eachConcurrent[T any](ctx context.Context, prod ProducerFunc[T], cfg Config, each ConsumerFunc[T]) error {
	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	ch := prod(ctx, cancel)

	grp := errgroup.Group{}
	grp.SetLimit(cfg.Parallelism)

	index := uint64(0)

	for elem := range ch {
		if contextDone(ctx) {
			break
		}

		elemIndex := index

		grp.Go(func() error {
			defer recoverCallback(cfg, cancel)

			each(ctx, cancel, elem, elemIndex)

			return nil
		})

		index++
	}

	_ = grp.Wait()

	return streamErr(ctx)
}

// streamErr returns the cause of ctx's cancelation, unless it was ErrShortCircuit.
func streamErr(ctx context.Context) error {
	err := context.Cause(ctx)
	if errors.Is(err, ErrShortCircuit) {
		err = nil
	}

	return err
}

// AnyMatch returns true as soon as pred returns true for an element produced by prod, that is, an element matches.
// If an element matches, it cancels the stream's context using ErrShortCircuit.
// If prod or pred cancel the stream's context, it returns an undefined result, and the cause of the cancelation.
func AnyMatch[T any](ctx context.Context, prod ProducerFunc[T], pred PredicateFunc[T]) (bool, error) {
	anyMatch := false

	err := Each(ctx, prod, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) {
		if !pred(ctx, cancel, elem, index) {
			return
		}

		anyMatch = true

		cancel(ErrShortCircuit)
	})

	return anyMatch, err
}

// AllMatch returns true if pred returns true for all elements produced by prod, that is, all elements match.
// If any element does not match, it cancels the stream's context using ErrShortCircuit.
// If prod or pred cancel the stream's context, it returns an undefined result, and the cause of the cancelation.
func AllMatch[T any](ctx context.Context, prod ProducerFunc[T], pred PredicateFunc[T]) (bool, error) {
	allMatch := true

	err := Each(ctx, prod, func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) {
		if pred(ctx, cancel, elem, index) {
			return
		}

		allMatch = false

		cancel(ErrShortCircuit)
	})

	return allMatch, err
}

// Count returns the number of elements produced by prod.
// If prod cancels the stream's context, it returns an undefined result, and the cause of the cancelation.
func Count[T any](ctx context.Context, prod ProducerFunc[T]) (uint64, error) {
	count := uint64(0)

	err := Each(ctx, prod, func(_ context.Context, _ context.CancelCauseFunc, _ T, _ uint64) {
		count++
	})

	return count, err
}

// MaxFunc returns the greatest element produced by prod according to less, and true.
// If prod produces no elements, it returns the zero value and false.
// Of several greatest elements, the first one is returned.
func MaxFunc[T any](ctx context.Context, prod ProducerFunc[T], less func(a T, b T) bool) (T, bool, error) {
	var max T

	found := false

	err := Each(ctx, prod, func(_ context.Context, _ context.CancelCauseFunc, elem T, _ uint64) {
		if !found || less(max, elem) {
			max = elem
			found = true
		}
	})

	return max, found, err
}

// Max returns the greatest element produced by prod, and true.
// If prod produces no elements, it returns the zero value and false.
func Max[T constraints.Ordered](ctx context.Context, prod ProducerFunc[T]) (T, bool, error) {
	return MaxFunc(ctx, prod, func(a T, b T) bool {
		return a < b
	})
}

// Joining returns the concatenation of all strings produced by prod, separated by sep.
func Joining(ctx context.Context, prod ProducerFunc[string], sep string) (string, error) {
	return JoiningWith(ctx, prod, sep, "", "")
}

// JoiningWith returns the concatenation of all strings produced by prod, separated by sep,
// enclosed in prefix and suffix.
func JoiningWith(ctx context.Context, prod ProducerFunc[string], sep string, prefix string, suffix string) (string, error) {
	builder := strings.Builder{}
	builder.WriteString(prefix)

	err := Each(ctx, prod, func(_ context.Context, _ context.CancelCauseFunc, elem string, index uint64) {
		if index > 0 {
			builder.WriteString(sep)
		}

		builder.WriteString(elem)
	})

	builder.WriteString(suffix)

	return builder.String(), err
}

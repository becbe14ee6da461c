package gostreams

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/matryer/is"
)

func TestCollectSlice(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	keys := accumulate(ctx, cancel, []string{}, CollectSlice[string](), "a", "bb", "a")

	is.Equal(keys, []string{"a", "bb", "a"})
}

func TestCollectSet(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	set := accumulate(ctx, cancel, map[string]struct{}{}, CollectSet[string](), "a", "bb", "a")

	is.Equal(set, map[string]struct{}{
		"a":  {},
		"bb": {},
	})
}

func TestCollectMap(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	// the last value for a key wins
	result := accumulate(ctx, cancel, map[string]int{}, CollectMap(entryKeyMapper[string, int](), entryValueMapper[string, int]()),
		NewEntry("a", 1), NewEntry("bb", 22), NewEntry("a", 3))

	is.Equal(result, map[string]int{
		"a":  3,
		"bb": 22,
	})

	is.NoErr(ctx.Err())
}

func TestCollectMapNoDuplicateKeys(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	result := accumulate(ctx, cancel, map[string]int{}, CollectMapNoDuplicateKeys(itoa, Identity[int]()), 1, 2, 3, 3)

	is.Equal(result, map[string]int{
		"1": 1,
		"2": 2,
		"3": 3,
	})

	is.True(errors.Is(ctx.Err(), context.Canceled))

	var err *DuplicateKeyError[string, int]

	is.True(errors.As(context.Cause(ctx), &err))
	is.True(errors.Is(err, ErrDuplicateKey))

	is.Equal(err.Key, "3")
	is.Equal(err.Existing, 3)
	is.Equal(err.Incoming, 3)
	is.Equal(err.Error(), "duplicate entry for key '3' (attempt to merge values '3' and '3')")
}

func TestCollectMapMerge(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	sum := func(existing int, incoming int) int {
		return existing + incoming
	}

	result := accumulate(ctx, cancel, map[string]int{}, CollectMapMerge(evenOddStr, Identity[int](), sum), 1, 2, 3, 4)

	is.Equal(result, map[string]int{
		"odd":  4,
		"even": 6,
	})

	is.NoErr(ctx.Err())
}

func TestCollectGroup(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	result := accumulate(ctx, cancel, map[int][]string{}, CollectGroup(entryValueMapper[string, int](), entryKeyMapper[string, int]()),
		NewEntry("a", 1), NewEntry("bb", 2), NewEntry("c", 1), NewEntry("dd", 2), NewEntry("eee", 3))

	is.Equal(result, map[int][]string{
		1: {"a", "c"},
		2: {"bb", "dd"},
		3: {"eee"},
	})
}

func TestCollectPartition(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancelCause(context.Background())
	defer cancel(nil)

	result := accumulate(ctx, cancel, map[bool][]string{}, CollectPartition(even, itoa), 1, 2, 3, 4, 5)

	is.Equal(result, map[bool][]string{
		false: {"1", "3", "5"},
		true:  {"2", "4"},
	})
}

func TestCollectors(t *testing.T) {
	is := is.New(t)

	counting := Counting[string]()
	count := counting.Accumulator(counting.Accumulator(counting.Supplier(), "a"), "b")
	is.Equal(count, 2)

	summing := Summing[float64]()
	sum := summing.Accumulator(summing.Accumulator(summing.Supplier(), 1.5), 2)
	is.Equal(sum, 3.5)

	listing := Listing[int]()
	list := listing.Accumulator(listing.Accumulator(listing.Supplier(), 1), 2)
	is.Equal(list, []int{1, 2})
}

// accumulate feeds elems into acc using collect, stopping early if ctx is canceled.
func accumulate[T any, A any](ctx context.Context, cancel context.CancelCauseFunc, acc A, collect AccumulatorFunc[T, A], elems ...T) A {
	for index, elem := range elems {
		if contextDone(ctx) {
			break
		}

		acc = collect(ctx, cancel, elem, uint64(index), acc)
	}

	return acc
}

func itoa(_ context.Context, _ context.CancelCauseFunc, elem int, _ uint64) string {
	return strconv.Itoa(elem)
}

func even(_ context.Context, _ context.CancelCauseFunc, elem int, _ uint64) bool {
	return elem%2 == 0
}

func evenOddStr(_ context.Context, _ context.CancelCauseFunc, elem int, _ uint64) string {
	if elem%2 != 0 {
		return "odd"
	}

	return "even"
}

package gostreams

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestReduce(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	lengths := MapKeyValue(Indexed([]string{"a", "bb", "ccc", "dddd"}), func(index int, word string) int {
		return index + len(word)
	})

	summer := func(_ context.Context, _ context.CancelCauseFunc, elem int, index uint64, acc int) int {
		is.Equal(uint64(elem), 2*index+1)

		return acc + elem
	}

	result, err := Reduce(ctx, lengths, 0, summer)

	is.NoErr(err)
	is.Equal(result, 16)
}

func TestReduce_Cancel(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	summer := func(_ context.Context, cancel context.CancelCauseFunc, elem int, index uint64, acc int) int {
		is.True(elem <= 3)
		is.Equal(index, uint64(elem-1))

		if elem == 3 {
			cancel(nil)
			return acc
		}

		return acc + elem
	}

	result, err := Reduce(ctx, ints, 0, summer)

	is.Equal(result, 3)
	is.True(errors.Is(err, context.Canceled))
}

func TestReduce_ShortCircuit(t *testing.T) {
	is := is.New(t)

	ints := Produce([]int{1, 2, 3, 4, 5})

	result, err := Reduce(context.Background(), ints, 0, func(_ context.Context, cancel context.CancelCauseFunc, elem int, _ uint64, acc int) int {
		if elem == 3 {
			cancel(ErrShortCircuit)
		}

		return acc + elem
	})

	is.NoErr(err)
	is.Equal(result, 6)
}

func TestReduce_CollectMapNoDuplicateKeys(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 3, 4, 5})

	result, err := Reduce(ctx, ints, map[string]int{}, CollectMapNoDuplicateKeys(itoa, Identity[int]()))

	is.Equal(result, map[string]int{
		"1": 1,
		"2": 2,
		"3": 3,
	})

	var cause *DuplicateKeyError[string, int]

	is.True(errors.As(err, &cause))
	is.Equal(cause.Key, "3")
	is.Equal(cause.Existing, 3)
	is.Equal(cause.Incoming, 3)
}

func TestEach(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	keys := []string{}

	err := Each(ctx, Indexed([]string{"a", "bb", "ccc"}).Invert().Entries(), func(_ context.Context, _ context.CancelCauseFunc, entry Entry[string, int], index uint64) {
		is.Equal(uint64(entry.Value()), index)

		keys = append(keys, entry.Key())
	})

	is.NoErr(err)
	is.Equal(keys, []string{"a", "bb", "ccc"})
}

func TestEach_Cancel(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	sum := 0

	summer := func(_ context.Context, cancel context.CancelCauseFunc, elem int, index uint64) {
		is.True(elem <= 3)
		is.Equal(index, uint64(elem-1))

		if elem == 3 {
			cancel(nil)
			return
		}

		sum += elem
	}

	err := Each(ctx, ints, summer)

	is.Equal(sum, 3)
	is.True(errors.Is(err, context.Canceled))
}

func TestEachConcurrent(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5})

	sum := atomic.Int32{}

	summer := func(_ context.Context, _ context.CancelCauseFunc, elem int, index uint64) {
		is.Equal(index, uint64(elem-1))

		sum.Add(int32(elem))
	}

	err := EachConcurrent(ctx, ints, summer)

	is.NoErr(err)
	is.Equal(int(sum.Load()), 15)
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name                 string
		match                func(ctx context.Context, prod ProducerFunc[int], pred PredicateFunc[int]) (bool, error)
		pred                 func(elem int) bool
		given                []int
		want                 bool
		wantProducerCanceled bool
	}{
		{
			name:  "AnyMatch none",
			match: AnyMatch[int],
			pred:  greaterThan10,
			given: []int{1, 2, 3, 4, 5, 1, 2, 3, 4, 5},
		},
		{
			name:                 "AnyMatch found",
			match:                AnyMatch[int],
			pred:                 greaterThan10,
			given:                []int{1, 2, 100, 4, 5, 1, 2, 3, 4, 5},
			want:                 true,
			wantProducerCanceled: true,
		},
		{
			name:  "AllMatch all",
			match: AllMatch[int],
			pred:  negate(greaterThan10),
			given: []int{1, 2, 3, 4, 5, 1, 2, 3, 4, 5},
			want:  true,
		},
		{
			name:                 "AllMatch mismatch",
			match:                AllMatch[int],
			pred:                 negate(greaterThan10),
			given:                []int{1, 2, 100, 4, 5, 1, 2, 3, 4, 5},
			wantProducerCanceled: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			is := is.New(t)

			ints, producerCancelCause := observedProducer(test.given)

			expectedIndex := uint64(0)

			result, err := test.match(context.Background(), ints, func(_ context.Context, _ context.CancelCauseFunc, elem int, index uint64) bool {
				is.Equal(index, expectedIndex)
				expectedIndex++

				return test.pred(elem)
			})

			is.NoErr(err)
			is.Equal(result, test.want)
			is.Equal(<-producerCancelCause != nil, test.wantProducerCanceled)
		})
	}
}

func TestCount(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	result, err := Count(ctx, Produce([]string{"foo", "bar", "baz"}))

	is.NoErr(err)
	is.Equal(result, uint64(3))

	result, _ = Count(ctx, createStream().Keys())
	is.Equal(result, uint64(3))
}

func TestEachConcurrent_Parallelism(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	running := atomic.Int32{}
	maxRunning := atomic.Int32{}

	err := eachConcurrent(ctx, ints, ApplyOptions(WithParallelism(2)), func(_ context.Context, _ context.CancelCauseFunc, _ int, _ uint64) {
		now := running.Add(1)
		defer running.Add(-1)

		for {
			seen := maxRunning.Load()
			if now <= seen || maxRunning.CompareAndSwap(seen, now) {
				break
			}
		}

		time.Sleep(time.Millisecond)
	})

	is.NoErr(err)
	is.True(maxRunning.Load() <= 2)
}

func TestEachConcurrent_Panic(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	ints := Produce([]int{1, 2, 3})

	err := EachConcurrent(ctx, ints, func(_ context.Context, _ context.CancelCauseFunc, elem int, _ uint64) {
		if elem == 2 {
			panic("boom")
		}
	})

	var panicErr *PanicError

	is.True(errors.As(err, &panicErr))
	is.Equal(panicErr.Value, "boom")
}

func TestReduceSlice(t *testing.T) {
	is := is.New(t)

	result, err := ReduceSlice(context.Background(), Produce([]string{"foo", "bar"}))

	is.NoErr(err)
	is.Equal(result, []string{"foo", "bar"})

	result, err = ReduceSlice(context.Background(), Empty[string]())

	is.NoErr(err)
	is.Equal(result, []string{})
}

func TestReduceSet(t *testing.T) {
	is := is.New(t)

	result, err := ReduceSet(context.Background(), Produce([]int{1, 2, 1, 3}))

	is.NoErr(err)
	is.Equal(result, map[int]struct{}{1: {}, 2: {}, 3: {}})
}

func TestMax(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	max, ok, err := Max(ctx, Produce([]int{3, 7, 1, 7, 2}))

	is.NoErr(err)
	is.True(ok)
	is.Equal(max, 7)

	_, ok, err = Max(ctx, Empty[int]())

	is.NoErr(err)
	is.True(!ok)
}

func TestMaxFunc_First(t *testing.T) {
	is := is.New(t)

	strs := Produce([]string{"a", "bb", "cc", "d"})

	max, ok, _ := MaxFunc(context.Background(), strs, func(a string, b string) bool {
		return len(a) < len(b)
	})

	is.True(ok)
	is.Equal(max, "bb")
}

func TestJoining(t *testing.T) {
	is := is.New(t)

	ctx := context.Background()

	str, err := Joining(ctx, Produce([]string{"a", "b", "c"}), ", ")

	is.NoErr(err)
	is.Equal(str, "a, b, c")

	str, _ = JoiningWith(ctx, Produce([]string{"a", "b"}), ";", "{", "}")
	is.Equal(str, "{a;b}")

	str, _ = JoiningWith(ctx, Empty[string](), ";", "{", "}")
	is.Equal(str, "{}")
}

// observedProducer returns a producer of given, and a channel that receives the cause of the producer's
// context cancelation, or nil if the producer produced all elements.
func observedProducer(given []int) (ProducerFunc[int], <-chan error) {
	cancelCause := make(chan error, 1)

	return func(ctx context.Context, _ context.CancelCauseFunc) <-chan int {
		outCh := make(chan int)

		go func() {
			var cause error

			defer func() {
				cancelCause <- cause
			}()

			defer close(outCh)

			for _, elem := range given {
				if !send(ctx, outCh, elem) {
					cause = context.Cause(ctx)
					return
				}
			}
		}()

		return outCh
	}, cancelCause
}

func greaterThan10(elem int) bool {
	return elem > 10
}

func negate[T any](pred func(elem T) bool) func(elem T) bool {
	return func(elem T) bool {
		return !pred(elem)
	}
}

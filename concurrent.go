package gostreams

import (
	"context"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

// result is the outcome of a callback for a single element.
// If keep is false, the element is dropped.
type result[U any] struct {
	elem U
	keep bool
}

// workFunc processes a single element in a worker goroutine.
type workFunc[T any, U any] func(ctx context.Context, cancel context.CancelCauseFunc, elem T, index uint64) (U, bool)

// produceOrdered returns a producer that calls work for each element produced by prod, using up to workers
// goroutines at the same time. Results are produced in the order of the upstream elements, regardless of
// the order in which the callbacks finish.
// A panicking callback cancels the stream with a PanicError.
func produceOrdered[T any, U any](prod ProducerFunc[T], workers int, cfg Config, work workFunc[T, U]) ProducerFunc[U] {
	workers = sanitizeParallelism(workers)

	return func(ctx context.Context, cancel context.CancelCauseFunc) <-chan U {
		ch := prod(ctx, cancel)

		// pending holds one future per upstream element, in upstream order.
		pending := make(chan chan result[U], workers)

		go func() {
			defer close(pending)

			grp := errgroup.Group{}
			grp.SetLimit(workers)

			defer func() {
				_ = grp.Wait()
			}()

			index := uint64(0)

			for elem := range ch {
				future := make(chan result[U], 1)

				if !send(ctx, pending, future) {
					return
				}

				elemIndex := index

				grp.Go(func() error {
					defer recoverCallback(cfg, cancel)

					outElem, keep := work(ctx, cancel, elem, elemIndex)
					future <- result[U]{elem: outElem, keep: keep}

					return nil
				})

				index++
			}
		}()

		outCh := make(chan U)

		go func() {
			defer close(outCh)

			for future := range pending {
				var res result[U]

				select {
				case res = <-future:

				case <-ctx.Done():
					return
				}

				if contextDone(ctx) {
					return
				}

				if !res.keep {
					continue
				}

				if !send(ctx, outCh, res.elem) {
					return
				}
			}
		}()

		return outCh
	}
}

// recoverCallback cancels the stream with a PanicError if the calling goroutine is panicking.
// It must be deferred directly.
func recoverCallback(cfg Config, cancel context.CancelCauseFunc) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()

	cfg.Logger.Debug("recovered panic in stream callback", "panic", rvr)

	cancel(&PanicError{
		Value: rvr,
		Stack: stack,
	})
}

package gostreams

import "context"

// contextDone returns true if ctx.Err() != nil.
func contextDone(ctx context.Context) bool {
	return ctx.Err() != nil
}

// send sends elem to ch, returning false if ctx is done before elem could be sent.
func send[T any](ctx context.Context, ch chan<- T, elem T) bool {
	select {
	case ch <- elem:
		return true

	case <-ctx.Done():
		return false
	}
}

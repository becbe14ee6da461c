package gostreams

import (
	"errors"
	"fmt"
)

var (
	// ErrShortCircuit is a generic error used to short-circuit a stream by canceling its context.
	ErrShortCircuit = errors.New("short circuit")

	// ErrLimitReached is the error used to short-circuit a stream by canceling its context to indicate that
	// the maximum number of elements given to Limit has been reached.
	ErrLimitReached = errors.New("limit reached")

	// ErrDuplicateKey is matched by every DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrImmutableEntry is returned when trying to change the value of an entry that is not backed by a map.
	ErrImmutableEntry = errors.New("entry is immutable")

	// ErrLengthMismatch is the error used to cancel a stream zipping slices of different lengths.
	ErrLengthMismatch = errors.New("length mismatch")

	// ErrCallbackPanic is matched by every PanicError.
	ErrCallbackPanic = errors.New("callback panicked")
)

// A DuplicateKeyError is used to short-circuit a stream by canceling its context to indicate that
// a key could not be added to a map because it already exists.
type DuplicateKeyError[K any, V any] struct {
	// Key is the key that was already in the map.
	Key K

	// Existing is the value already stored for Key.
	Existing V

	// Incoming is the value that could not be stored.
	Incoming V
}

// A PanicError is used to cancel a stream when a callback running in a worker goroutine panics.
type PanicError struct {
	// Value is the value passed to panic.
	Value any

	// Stack is the stack trace of the panicking goroutine.
	Stack []byte
}

// Error implements error.
func (e *DuplicateKeyError[K, V]) Error() string {
	return fmt.Sprintf("duplicate entry for key '%v' (attempt to merge values '%v' and '%v')", e.Key, e.Existing, e.Incoming)
}

// Unwrap returns ErrDuplicateKey.
func (e *DuplicateKeyError[K, V]) Unwrap() error {
	return ErrDuplicateKey
}

// Error implements error.
func (e *PanicError) Error() string {
	return fmt.Sprintf("callback panicked: %v", e.Value)
}

// Unwrap returns ErrCallbackPanic, or the panic value if it is an error.
func (e *PanicError) Unwrap() []error {
	if err, ok := e.Value.(error); ok {
		return []error{ErrCallbackPanic, err}
	}

	return []error{ErrCallbackPanic}
}

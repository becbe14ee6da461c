package gostreams

import (
	"context"
	"testing"

	"github.com/matryer/is"
)

func TestContextDone(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	is.True(!contextDone(ctx))

	cancel()
	is.True(contextDone(ctx))
}

func TestSend(t *testing.T) {
	is := is.New(t)

	ctx, cancel := context.WithCancel(context.Background())

	ch := make(chan int, 1)
	is.True(send(ctx, ch, 1))
	is.Equal(<-ch, 1)

	cancel()

	is.True(!send(ctx, make(chan int), 2))
}

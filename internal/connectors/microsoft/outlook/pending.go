package outlook

import (
	"context"
	"fmt"
)

// Pending is an in-flight operation that settles exactly once, either
// with a value or with an error. It has no cancellation path of its own:
// once started it runs to completion.
type Pending[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Start runs fn in its own goroutine and returns its pending result.
func Start[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		defer func() {
			if r := recover(); r != nil {
				p.err = fmt.Errorf("outlook: operation panicked: %v", r)
			}
		}()
		p.value, p.err = fn(ctx)
	}()
	return p
}

// Resolved returns an already settled operation.
func Resolved[T any](value T, err error) *Pending[T] {
	p := &Pending[T]{done: make(chan struct{}), value: value, err: err}
	close(p.done)
	return p
}

// Done is closed once the operation has settled.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Await blocks until the operation settles and returns its outcome.
func (p *Pending[T]) Await() (T, error) {
	<-p.done
	return p.value, p.err
}

// Then chains fn after p. A failure of p skips fn and is passed through.
func Then[T, U any](ctx context.Context, p *Pending[T], fn func(ctx context.Context, v T) (U, error)) *Pending[U] {
	return Start(ctx, func(ctx context.Context) (U, error) {
		v, err := p.Await()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, v)
	})
}

// AwaitAll waits for every operation and returns the values in order.
// The first error in order is returned once all have settled.
func AwaitAll[T any](ops ...*Pending[T]) ([]T, error) {
	values := make([]T, len(ops))
	var firstErr error
	for i, op := range ops {
		v, err := op.Await()
		if err != nil && firstErr == nil {
			firstErr = err
		}
		values[i] = v
	}
	return values, firstErr
}

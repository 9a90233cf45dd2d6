package outlook

import "context"

// Fetcher is an unfetched handle to a single resource.
type Fetcher[T any] struct {
	Entity
	id      string
	op      string
	hydrate hydrator[T]
}

func newFetcher[T any](c *Context, p Path, err error, id, op string, h hydrator[T]) Fetcher[T] {
	return Fetcher[T]{Entity: newEntity(c, p, err), id: id, op: op, hydrate: h}
}

// ID returns the identifier the handle was created with.
func (f *Fetcher[T]) ID() string {
	return f.id
}

// Fetch reads the resource. Every call issues a fresh remote read.
func (f *Fetcher[T]) Fetch(ctx context.Context) (T, error) {
	if f.id == "" {
		return execute(ctx, &f.Entity, f.op, f.hydrate, atSelf)
	}
	return execute(ctx, &f.Entity, f.op, f.hydrate, atSelf, f.id)
}

// itemFetcher builds a Fetcher for collection/id.
func itemFetcher[T any](e *Entity, id, op string, h hydrator[T]) Fetcher[T] {
	p, err := e.child(id)
	return newFetcher(e.ctx, p, err, id, op, h)
}

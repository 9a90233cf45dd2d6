package outlook

import (
	"context"
	"iter"
)

// CollectionFetcher is an unfetched handle to a collection with query options.
// The options persist across FetchAll calls until Reset. A CollectionFetcher
// is not safe for concurrent differently-parametrised queries; Clone it.
type CollectionFetcher[T any] struct {
	Entity
	query   *QueryBuilder
	op      string
	hydrate hydrator[T]
}

func newCollectionFetcher[T any](e *Entity, op string, h hydrator[T]) *CollectionFetcher[T] {
	return &CollectionFetcher[T]{
		Entity:  newEntity(e.ctx, e.path, e.err),
		query:   NewQueryBuilder(),
		op:      op,
		hydrate: h,
	}
}

// Top limits the number of results.
func (c *CollectionFetcher[T]) Top(n int) *CollectionFetcher[T] {
	c.query.Top(n)
	return c
}

// Skip skips the first n results.
func (c *CollectionFetcher[T]) Skip(n int) *CollectionFetcher[T] {
	c.query.Skip(n)
	return c
}

// Select restricts the returned properties.
func (c *CollectionFetcher[T]) Select(s string) *CollectionFetcher[T] {
	c.query.Select(s)
	return c
}

// Expand includes navigation properties inline.
func (c *CollectionFetcher[T]) Expand(s string) *CollectionFetcher[T] {
	c.query.Expand(s)
	return c
}

// Filter sets an OData filter expression.
func (c *CollectionFetcher[T]) Filter(s string) *CollectionFetcher[T] {
	c.query.Filter(s)
	return c
}

// Reset clears every query option.
func (c *CollectionFetcher[T]) Reset() *CollectionFetcher[T] {
	c.query.Reset()
	return c
}

// Query returns a snapshot of the current options.
func (c *CollectionFetcher[T]) Query() QueryOptions {
	return c.query.Serialize()
}

// Clone returns an independent fetcher for the same collection.
func (c *CollectionFetcher[T]) Clone() *CollectionFetcher[T] {
	return &CollectionFetcher[T]{
		Entity:  newEntity(c.ctx, c.path, c.err),
		query:   c.query.Clone(),
		op:      c.op,
		hydrate: c.hydrate,
	}
}

// FetchAll lists the collection with the current options.
// Items keep the server order. An empty collection yields an empty slice.
func (c *CollectionFetcher[T]) FetchAll(ctx context.Context) ([]T, error) {
	items, _, err := executeCollection(ctx, &c.Entity, c.op, c.hydrate, c.query.Serialize().BridgePayload())
	return items, err
}

// Page is one page of a collection listing.
type Page[T any] struct {
	Items []T
	// NextLink is the service continuation link, when one was sent.
	NextLink string
	// Cursor resumes after this page; empty when the page was the last.
	Cursor string
}

// FetchPage lists one page with the current options.
// A cursor is produced only when Top is set and the page came back full.
func (c *CollectionFetcher[T]) FetchPage(ctx context.Context) (*Page[T], error) {
	opts := c.query.Serialize()
	items, next, err := executeCollection(ctx, &c.Entity, c.op, c.hydrate, opts.BridgePayload())
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Items: items, NextLink: next}
	if opts.Top != nil && *opts.Top > 0 && len(items) == *opts.Top {
		skip := 0
		if opts.Skip != nil && *opts.Skip > 0 {
			skip = *opts.Skip
		}
		cursor := NewCursor()
		cursor.Skip = skip + len(items)
		cursor.PageSize = *opts.Top
		page.Cursor = cursor.Encode()
	}
	return page, nil
}

// ResumeFrom positions the query at an encoded cursor.
// An empty cursor leaves the options unchanged.
func (c *CollectionFetcher[T]) ResumeFrom(encoded string) error {
	if encoded == "" {
		return nil
	}
	cursor, err := DecodeCursor(encoded)
	if err != nil {
		return &LocalValidationError{Field: "cursor", Reason: err.Error(), Err: err}
	}
	c.query.Skip(cursor.Skip)
	if cursor.PageSize > 0 {
		c.query.Top(cursor.PageSize)
	}
	return nil
}

// All walks the whole collection in pages of pageSize, starting at the
// current Skip. The fetcher itself is not modified, so the sequence is
// restartable. A non-positive pageSize uses the client default.
func (c *CollectionFetcher[T]) All(ctx context.Context, pageSize int) iter.Seq2[T, error] {
	fallback := DefaultPageSize
	if c.ctx != nil && c.ctx.pageSize > 0 {
		fallback = c.ctx.pageSize
	}
	size := clampPageSize(pageSize, fallback)

	return func(yield func(T, error) bool) {
		walker := c.Clone()
		skip := 0
		if opts := walker.Query(); opts.Skip != nil && *opts.Skip > 0 {
			skip = *opts.Skip
		}

		for {
			items, err := walker.Top(size).Skip(skip).FetchAll(ctx)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			for _, item := range items {
				if !yield(item, nil) {
					return
				}
			}
			if len(items) < size {
				return
			}
			skip += len(items)
		}
	}
}

package outlook

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
	"github.com/custodia-labs/outlook-services/internal/logger"
)

// Context is the state shared by every handle created from one Client.
// Handles hold it by pointer and never copy it.
type Context struct {
	serviceRoot string
	pageSize    int
	tokens      driven.TokenProvider
	bridge      driven.RemoteBridge
}

// ServiceRoot returns the base URL of the service.
func (c *Context) ServiceRoot() string {
	return c.serviceRoot
}

// hydrator builds a typed result from one JSON document at a path.
type hydrator[T any] func(c *Context, p Path, raw []byte) (T, error)

// binder is implemented by every hydrated resource.
type binder[T any] interface {
	*T
	bind(c *Context, p Path)
}

// hydrateJSON decodes raw into a new T and binds it to p.
func hydrateJSON[T any, PT binder[T]](c *Context, p Path, raw []byte) (PT, error) {
	v := PT(new(T))
	if err := json.Unmarshal(raw, v); err != nil {
		return nil, err
	}
	v.bind(c, p)
	return v, nil
}

// hydrateMode selects the path a result is hydrated at.
type hydrateMode int

const (
	// atSelf hydrates at the entity's own path (fetch, update).
	atSelf hydrateMode = iota
	// atChild hydrates at path/<Id> (create).
	atChild
	// atSibling hydrates at parent(path)/<Id> (draft responses).
	atSibling
	// atMailbox hydrates at <mailbox>/<collection>/<Id> (copy, move), which
	// addresses the result whichever folder it landed in.
	atMailbox
)

// Entity is an addressable remote resource or collection.
// Every handle and hydrated resource embeds one.
type Entity struct {
	ctx  *Context
	path Path
	err  error
	nav  *navCache
}

func newEntity(c *Context, p Path, err error) Entity {
	return Entity{ctx: c, path: p, err: err, nav: newNavCache()}
}

func (e *Entity) bind(c *Context, p Path) {
	e.ctx = c
	e.path = p
	e.err = nil
	e.nav = newNavCache()
}

// Path returns the resource address.
func (e *Entity) Path() Path {
	return e.path
}

// Err returns the deferred navigation error, if any.
// Every remote operation on a handle with an error fails with it.
func (e *Entity) Err() error {
	return e.err
}

func (e *Entity) child(segment string) (Path, error) {
	if e.err != nil {
		return "", e.err
	}
	return Join(e.path, segment)
}

// navCache memoises navigation handles by segment.
type navCache struct {
	mu      sync.Mutex
	handles map[string]any
}

func newNavCache() *navCache {
	return &navCache{handles: make(map[string]any)}
}

// navigate returns the handle for segment, building it on first access.
func navigate[H any](e *Entity, segment string, build func(c *Context, p Path, err error) H) H {
	if e.nav == nil {
		e.nav = newNavCache()
	}

	e.nav.mu.Lock()
	defer e.nav.mu.Unlock()

	if h, ok := e.nav.handles[segment]; ok {
		return h.(H)
	}
	p, err := e.child(segment)
	h := build(e.ctx, p, err)
	e.nav.handles[segment] = h
	return h
}

// call obtains a token and runs one bridge operation.
func (e *Entity) call(ctx context.Context, op string, payload ...string) ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.ctx == nil || e.ctx.tokens == nil || e.ctx.bridge == nil {
		return nil, &LocalValidationError{Field: "context", Reason: "no client context", Err: ErrNotBound}
	}

	token, err := e.ctx.tokens.GetToken(ctx)
	if err != nil {
		logger.Debug("outlook: %s: token request failed: %v", op, err)
		return nil, normalizeError(op, err)
	}

	logger.Debug("outlook: %s %s", op, e.path)
	raw, err := e.ctx.bridge.Execute(ctx, driven.Call{
		Token:       token,
		ServiceRoot: e.ctx.serviceRoot,
		Path:        string(e.path),
		Operation:   op,
		Payload:     payload,
	})
	if err != nil {
		logger.Debug("outlook: %s %s failed: %v", op, e.path, err)
		return nil, normalizeError(op, err)
	}
	return raw, nil
}

// execute runs op and hydrates the single result.
func execute[T any](
	ctx context.Context, e *Entity, op string, h hydrator[T], mode hydrateMode, payload ...string,
) (T, error) {
	var zero T

	raw, err := e.call(ctx, op, payload...)
	if err != nil {
		return zero, err
	}

	p := e.path
	if mode != atSelf {
		id, err := resultID(raw)
		if err != nil {
			return zero, &TransportError{Op: op, Err: err}
		}
		base := e.path
		switch mode {
		case atSibling:
			base = e.path.Parent()
		case atMailbox:
			base = e.path.mailboxCollection()
		}
		if p, err = Join(base, id); err != nil {
			return zero, &TransportError{Op: op, Err: fmt.Errorf("%w: result has no Id", ErrMalformedResponse)}
		}
	}

	v, err := h(e.ctx, p, raw)
	if err != nil {
		return zero, &TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
	}
	return v, nil
}

// executeVoid runs op and discards any response body.
func executeVoid(ctx context.Context, e *Entity, op string, payload ...string) error {
	_, err := e.call(ctx, op, payload...)
	return err
}

// collectionEnvelope is the paging envelope of list responses.
type collectionEnvelope struct {
	Value    []json.RawMessage `json:"value"`
	NextLink string            `json:"@odata.nextLink"`
}

// executeCollection runs a list operation and hydrates every element at path/<Id>.
func executeCollection[T any](
	ctx context.Context, e *Entity, op string, h hydrator[T], payload ...string,
) ([]T, string, error) {
	raw, err := e.call(ctx, op, payload...)
	if err != nil {
		return nil, "", err
	}

	var env collectionEnvelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, "", &TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
	}

	items := make([]T, 0, len(env.Value))
	for _, elem := range env.Value {
		id, err := resultID(elem)
		if err != nil {
			return nil, "", &TransportError{Op: op, Err: err}
		}
		p, err := Join(e.path, id)
		if err != nil {
			return nil, "", &TransportError{Op: op, Err: err}
		}
		v, err := h(e.ctx, p, elem)
		if err != nil {
			return nil, "", &TransportError{Op: op, Err: fmt.Errorf("%w: %v", ErrMalformedResponse, err)}
		}
		items = append(items, v)
	}
	return items, env.NextLink, nil
}

func resultID(raw []byte) (string, error) {
	var doc struct {
		ID string `json:"Id"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if doc.ID == "" {
		return "", fmt.Errorf("%w: result has no Id", ErrMalformedResponse)
	}
	return doc.ID, nil
}

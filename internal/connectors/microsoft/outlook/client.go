package outlook

import (
	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// Client is the root of the resource graph.
// Every handle reached from it shares one Context.
type Client struct {
	Entity
}

// NewClient creates a client that obtains tokens from tokens and runs
// every operation through bridge. A nil cfg uses DefaultConfig.
func NewClient(cfg *Config, tokens driven.TokenProvider, bridge driven.RemoteBridge) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := *cfg
	c.normalise()

	ctx := &Context{
		serviceRoot: c.ServiceRoot,
		pageSize:    c.PageSize,
		tokens:      tokens,
		bridge:      bridge,
	}
	return &Client{Entity: newEntity(ctx, "", nil)}
}

// Context returns the shared client context.
func (c *Client) Context() *Context {
	return c.ctx
}

// Me returns the signed-in user.
func (c *Client) Me() *UserFetcher {
	return navigate(&c.Entity, "Me", func(ctx *Context, p Path, err error) *UserFetcher {
		return newUserFetcher(ctx, p, err, domain.DefaultUserID)
	})
}

// Users returns the users collection.
func (c *Client) Users() *Users {
	return navigate(&c.Entity, "Users", newUsers)
}

// User returns the user with the given id or address.
// The id "me" addresses the signed-in user.
func (c *Client) User(id string) *UserFetcher {
	return c.Users().GetUser(id)
}

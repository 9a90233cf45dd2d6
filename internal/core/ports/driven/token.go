package driven

import (
	"context"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
)

// TokenProvider supplies bearer tokens for remote calls.
// It is consulted once per remote call and may prompt the user.
type TokenProvider interface {
	GetToken(ctx context.Context) (string, error)
}

// TokenProviderFunc adapts a function to the TokenProvider interface.
type TokenProviderFunc func(ctx context.Context) (string, error)

// GetToken calls f.
func (f TokenProviderFunc) GetToken(ctx context.Context) (string, error) {
	return f(ctx)
}

// TokenStore persists OAuth tokens between runs.
type TokenStore interface {
	// Get returns the stored token or domain.ErrNotFound.
	Get(ctx context.Context, key domain.TokenKey) (*domain.OAuthToken, error)
	Save(ctx context.Context, key domain.TokenKey, token *domain.OAuthToken) error
	Delete(ctx context.Context, key domain.TokenKey) error
}

// TokenAcquirer obtains a fresh token interactively.
type TokenAcquirer interface {
	Acquire(ctx context.Context, key domain.TokenKey) (*domain.OAuthToken, error)
}

// TokenRefresher exchanges a refresh token for a new token without user interaction.
type TokenRefresher interface {
	Refresh(ctx context.Context, token *domain.OAuthToken) (*domain.OAuthToken, error)
}

// Package auth provides TokenProvider implementations for the outlook client.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maypok86/otter"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
	"github.com/custodia-labs/outlook-services/internal/logger"
)

// cacheTTL bounds how long a token is served from memory before the
// store is consulted again. Expiry is still checked on every read.
const cacheTTL = 30 * time.Minute

// CachedTokenProvider hands out access tokens for one TokenKey.
// It looks in memory, then the store, then refreshes, and finally signs
// the user in interactively.
type CachedTokenProvider struct {
	key       domain.TokenKey
	cache     otter.Cache[string, *domain.OAuthToken]
	store     driven.TokenStore
	refresher driven.TokenRefresher
	acquirer  driven.TokenAcquirer
}

var _ driven.TokenProvider = (*CachedTokenProvider)(nil)

// NewCachedTokenProvider creates a provider for key. refresher and acquirer
// may be nil; without an acquirer a missing token fails with ErrAuthRequired.
func NewCachedTokenProvider(
	key domain.TokenKey,
	store driven.TokenStore,
	refresher driven.TokenRefresher,
	acquirer driven.TokenAcquirer,
) (*CachedTokenProvider, error) {
	cache, err := otter.MustBuilder[string, *domain.OAuthToken](16).
		WithTTL(cacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("token cache: %w", err)
	}
	return &CachedTokenProvider{
		key:       key,
		cache:     cache,
		store:     store,
		refresher: refresher,
		acquirer:  acquirer,
	}, nil
}

// GetToken returns a valid access token.
func (p *CachedTokenProvider) GetToken(ctx context.Context) (string, error) {
	cacheKey := p.key.String()
	if tok, ok := p.cache.Get(cacheKey); ok && !tok.IsExpired() {
		return tok.AccessToken, nil
	}

	stored, err := p.store.Get(ctx, p.key)
	switch {
	case err == nil && !stored.IsExpired():
		p.cache.Set(cacheKey, stored)
		return stored.AccessToken, nil
	case err != nil && !errors.Is(err, domain.ErrNotFound):
		return "", fmt.Errorf("load token: %w", err)
	}

	if stored != nil && stored.RefreshToken != "" && p.refresher != nil {
		refreshed, err := p.refresher.Refresh(ctx, stored)
		if err == nil {
			return p.keep(ctx, refreshed)
		}
		logger.Debug("auth: refresh failed, signing in again: %v", err)
	}

	if p.acquirer == nil {
		return "", domain.ErrAuthRequired
	}
	acquired, err := p.acquirer.Acquire(ctx, p.key)
	if err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	return p.keep(ctx, acquired)
}

// Invalidate forgets the token in memory and in the store.
func (p *CachedTokenProvider) Invalidate(ctx context.Context) error {
	p.cache.Delete(p.key.String())
	return p.store.Delete(ctx, p.key)
}

// Close releases the in-memory cache.
func (p *CachedTokenProvider) Close() {
	p.cache.Close()
}

func (p *CachedTokenProvider) keep(ctx context.Context, tok *domain.OAuthToken) (string, error) {
	if tok == nil || tok.AccessToken == "" {
		return "", domain.ErrAuthRequired
	}
	if err := p.store.Save(ctx, p.key, tok); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}
	p.cache.Set(p.key.String(), tok)
	return tok.AccessToken, nil
}

// StaticTokenProvider returns a fixed access token, e.g. one supplied
// through the environment.
type StaticTokenProvider struct {
	token string
}

var _ driven.TokenProvider = (*StaticTokenProvider)(nil)

// NewStaticTokenProvider creates a provider for token.
func NewStaticTokenProvider(token string) *StaticTokenProvider {
	return &StaticTokenProvider{token: token}
}

// GetToken returns the fixed token or ErrAuthRequired when it is empty.
func (p *StaticTokenProvider) GetToken(_ context.Context) (string, error) {
	if p.token == "" {
		return "", domain.ErrAuthRequired
	}
	return p.token, nil
}

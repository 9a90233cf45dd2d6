package outlooktest

import (
	"context"
	"sync/atomic"

	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// Tokens is a TokenProvider that returns a fixed token or error and counts
// how often it was asked.
type Tokens struct {
	Token string
	Err   error

	requests atomic.Int64
}

var _ driven.TokenProvider = (*Tokens)(nil)

// NewTokens returns a provider that always yields token.
func NewTokens(token string) *Tokens {
	return &Tokens{Token: token}
}

// GetToken returns the configured token or error.
func (t *Tokens) GetToken(_ context.Context) (string, error) {
	t.requests.Add(1)
	if t.Err != nil {
		return "", t.Err
	}
	return t.Token, nil
}

// Requests returns the number of GetToken calls.
func (t *Tokens) Requests() int {
	return int(t.requests.Load())
}

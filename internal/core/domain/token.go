package domain

import (
	"strings"
	"time"
)

// TokenKey identifies a cached access token.
// Tokens are scoped to an application, the resource they grant access to
// and the signed-in user.
type TokenKey struct {
	ClientID string
	Resource string
	UserID   string
}

// String returns a stable cache key.
func (k TokenKey) String() string {
	return strings.Join([]string{k.ClientID, k.Resource, k.UserID}, "|")
}

// OAuthToken is an OAuth2 token pair as persisted by the token store.
type OAuthToken struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// ExpiryDelta is how long before expiry a token stops being handed out.
const ExpiryDelta = time.Minute

// IsExpired reports whether the access token is expired or about to expire.
// A zero expiry never expires.
func (t *OAuthToken) IsExpired() bool {
	if t == nil || t.AccessToken == "" {
		return true
	}
	if t.Expiry.IsZero() {
		return false
	}
	return time.Now().Add(ExpiryDelta).After(t.Expiry)
}

package domain

import "fmt"

// Default service endpoints. The resource types model the v1.0 schema,
// where event Start and End are plain timestamps.
const (
	DefaultServiceRoot = "https://outlook.office.com/api/v1.0"
	DefaultResourceURL = "https://outlook.office.com"
	DefaultTenant      = "common"
	DefaultUserID      = "me"
)

// DefaultScopes are requested when none are configured.
var DefaultScopes = []string{
	"offline_access",
	"https://outlook.office.com/User.Read",
	"https://outlook.office.com/Mail.ReadWrite",
	"https://outlook.office.com/Mail.Send",
	"https://outlook.office.com/Calendars.ReadWrite",
	"https://outlook.office.com/Contacts.ReadWrite",
}

// Settings holds user configuration.
type Settings struct {
	ServiceRoot string            `toml:"service_root"`
	ResourceURL string            `toml:"resource_url"`
	ClientID    string            `toml:"client_id"`
	Tenant      string            `toml:"tenant"`
	Scopes      []string          `toml:"scopes"`
	UserID      string            `toml:"user_id"`
	TokenDB     string            `toml:"token_db"`
	AccessToken string            `toml:"-"`
	RateLimit   RateLimitSettings `toml:"rate_limit"`
}

// RateLimitSettings configures client-side request pacing.
type RateLimitSettings struct {
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() *Settings {
	return &Settings{
		ServiceRoot: DefaultServiceRoot,
		ResourceURL: DefaultResourceURL,
		Tenant:      DefaultTenant,
		Scopes:      append([]string(nil), DefaultScopes...),
		UserID:      DefaultUserID,
		RateLimit: RateLimitSettings{
			RequestsPerSecond: 10,
			Burst:             15,
		},
	}
}

// ApplyDefaults fills zero-valued fields.
func (s *Settings) ApplyDefaults() {
	d := DefaultSettings()
	if s.ServiceRoot == "" {
		s.ServiceRoot = d.ServiceRoot
	}
	if s.ResourceURL == "" {
		s.ResourceURL = d.ResourceURL
	}
	if s.Tenant == "" {
		s.Tenant = d.Tenant
	}
	if len(s.Scopes) == 0 {
		s.Scopes = d.Scopes
	}
	if s.UserID == "" {
		s.UserID = d.UserID
	}
	if s.RateLimit.RequestsPerSecond <= 0 {
		s.RateLimit.RequestsPerSecond = d.RateLimit.RequestsPerSecond
	}
	if s.RateLimit.Burst <= 0 {
		s.RateLimit.Burst = d.RateLimit.Burst
	}
}

// Validate checks that the settings allow a token to be obtained.
func (s *Settings) Validate() error {
	if s.AccessToken != "" {
		return nil
	}
	if s.ClientID == "" {
		return fmt.Errorf("client_id: %w", ErrNotConfigured)
	}
	return nil
}

// TokenKey returns the cache key for the configured account.
func (s *Settings) TokenKey() TokenKey {
	return TokenKey{ClientID: s.ClientID, Resource: s.ResourceURL, UserID: s.UserID}
}

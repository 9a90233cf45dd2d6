package microsoft

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
	"github.com/custodia-labs/outlook-services/internal/core/ports/driven"
)

// Microsoft identity platform endpoint templates. %s is the tenant.
const (
	authURLTemplate       = "https://login.microsoftonline.com/%s/oauth2/v2.0/authorize"
	deviceAuthURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/devicecode"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	tokenURLTemplate = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

// Endpoint returns the identity platform endpoint for a tenant.
// An empty tenant uses "common" for multi-tenant sign-in.
func Endpoint(tenant string) oauth2.Endpoint {
	if tenant == "" {
		tenant = domain.DefaultTenant
	}
	return oauth2.Endpoint{
		AuthURL:       fmt.Sprintf(authURLTemplate, tenant),
		DeviceAuthURL: fmt.Sprintf(deviceAuthURLTemplate, tenant),
		TokenURL:      fmt.Sprintf(tokenURLTemplate, tenant),
		AuthStyle:     oauth2.AuthStyleInParams,
	}
}

// DeviceCodePrompt shows the user where to enter the device code.
type DeviceCodePrompt func(resp *oauth2.DeviceAuthResponse)

// OAuthHandler acquires and refreshes tokens for a public client.
// Interactive sign-in uses the device authorization grant so it works in a terminal.
type OAuthHandler struct {
	config *oauth2.Config
	prompt DeviceCodePrompt
}

var (
	_ driven.TokenAcquirer  = (*OAuthHandler)(nil)
	_ driven.TokenRefresher = (*OAuthHandler)(nil)
)

// NewOAuthHandler creates a handler for the configured application.
func NewOAuthHandler(settings *domain.Settings, prompt DeviceCodePrompt) *OAuthHandler {
	scopes := settings.Scopes
	if len(scopes) == 0 {
		scopes = domain.DefaultScopes
	}
	return &OAuthHandler{
		config: &oauth2.Config{
			ClientID: settings.ClientID,
			Endpoint: Endpoint(settings.Tenant),
			Scopes:   scopes,
		},
		prompt: prompt,
	}
}

// NewOAuthHandlerWithConfig creates a handler around an existing oauth2 config.
func NewOAuthHandlerWithConfig(cfg *oauth2.Config, prompt DeviceCodePrompt) *OAuthHandler {
	return &OAuthHandler{config: cfg, prompt: prompt}
}

// Config returns the underlying oauth2 configuration.
func (h *OAuthHandler) Config() *oauth2.Config {
	return h.config
}

// Acquire runs the device code flow and blocks until the user signs in.
func (h *OAuthHandler) Acquire(ctx context.Context, _ domain.TokenKey) (*domain.OAuthToken, error) {
	resp, err := h.config.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("device authorization: %w", err)
	}
	if h.prompt != nil {
		h.prompt(resp)
	}

	tok, err := h.config.DeviceAccessToken(ctx, resp)
	if err != nil {
		return nil, fmt.Errorf("device token: %w", err)
	}
	return FromOAuth2Token(tok), nil
}

// Refresh exchanges the refresh token for a new access token.
// The previous refresh token is kept when the service does not rotate it.
func (h *OAuthHandler) Refresh(ctx context.Context, token *domain.OAuthToken) (*domain.OAuthToken, error) {
	if token == nil || token.RefreshToken == "" {
		return nil, fmt.Errorf("refresh: %w", domain.ErrAuthRequired)
	}

	src := h.config.TokenSource(ctx, &oauth2.Token{RefreshToken: token.RefreshToken})
	tok, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("token refresh: %w", err)
	}

	refreshed := FromOAuth2Token(tok)
	if refreshed.RefreshToken == "" {
		refreshed.RefreshToken = token.RefreshToken
	}
	return refreshed, nil
}

// SetupHint returns guidance for registering an application.
func (h *OAuthHandler) SetupHint() string {
	return "Register a public client at portal.azure.com > App registrations and enable device code flow"
}

// FromOAuth2Token converts an oauth2 token to the stored form.
func FromOAuth2Token(tok *oauth2.Token) *domain.OAuthToken {
	return &domain.OAuthToken{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}
}

package microsoft

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/outlook-services/internal/core/domain"
)

func TestEndpoint(t *testing.T) {
	ep := Endpoint("")
	assert.Equal(t, "https://login.microsoftonline.com/common/oauth2/v2.0/authorize", ep.AuthURL)
	assert.Equal(t, "https://login.microsoftonline.com/common/oauth2/v2.0/devicecode", ep.DeviceAuthURL)
	assert.Equal(t, "https://login.microsoftonline.com/common/oauth2/v2.0/token", ep.TokenURL)

	ep = Endpoint("contoso.onmicrosoft.com")
	assert.Contains(t, ep.TokenURL, "/contoso.onmicrosoft.com/")
}

func TestNewOAuthHandler_DefaultScopes(t *testing.T) {
	handler := NewOAuthHandler(&domain.Settings{ClientID: "app"}, nil)

	require.NotNil(t, handler)
	assert.Equal(t, "app", handler.Config().ClientID)
	assert.Equal(t, domain.DefaultScopes, handler.Config().Scopes)
	assert.NotEmpty(t, handler.SetupHint())
}

func newTokenServer(t *testing.T, grants *int32, refreshToken string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/devicecode", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"device_code":      "dev-code",
			"user_code":        "ABCD-EFGH",
			"verification_uri": "https://microsoft.com/devicelogin",
			"expires_in":       60,
			"interval":         1,
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(grants, 1)
		require.NoError(t, r.ParseForm())
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"access_token": "access-" + r.PostForm.Get("grant_type"),
			"token_type":   "Bearer",
			"expires_in":   3600,
		}
		if refreshToken != "" {
			resp["refresh_token"] = refreshToken
		}
		_ = json.NewEncoder(w).Encode(resp)
	})
	return httptest.NewServer(mux)
}

func testConfig(serverURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID: "app",
		Endpoint: oauth2.Endpoint{
			DeviceAuthURL: serverURL + "/devicecode",
			TokenURL:      serverURL + "/token",
			AuthStyle:     oauth2.AuthStyleInParams,
		},
		Scopes: []string{"offline_access"},
	}
}

func TestOAuthHandler_Refresh(t *testing.T) {
	var grants int32
	srv := newTokenServer(t, &grants, "")
	defer srv.Close()

	handler := NewOAuthHandlerWithConfig(testConfig(srv.URL), nil)

	tok, err := handler.Refresh(context.Background(), &domain.OAuthToken{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "access-refresh_token", tok.AccessToken)
	assert.Equal(t, "old-refresh", tok.RefreshToken, "unrotated refresh token is kept")
	assert.False(t, tok.Expiry.IsZero())
	assert.Equal(t, int32(1), atomic.LoadInt32(&grants))
}

func TestOAuthHandler_Refresh_RotatedToken(t *testing.T) {
	var grants int32
	srv := newTokenServer(t, &grants, "new-refresh")
	defer srv.Close()

	handler := NewOAuthHandlerWithConfig(testConfig(srv.URL), nil)

	tok, err := handler.Refresh(context.Background(), &domain.OAuthToken{RefreshToken: "old-refresh"})

	require.NoError(t, err)
	assert.Equal(t, "new-refresh", tok.RefreshToken)
}

func TestOAuthHandler_Refresh_NoRefreshToken(t *testing.T) {
	handler := NewOAuthHandlerWithConfig(testConfig("http://127.0.0.1:0"), nil)

	_, err := handler.Refresh(context.Background(), &domain.OAuthToken{AccessToken: "a"})

	assert.True(t, errors.Is(err, domain.ErrAuthRequired))
}

func TestOAuthHandler_Acquire_DeviceFlow(t *testing.T) {
	var grants int32
	srv := newTokenServer(t, &grants, "r")
	defer srv.Close()

	var prompted *oauth2.DeviceAuthResponse
	handler := NewOAuthHandlerWithConfig(testConfig(srv.URL), func(resp *oauth2.DeviceAuthResponse) {
		prompted = resp
	})

	tok, err := handler.Acquire(context.Background(), domain.TokenKey{ClientID: "app"})

	require.NoError(t, err)
	require.NotNil(t, prompted)
	assert.Equal(t, "ABCD-EFGH", prompted.UserCode)
	assert.Equal(t, "access-urn:ietf:params:oauth:grant-type:device_code", tok.AccessToken)
	assert.Equal(t, "r", tok.RefreshToken)
}

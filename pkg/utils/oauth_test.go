package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/jakechorley/duty-rota/internal/config"
)

func TestMissingScopes(t *testing.T) {
	granted := ScopeSheets + " " + ScopeGmailSend + " openid"

	assert.Equal(t, []string{ScopeCalendarReadonly}, MissingScopes(granted, RequiredScopes()))
	assert.Empty(t, MissingScopes(granted+" "+ScopeCalendarReadonly, RequiredScopes()))
	assert.Equal(t, RequiredScopes(), MissingScopes("", RequiredScopes()))
}

func TestTokenStore_RoundTrip(t *testing.T) {
	store := NewTokenStore(t.TempDir() + "/tokens")

	token, err := store.Load("test")
	require.NoError(t, err)
	assert.Nil(t, token, "no token saved yet")

	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save("test", &oauth2.Token{AccessToken: "abc", RefreshToken: "def", Expiry: expiry}))

	info, err := os.Stat(store.path("test"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(tokenFilePerms), info.Mode().Perm())

	token, err = store.Load("test")
	require.NoError(t, err)
	require.NotNil(t, token)
	assert.Equal(t, "abc", token.AccessToken)
	assert.True(t, token.Expiry.Equal(expiry))

	other, err := store.Load("prod")
	require.NoError(t, err)
	assert.Nil(t, other, "tokens are per environment")

	require.NoError(t, store.Delete("test"))
	require.NoError(t, store.Delete("test"), "deleting twice is fine")
}

func TestGetOAuthConfig(t *testing.T) {
	cfg := &config.OAuthClientConfig{Installed: config.OAuthInstalled{
		ClientID:                "id.apps.googleusercontent.com",
		ProjectID:               "duty",
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientSecret:            "secret",
		RedirectURIs:            []string{"http://localhost"},
	}}

	oauthCfg, err := GetOAuthConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "id.apps.googleusercontent.com", oauthCfg.ClientID)
	assert.Equal(t, RequiredScopes(), oauthCfg.Scopes)
	assert.Equal(t, "http://localhost:3000/oauth/callback", oauthCfg.RedirectURL)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInstalled() OAuthInstalled {
	return OAuthInstalled{
		ClientID:                "duty-client.apps.googleusercontent.com",
		ProjectID:               "duty-schedule",
		AuthURI:                 "https://accounts.google.com/o/oauth2/auth",
		TokenURI:                "https://oauth2.googleapis.com/token",
		AuthProviderX509CertURL: "https://www.googleapis.com/oauth2/v1/certs",
		ClientSecret:            "secret",
		RedirectURIs:            []string{"http://localhost"},
	}
}

func TestValidateOAuthClient(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OAuthInstalled)
		wantErr bool
	}{
		{"valid", func(*OAuthInstalled) {}, false},
		{"missing client id", func(i *OAuthInstalled) { i.ClientID = "" }, true},
		{"invalid auth uri", func(i *OAuthInstalled) { i.AuthURI = "not-a-url" }, true},
		{"no redirect uris", func(i *OAuthInstalled) { i.RedirectURIs = nil }, true},
		{"web redirect only", func(i *OAuthInstalled) { i.RedirectURIs = []string{"https://duty.example.com/callback"} }, true},
		{"loopback ip", func(i *OAuthInstalled) { i.RedirectURIs = []string{"urn:ietf:wg:oauth:2.0:oob", "http://127.0.0.1"} }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			installed := validInstalled()
			tt.mutate(&installed)

			err := ValidateOAuthClient(&OAuthClientConfig{Installed: installed})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "oauth client validation failed")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadOAuthClientFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.json")
	content := `{"installed":{
		"client_id":"duty-client.apps.googleusercontent.com",
		"project_id":"duty-schedule",
		"auth_uri":"https://accounts.google.com/o/oauth2/auth",
		"token_uri":"https://oauth2.googleapis.com/token",
		"auth_provider_x509_cert_url":"https://www.googleapis.com/oauth2/v1/certs",
		"client_secret":"secret",
		"redirect_uris":["http://localhost"]
	}}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadOAuthClientFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "duty-schedule", cfg.Installed.ProjectID)
}

func TestLoadOAuthClientFromPath_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oauthClient.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

	_, err := LoadOAuthClientFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse oauth client file")
}

package shared

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		spotify := config.Credentials.Spotify
		if spotify.RedirectURI != "http://localhost:3000/auth/callback" {
			t.Errorf("unexpected default redirect URI %s", spotify.RedirectURI)
		}
		if spotify.Scope != "user-top-read" {
			t.Errorf("unexpected default scope %s", spotify.Scope)
		}
		if config.Credentials.Gemini.Model != "gemini-2.0-flash" {
			t.Errorf("unexpected default model %s", config.Credentials.Gemini.Model)
		}
		if config.Server.Addr() != "localhost:3000" {
			t.Errorf("unexpected default address %s", config.Server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error creating config over existing file")
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}
		if config.Credentials.Spotify.Scope != "user-top-read" {
			t.Errorf("unexpected scope in created config: %s", config.Credentials.Spotify.Scope)
		}
	})

	t.Run("LoadConfig Missing File", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeFile(t, path, "credentials = [broken")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("Save And Load Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Spotify.ClientID = "saved_client_id"
		config.Credentials.Spotify.AccessToken = "saved_token"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}
		if loaded.Credentials.Spotify.ClientID != "saved_client_id" {
			t.Errorf("unexpected client ID %s", loaded.Credentials.Spotify.ClientID)
		}
		if loaded.Credentials.Spotify.AccessToken != "saved_token" {
			t.Errorf("unexpected access token %s", loaded.Credentials.Spotify.AccessToken)
		}
	})

	t.Run("ApplyEnv Overrides File Values", func(t *testing.T) {
		t.Setenv("SPOTIFY_CLIENT_ID", "env_client_id")
		t.Setenv("GEMINI_API_KEY", "env_api_key")

		config := &Config{}
		config.Credentials.Spotify.ClientID = "file_client_id"
		config.ApplyEnv()

		if config.Credentials.Spotify.ClientID != "env_client_id" {
			t.Errorf("expected env override, got %s", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.Gemini.APIKey != "env_api_key" {
			t.Errorf("expected env API key, got %s", config.Credentials.Gemini.APIKey)
		}
	})
}

func TestSpotifyConfigToken(t *testing.T) {
	t.Run("No Saved Token", func(t *testing.T) {
		s := SpotifyConfig{}
		if s.Token() != nil {
			t.Error("expected nil token without saved credentials")
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
		token := &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			Expiry:       expiry,
		}

		s := SpotifyConfig{}
		if err := s.Update(token); err != nil {
			t.Fatalf("failed to update: %v", err)
		}

		restored := s.Token()
		if restored.AccessToken != "access" || restored.RefreshToken != "refresh" {
			t.Errorf("unexpected restored token %+v", restored)
		}
		if !restored.Expiry.Equal(expiry) {
			t.Errorf("expected expiry %v, got %v", expiry, restored.Expiry)
		}
	})

	t.Run("Update Keeps Refresh Token", func(t *testing.T) {
		s := SpotifyConfig{RefreshToken: "original_refresh"}

		if err := s.Update(&oauth2.Token{AccessToken: "new_access"}); err != nil {
			t.Fatalf("failed to update: %v", err)
		}
		if s.RefreshToken != "original_refresh" {
			t.Errorf("expected refresh token preserved, got %s", s.RefreshToken)
		}
	})

	t.Run("Empty Token Rejected", func(t *testing.T) {
		s := SpotifyConfig{}
		if err := s.Update(nil); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}

func TestSpotifyConfigMap(t *testing.T) {
	s := SpotifyConfig{
		ClientID:     "id",
		ClientSecret: "secret",
		RedirectURI:  "http://localhost:3000/auth/callback",
		Scope:        "user-top-read",
	}

	m := s.Map()
	if m["client_id"] != "id" || m["client_secret"] != "secret" {
		t.Errorf("unexpected credential map %v", m)
	}
	if m["scope"] != "user-top-read" {
		t.Errorf("unexpected scope %s", m["scope"])
	}
}

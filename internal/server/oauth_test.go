package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spotcheck/internal/shared"
	mocks "github.com/desertthunder/spotcheck/internal/testing"
	"golang.org/x/oauth2"
)

// newTokenServer fakes the provider token endpoint for code exchange.
func newTokenServer(t *testing.T) *httptest.Server {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token": "exchanged_token", "token_type": "Bearer", "expires_in": 3600}`))
	}))
	t.Cleanup(ts.Close)

	return ts
}

func newOAuthConfig(tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     "test_client_id",
		ClientSecret: "test_client_secret",
		RedirectURL:  "http://localhost:3000/auth/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: tokenURL + "/authorize", TokenURL: tokenURL + "/token"},
	}
}

func TestOAuthHandler(t *testing.T) {
	t.Run("Successful Callback", func(t *testing.T) {
		ts := newTokenServer(t)
		handler := NewOAuthHandler(newOAuthConfig(ts.URL), "test_state")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state=test_state", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Fatalf("expected no error, got %v", result.Error())
		}
		if result.Token.AccessToken != "exchanged_token" {
			t.Errorf("expected exchanged token, got %s", result.Token.AccessToken)
		}
	})

	t.Run("Invalid State", func(t *testing.T) {
		ts := newTokenServer(t)
		handler := NewOAuthHandler(newOAuthConfig(ts.URL), "test_state")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state=wrong", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Provider Denied", func(t *testing.T) {
		ts := newTokenServer(t)
		handler := NewOAuthHandler(newOAuthConfig(ts.URL), "test_state")

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?error=access_denied&state=test_state", nil))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}

		result := <-handler.Result()
		if !errors.Is(result.Error(), shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", result.Error())
		}
	})

	t.Run("Second Callback Rejected", func(t *testing.T) {
		ts := newTokenServer(t)
		handler := NewOAuthHandler(newOAuthConfig(ts.URL), "test_state")

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state=test_state", nil))
		if first.Code != http.StatusOK {
			t.Fatalf("expected first callback to succeed, got %d", first.Code)
		}

		replay := httptest.NewRecorder()
		handler.ServeHTTP(replay, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state=test_state", nil))
		if replay.Code != http.StatusBadRequest {
			t.Errorf("expected replayed callback rejected with 400, got %d", replay.Code)
		}
	})
}

func TestLoginHandler(t *testing.T) {
	newService := func(t *testing.T) *mocks.MockOAuthService {
		t.Helper()
		ts := newTokenServer(t)
		return &mocks.MockOAuthService{Config: newOAuthConfig(ts.URL)}
	}

	// loginState starts a login and extracts the issued state token from the
	// consent page redirect.
	loginState := func(t *testing.T, handler *LoginHandler) string {
		t.Helper()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/login", nil))

		if rec.Code != http.StatusFound {
			t.Fatalf("expected redirect to consent page, got %d", rec.Code)
		}

		location, err := rec.Result().Location()
		if err != nil {
			t.Fatalf("expected Location header: %v", err)
		}

		state := location.Query().Get("state")
		if state == "" {
			t.Fatal("expected state in consent URL")
		}

		return state
	}

	t.Run("Full Flow", func(t *testing.T) {
		svc := newService(t)

		persisted := false
		handler := NewLoginHandler(svc, func(token *oauth2.Token) error {
			persisted = true
			return nil
		})

		state := loginState(t, handler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state="+state, nil))

		if rec.Code != http.StatusFound {
			t.Fatalf("expected redirect home after login, got %d", rec.Code)
		}
		if svc.LastToken == nil || svc.LastToken.AccessToken != "exchanged_token" {
			t.Errorf("expected token installed on service, got %+v", svc.LastToken)
		}
		if !persisted {
			t.Error("expected onToken hook to run")
		}
	})

	t.Run("Callback Replay Fails", func(t *testing.T) {
		svc := newService(t)
		handler := NewLoginHandler(svc, nil)

		state := loginState(t, handler)
		callback := "/auth/callback?code=test_code&state=" + state

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, callback, nil))
		if first.Code != http.StatusFound {
			t.Fatalf("expected first callback to succeed, got %d", first.Code)
		}

		replay := httptest.NewRecorder()
		handler.ServeHTTP(replay, httptest.NewRequest(http.MethodGet, callback, nil))
		if replay.Code != http.StatusBadRequest {
			t.Errorf("expected replayed state rejected, got %d", replay.Code)
		}
		if !strings.Contains(replay.Body.String(), "state") {
			t.Errorf("expected state error message, got %q", replay.Body.String())
		}
	})

	t.Run("Unknown State Rejected", func(t *testing.T) {
		handler := NewLoginHandler(newService(t), nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?code=test_code&state=forged", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for unknown state, got %d", rec.Code)
		}
	})

	t.Run("Missing Code", func(t *testing.T) {
		handler := NewLoginHandler(newService(t), nil)
		state := loginState(t, handler)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/callback?state="+state, nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for missing code, got %d", rec.Code)
		}
	})
}

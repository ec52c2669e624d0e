package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"golang.org/x/oauth2"
)

// stateTTL bounds how long an issued state token stays valid.
const stateTTL = 5 * time.Minute

// LoginHandler drives the authorization code flow for the long-running web
// server: /auth/login redirects to the consent page and /auth/callback
// exchanges the code and installs the token on the service.
//
// Unlike [OAuthHandler], which serves exactly one CLI login and shuts down,
// this handler stays registered. Each login issues a fresh state token that
// is deleted when its callback arrives, so a replayed callback URL fails.
type LoginHandler struct {
	svc     services.OAuthService
	onToken func(*oauth2.Token) error

	mu     sync.Mutex
	states map[string]time.Time
}

// NewLoginHandler creates the web login handler. onToken, if non-nil, runs
// after a successful exchange (the server uses it to persist credentials).
func NewLoginHandler(svc services.OAuthService, onToken func(*oauth2.Token) error) *LoginHandler {
	return &LoginHandler{
		svc:     svc,
		onToken: onToken,
		states:  make(map[string]time.Time),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *LoginHandler) Routes() []string {
	return []string{
		"GET /auth/login",
		"GET /auth/callback",
	}
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/auth/login":
		h.login(w, r)
	case "/auth/callback":
		h.callback(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *LoginHandler) login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		http.Error(w, "Failed to generate state token", http.StatusInternalServerError)
		return
	}

	h.mu.Lock()
	for s, issued := range h.states {
		if time.Since(issued) > stateTTL {
			delete(h.states, s)
		}
	}
	h.states[state] = time.Now()
	h.mu.Unlock()

	http.Redirect(w, r, h.svc.GetAuthURL(state), http.StatusFound)
}

func (h *LoginHandler) callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")

	if !h.consumeState(state) {
		http.Error(w, "Invalid or expired state parameter", http.StatusBadRequest)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		errParam := r.URL.Query().Get("error")
		http.Error(w, fmt.Sprintf("Authorization failed: %s", errParam), http.StatusBadRequest)
		return
	}

	token, err := h.svc.GetOAuthConfig().Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Token exchange failed", http.StatusBadGateway)
		return
	}

	if err := h.svc.OAuthenticate(r.Context(), token); err != nil {
		http.Error(w, "Failed to install token", http.StatusInternalServerError)
		return
	}

	if h.onToken != nil {
		if err := h.onToken(token); err != nil {
			http.Error(w, "Failed to persist credentials", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// consumeState validates a state token and removes it so it cannot be reused.
func (h *LoginHandler) consumeState(state string) bool {
	if state == "" {
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	issued, ok := h.states[state]
	if !ok {
		return false
	}

	delete(h.states, state)

	return time.Since(issued) <= stateTTL
}

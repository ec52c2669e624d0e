package server

import (
	"html/template"
	"net/http"

	"github.com/desertthunder/spotcheck/internal/services"
)

var homeTemplate = template.Must(template.New("home").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>spotcheck</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               max-width: 640px; margin: 3rem auto; padding: 0 1rem; color: #222; }
        h1 { color: #1DB954; }
        code { background: #f5f5f5; padding: 0.1rem 0.3rem; border-radius: 4px; }
        li { margin: 0.4rem 0; }
        .warn { color: #b45309; }
    </style>
</head>
<body>
    <h1>spotcheck</h1>
    <p>A small proxy over your Spotify listening history.</p>
    {{if .Authenticated}}
    <p>Authenticated with {{.Service}}.</p>
    {{else}}
    <p class="warn">Not authenticated. <a href="/auth/login">Log in with Spotify</a> first.</p>
    {{end}}
    <ul>
        <li><code>GET /api/top-artists</code> your top artists</li>
        <li><code>GET /api/top-artists/{genre}</code> top artists in one genre</li>
        <li><code>GET /api/top-tracks</code> your top tracks</li>
        <li><code>GET /api/taste</code> joined taste profile with genre counts</li>
        <li><code>GET /api/roast</code> AI commentary (<code>?mode=toast</code> to be nice)</li>
    </ul>
    <p>Query parameters: <code>time_range</code> (short_term, medium_term, long_term) and <code>limit</code> (max 50).</p>
</body>
</html>
`))

// PageHandler renders the HTML landing page.
type PageHandler struct {
	svc services.Service
}

// NewPageHandler creates the landing page handler.
func NewPageHandler(svc services.Service) *PageHandler {
	return &PageHandler{svc: svc}
}

// Routes returns the HTTP routes this handler serves.
func (h *PageHandler) Routes() []string {
	return []string{"GET /{$}"}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct {
		Authenticated bool
		Service       string
	}{
		Authenticated: h.svc.Authenticated(),
		Service:       h.svc.Name(),
	}

	if err := homeTemplate.Execute(w, data); err != nil {
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

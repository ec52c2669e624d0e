package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/desertthunder/spotcheck/internal/tasks"
)

// errorPayload is the JSON body written for every non-2xx API response.
type errorPayload struct {
	Error           string   `json:"error"`
	AvailableGenres []string `json:"available_genres,omitempty"`
}

// TasteHandler proxies the authenticated user's Spotify listening data.
//
// Implements the [Handler] interface. All /api routes require an
// authenticated service and return 401 otherwise.
type TasteHandler struct {
	svc         services.Service
	engine      *tasks.TasteEngine
	commentator services.Commentator
	logger      *log.Logger
}

// NewTasteHandler creates the API handler. The commentator may be nil, in
// which case /api/roast reports the commentary service as unavailable.
func NewTasteHandler(svc services.Service, engine *tasks.TasteEngine, commentator services.Commentator, logger *log.Logger) *TasteHandler {
	return &TasteHandler{
		svc:         svc,
		engine:      engine,
		commentator: commentator,
		logger:      logger,
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *TasteHandler) Routes() []string {
	return []string{
		"GET /healthz",
		"GET /api/top-artists",
		"GET /api/top-artists/{genre}",
		"GET /api/top-tracks",
		"GET /api/taste",
		"GET /api/roast",
	}
}

func (h *TasteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/healthz" {
		h.health(w, r)
		return
	}

	if !h.svc.Authenticated() {
		writeError(w, http.StatusUnauthorized, "not authenticated with Spotify, run the auth command first", nil)
		return
	}

	switch {
	case r.URL.Path == "/api/top-artists":
		h.topArtists(w, r)
	case strings.HasPrefix(r.URL.Path, "/api/top-artists/"):
		h.topArtistsByGenre(w, r)
	case r.URL.Path == "/api/top-tracks":
		h.topTracks(w, r)
	case r.URL.Path == "/api/taste":
		h.taste(w, r)
	case r.URL.Path == "/api/roast":
		h.roast(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *TasteHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": h.svc.Name()})
}

func (h *TasteHandler) topArtists(w http.ResponseWriter, r *http.Request) {
	timeRange, limit := topQuery(r)

	artists, err := h.svc.TopArtists(r.Context(), timeRange, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"artists": artists, "count": len(artists)})
}

// topArtistsByGenre filters top artists down to a single genre. Unknown
// genres return 404 with the genres that are actually present, so the
// caller can correct the request.
func (h *TasteHandler) topArtistsByGenre(w http.ResponseWriter, r *http.Request) {
	genre := r.PathValue("genre")
	if genre == "" {
		genre = strings.TrimPrefix(r.URL.Path, "/api/top-artists/")
	}

	timeRange, limit := topQuery(r)

	artists, err := h.svc.TopArtists(r.Context(), timeRange, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	matched := tasks.FilterByGenre(artists, genre)
	if len(matched) == 0 {
		writeError(w, http.StatusNotFound,
			"no top artists found for genre "+strconv.Quote(tasks.NormalizeGenre(genre)),
			tasks.Genres(artists))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"genre":   tasks.NormalizeGenre(genre),
		"artists": matched,
		"count":   len(matched),
	})
}

func (h *TasteHandler) topTracks(w http.ResponseWriter, r *http.Request) {
	timeRange, limit := topQuery(r)

	tracks, err := h.svc.TopTracks(r.Context(), timeRange, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tracks": tracks, "count": len(tracks)})
}

func (h *TasteHandler) taste(w http.ResponseWriter, r *http.Request) {
	timeRange, limit := topQuery(r)

	profile, err := h.engine.BuildProfile(r.Context(), timeRange, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"artists":      profile.Artists,
		"tracks":       profile.Tracks,
		"genre_counts": profile.GenreCounts,
		"top_genres":   profile.TopGenres(5),
	})
}

func (h *TasteHandler) roast(w http.ResponseWriter, r *http.Request) {
	if h.commentator == nil {
		writeError(w, http.StatusServiceUnavailable, "commentary service not configured, set a Gemini API key", nil)
		return
	}

	timeRange, limit := topQuery(r)

	profile, err := h.engine.BuildProfile(r.Context(), timeRange, limit)
	if err != nil {
		h.fail(w, err)
		return
	}

	req := services.CommentaryRequest{
		Roast:   r.URL.Query().Get("mode") != "toast",
		Style:   r.URL.Query().Get("style"),
		Artists: profile.Artists,
		Tracks:  profile.Tracks,
	}

	text, err := h.commentator.Comment(r.Context(), req)
	if err != nil {
		h.fail(w, err)
		return
	}

	mode := "roast"
	if !req.Roast {
		mode = "toast"
	}

	writeJSON(w, http.StatusOK, map[string]string{"mode": mode, "commentary": text})
}

// fail maps service errors onto HTTP statuses and writes the error payload.
func (h *TasteHandler) fail(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && h.logger != nil {
		h.logger.Error("request failed", "error", err)
	}
	writeError(w, status, err.Error(), nil)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated), errors.Is(err, shared.ErrTokenExpired):
		return http.StatusUnauthorized
	case errors.Is(err, shared.ErrArtistNotFound), errors.Is(err, shared.ErrGenreNotFound):
		return http.StatusNotFound
	case errors.Is(err, shared.ErrInvalidArgument), errors.Is(err, shared.ErrMissingArgument), errors.Is(err, shared.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, shared.ErrMissingCredentials), errors.Is(err, shared.ErrServiceUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, shared.ErrAPIRequest):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// topQuery reads the shared time_range and limit query parameters. Validation
// happens in the service layer so the CLI and server agree on the rules.
func topQuery(r *http.Request) (string, int) {
	timeRange := r.URL.Query().Get("time_range")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	return timeRange, limit
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string, genres []string) {
	writeJSON(w, status, errorPayload{Error: msg, AvailableGenres: genres})
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/desertthunder/spotcheck/internal/tasks"
	mocks "github.com/desertthunder/spotcheck/internal/testing"
)

func testArtists() []models.Artist {
	return []models.Artist{
		{ID: "a1", Name: "Mitski", Genres: []string{"indie rock", "pop"}, Popularity: 85},
		{ID: "a2", Name: "Radiohead", Genres: []string{"art rock"}, Popularity: 90},
	}
}

func testTracks() []models.Track {
	return []models.Track{
		{ID: "t1", Name: "Nude", Artists: []string{"Radiohead"}, Album: "In Rainbows"},
	}
}

func newTestRouter(svc services.Service, commentator services.Commentator) *BasicRouter {
	engine := tasks.NewTasteEngine(svc, tasks.TasteEngineOpts{RateLimit: 100})

	router := NewBasicRouter()
	router.Handler(NewTasteHandler(svc, engine, commentator, nil))

	return router
}

func get(t *testing.T, router http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	body := map[string]any{}
	if rec.Body.Len() > 0 && strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
	}

	return rec, body
}

func TestTasteHandler(t *testing.T) {
	svc := &mocks.MockService{
		IsAuthenticated: true,
		TopArtistsFn: func(ctx context.Context, timeRange string, limit int) ([]models.Artist, error) {
			return testArtists(), nil
		},
		TopTracksFn: func(ctx context.Context, timeRange string, limit int) ([]models.Track, error) {
			return testTracks(), nil
		},
	}
	router := newTestRouter(svc, nil)

	t.Run("Healthz", func(t *testing.T) {
		rec, body := get(t, router, "/healthz")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body["status"] != "ok" {
			t.Errorf("expected ok status, got %v", body["status"])
		}
	})

	t.Run("Healthz Without Auth", func(t *testing.T) {
		unauthenticated := newTestRouter(&mocks.MockService{}, nil)

		rec, _ := get(t, unauthenticated, "/healthz")
		if rec.Code != http.StatusOK {
			t.Errorf("expected healthz to skip auth, got %d", rec.Code)
		}
	})

	t.Run("Unauthenticated API Request", func(t *testing.T) {
		unauthenticated := newTestRouter(&mocks.MockService{}, nil)

		rec, body := get(t, unauthenticated, "/api/top-artists")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if msg, _ := body["error"].(string); msg == "" {
			t.Error("expected error message in body")
		}
	})

	t.Run("TopArtists", func(t *testing.T) {
		rec, body := get(t, router, "/api/top-artists")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		artists, ok := body["artists"].([]any)
		if !ok || len(artists) != 2 {
			t.Fatalf("expected 2 artists, got %v", body["artists"])
		}

		first := artists[0].(map[string]any)
		if first["name"] != "Mitski" {
			t.Errorf("expected artist name in payload, got %v", first)
		}
	})

	t.Run("TopArtists By Genre", func(t *testing.T) {
		rec, body := get(t, router, "/api/top-artists/indie-rock")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body["genre"] != "indie rock" {
			t.Errorf("expected normalized genre, got %v", body["genre"])
		}

		artists := body["artists"].([]any)
		if len(artists) != 1 {
			t.Fatalf("expected 1 matching artist, got %d", len(artists))
		}
	})

	t.Run("Unknown Genre Is Not A Server Error", func(t *testing.T) {
		rec, body := get(t, router, "/api/top-artists/zydeco")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for unknown genre, got %d", rec.Code)
		}

		genres, ok := body["available_genres"].([]any)
		if !ok || len(genres) == 0 {
			t.Fatal("expected available genres in error payload")
		}
	})

	t.Run("TopTracks", func(t *testing.T) {
		rec, body := get(t, router, "/api/top-tracks")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		tracks := body["tracks"].([]any)
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
	})

	t.Run("Taste Profile", func(t *testing.T) {
		rec, body := get(t, router, "/api/taste")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		counts, ok := body["genre_counts"].(map[string]any)
		if !ok {
			t.Fatal("expected genre counts in payload")
		}
		if counts["indie rock"] != float64(1) {
			t.Errorf("expected indie rock count 1, got %v", counts["indie rock"])
		}
		if body["top_genres"] == nil {
			t.Error("expected top genres in payload")
		}
	})

	t.Run("Roast", func(t *testing.T) {
		commentator := &mocks.MockCommentator{Text: "your playlists are a cry for help"}
		roastRouter := newTestRouter(svc, commentator)

		rec, body := get(t, roastRouter, "/api/roast?style=Dolly%20Parton")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body["mode"] != "roast" {
			t.Errorf("expected roast mode by default, got %v", body["mode"])
		}
		if body["commentary"] != commentator.Text {
			t.Errorf("unexpected commentary %v", body["commentary"])
		}
		if !commentator.LastRequest.Roast || commentator.LastRequest.Style != "Dolly Parton" {
			t.Errorf("unexpected request forwarded: %+v", commentator.LastRequest)
		}
	})

	t.Run("Toast Mode", func(t *testing.T) {
		commentator := &mocks.MockCommentator{Text: "impeccable taste"}
		roastRouter := newTestRouter(svc, commentator)

		rec, body := get(t, roastRouter, "/api/roast?mode=toast")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if body["mode"] != "toast" {
			t.Errorf("expected toast mode, got %v", body["mode"])
		}
	})

	t.Run("Roast Without Commentator", func(t *testing.T) {
		rec, _ := get(t, router, "/api/roast")

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected 503 without a commentator, got %d", rec.Code)
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		cases := []struct {
			name   string
			err    error
			status int
		}{
			{"Expired Token", shared.ErrTokenExpired, http.StatusUnauthorized},
			{"Invalid Argument", shared.ErrInvalidArgument, http.StatusBadRequest},
			{"Upstream Failure", shared.ErrAPIRequest, http.StatusBadGateway},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				failing := newTestRouter(&mocks.MockService{
					IsAuthenticated: true,
					TopArtistsFn: func(ctx context.Context, timeRange string, limit int) ([]models.Artist, error) {
						return nil, tc.err
					},
				}, nil)

				rec, _ := get(t, failing, "/api/top-artists")
				if rec.Code != tc.status {
					t.Errorf("expected %d for %v, got %d", tc.status, tc.err, rec.Code)
				}
			})
		}
	})
}

func TestPageHandler(t *testing.T) {
	t.Run("Authenticated", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewPageHandler(&mocks.MockService{IsAuthenticated: true}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "Authenticated with mock") {
			t.Error("expected auth status in page")
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		router := NewBasicRouter()
		router.Handler(NewPageHandler(&mocks.MockService{}))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if !strings.Contains(rec.Body.String(), "/auth/login") {
			t.Error("expected login link for unauthenticated users")
		}
	})
}

package tasks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"golang.org/x/time/rate"
)

// TasteEngine builds taste profiles by joining top-artist and top-track
// fetches from a [services.Service].
type TasteEngine struct {
	svc     services.Service
	limiter *rate.Limiter
}

// TasteEngineOpts contains configuration for a TasteEngine.
type TasteEngineOpts struct {
	RateLimit float64 // Requests per second against the provider (default: 5)
}

// NewTasteEngine creates an engine for the given provider.
func NewTasteEngine(svc services.Service, opts TasteEngineOpts) *TasteEngine {
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &TasteEngine{
		svc:     svc,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// BuildProfile fetches the user's top artists and top tracks concurrently and
// joins them with aggregated genre counts.
//
// The two outbound requests run in parallel and both must succeed; the first
// error wins and cancels nothing (requests are one-shot GETs).
func (e *TasteEngine) BuildProfile(ctx context.Context, timeRange string, limit int) (*models.TasteProfile, error) {
	if e.svc == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}

	var (
		wg        sync.WaitGroup
		artists   []models.Artist
		tracks    []models.Track
		artistErr error
		trackErr  error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()
		if artistErr = e.limiter.Wait(ctx); artistErr != nil {
			return
		}
		artists, artistErr = e.svc.TopArtists(ctx, timeRange, limit)
	}()

	go func() {
		defer wg.Done()
		if trackErr = e.limiter.Wait(ctx); trackErr != nil {
			return
		}
		tracks, trackErr = e.svc.TopTracks(ctx, timeRange, limit)
	}()

	wg.Wait()

	if artistErr != nil {
		return nil, fmt.Errorf("failed to fetch top artists: %w", artistErr)
	}
	if trackErr != nil {
		return nil, fmt.Errorf("failed to fetch top tracks: %w", trackErr)
	}

	return &models.TasteProfile{
		Artists:     artists,
		Tracks:      tracks,
		GenreCounts: CountGenres(artists),
	}, nil
}

// FilterByGenre returns the artists whose genre lists contain genre.
//
// Matching is case-insensitive and treats hyphens as spaces so URL path
// segments like "indie-rock" match the Spotify genre "indie rock".
func FilterByGenre(artists []models.Artist, genre string) []models.Artist {
	want := NormalizeGenre(genre)

	var matched []models.Artist
	for _, artist := range artists {
		for _, g := range artist.Genres {
			if NormalizeGenre(g) == want {
				matched = append(matched, artist)
				break
			}
		}
	}

	return matched
}

// NormalizeGenre lowercases a genre and folds hyphens into spaces.
func NormalizeGenre(genre string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(genre), "-", " "))
}

// CountGenres aggregates normalized genre occurrences across artists.
func CountGenres(artists []models.Artist) map[string]int {
	counts := make(map[string]int)
	for _, artist := range artists {
		for _, g := range artist.Genres {
			counts[NormalizeGenre(g)]++
		}
	}
	return counts
}

// Genres returns the distinct normalized genres across artists, sorted by
// frequency via [models.TasteProfile.TopGenres].
func Genres(artists []models.Artist) []string {
	counts := CountGenres(artists)
	profile := models.TasteProfile{GenreCounts: counts}
	return profile.TopGenres(len(counts))
}

// package services defines interface Service for interacting with HTTP APIs
//
// Spotify (Web API), Gemini (text generation)
package services

import (
	"context"

	"github.com/desertthunder/spotcheck/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for listening-history providers that can
// report a user's top artists and tracks.
type Service interface {
	// Authenticate performs OAuth or API key authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Authenticated reports whether a usable token is held.
	Authenticated() bool

	// TopArtists retrieves the user's most listened-to artists for a time range.
	TopArtists(ctx context.Context, timeRange string, limit int) ([]models.Artist, error)

	// TopTracks retrieves the user's most listened-to tracks for a time range.
	TopTracks(ctx context.Context, timeRange string, limit int) ([]models.Track, error)

	// ArtistTopTracks retrieves an artist's most popular tracks in a market.
	ArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService extends Service for providers using the OAuth2 authorization code flow.
type OAuthService interface {
	Service

	// GetAuthURL returns the consent page URL for the given CSRF state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying [oauth2.Config] for callback handlers.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate installs a previously obtained token.
	OAuthenticate(ctx context.Context, token *oauth2.Token) error
}

// Commentator generates text commentary on a user's listening habits.
type Commentator interface {
	// Comment returns generated commentary for the request.
	Comment(ctx context.Context, req CommentaryRequest) (string, error)
}

// CommentaryRequest describes the commentary to generate.
type CommentaryRequest struct {
	Roast   bool            // Roast when true, toast otherwise
	Style   string          // Celebrity whose voice to imitate
	Artists []models.Artist // The listener's top artists
	Tracks  []models.Track  // The listener's top tracks
	Limit   int             // Max items referenced in the prompt
}

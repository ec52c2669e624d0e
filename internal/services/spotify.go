// Spotify API implementation of [Service]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// DefaultTimeRange is Spotify's medium window (~6 months of listening).
	DefaultTimeRange = "medium_term"

	// DefaultTopLimit is the item count the workshop endpoints serve.
	DefaultTopLimit = 50
)

type followers struct {
	Total int `json:"total"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"` // premium, free, etc.
	Followers   followers      `json:"followers"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Genres     []string       `json:"genres"`
	Popularity int            `json:"popularity"`
	Images     []SpotifyImage `json:"images"`
	URI        string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	Explicit   bool            `json:"explicit"`
	Popularity int             `json:"popularity"`
	URI        string          `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	ReleaseDate string         `json:"release_date"`
	Images      []SpotifyImage `json:"images"`
	URI         string         `json:"uri"`
}

// SpotifyPaginatedArtists represents a paginated /me/top/artists response.
type SpotifyPaginatedArtists struct {
	Items  []SpotifyArtist `json:"items"`
	Total  int             `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
	Next   *string         `json:"next"`
}

// SpotifyPaginatedTracks represents a paginated /me/top/tracks response.
type SpotifyPaginatedTracks struct {
	Items  []SpotifyTrack `json:"items"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Next   *string        `json:"next"`
}

// SpotifyService implements the [Service] interface for Spotify API interactions.
// Uses [oauth2] for authentication and provides methods for top-item operations.
type SpotifyService struct {
	config  *oauth2.Config
	baseURL string

	// mu guards token and httpClient, which the server login flow rewrites
	// while request handlers read them.
	mu         sync.RWMutex
	token      *oauth2.Token
	httpClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = "http://localhost:3000/auth/callback"
	}

	scope, ok := credentials["scope"]
	if !ok || scope == "" {
		scope = "user-top-read"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{scope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		baseURL:    spotifyBaseURL,
	}, nil
}

// Authenticate performs OAuth2 authentication with Spotify. Expects either an "access_token" or "auth_code" in credentials.
func (s *SpotifyService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		return s.OAuthenticate(ctx, &oauth2.Token{AccessToken: accessToken})
	}

	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := s.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: code exchange: %v", shared.ErrAuthFailed, err)
		}
		return s.OAuthenticate(ctx, token)
	}

	return fmt.Errorf("%w: missing access_token or auth_code", shared.ErrMissingCredentials)
}

// OAuthenticate installs an [oauth2.Token] and builds the refreshing HTTP client.
func (s *SpotifyService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidCredentials)
	}

	client := s.config.Client(ctx, token)

	s.mu.Lock()
	s.token = token
	s.httpClient = client
	s.mu.Unlock()
	return nil
}

// Authenticated reports whether a token is held.
func (s *SpotifyService) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != nil
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// GetOAuthConfig returns the underlying OAuth2 configuration.
func (s *SpotifyService) GetOAuthConfig() *oauth2.Config {
	return s.config
}

// SetBaseURL overrides the API base URL. Used by tests.
func (s *SpotifyService) SetBaseURL(base string) {
	s.baseURL = base
}

// doRequest performs an authenticated GET request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, endpoint string, result any) error {
	s.mu.RLock()
	token, client := s.token, s.httpClient
	s.mu.RUnlock()

	if token == nil {
		return fmt.Errorf("%w: call Authenticate first", shared.ErrNotAuthenticated)
	}

	apiURL := s.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return fmt.Errorf("%w: status %d", shared.ErrTokenExpired, resp.StatusCode)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: status %d", shared.ErrArtistNotFound, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrDecodeFailed, err)
		}
	}

	return nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// normalizeTopQuery clamps limit and fills in the default time range.
func normalizeTopQuery(timeRange string, limit int) (string, int, error) {
	switch timeRange {
	case "":
		timeRange = DefaultTimeRange
	case "short_term", "medium_term", "long_term":
	default:
		return "", 0, fmt.Errorf("%w: time_range %q", shared.ErrInvalidArgument, timeRange)
	}

	if limit <= 0 {
		limit = DefaultTopLimit
	}
	if limit > DefaultTopLimit {
		limit = DefaultTopLimit
	}

	return timeRange, limit, nil
}

// TopArtistsPage retrieves a page of the user's top artists.
func (s *SpotifyService) TopArtistsPage(ctx context.Context, timeRange string, limit, offset int) (*SpotifyPaginatedArtists, error) {
	timeRange, limit, err := normalizeTopQuery(timeRange, limit)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/me/top/artists?time_range=%s&limit=%d&offset=%d", url.QueryEscape(timeRange), limit, offset)

	var response SpotifyPaginatedArtists
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// TopTracksPage retrieves a page of the user's top tracks.
func (s *SpotifyService) TopTracksPage(ctx context.Context, timeRange string, limit, offset int) (*SpotifyPaginatedTracks, error) {
	timeRange, limit, err := normalizeTopQuery(timeRange, limit)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("/me/top/tracks?time_range=%s&limit=%d&offset=%d", url.QueryEscape(timeRange), limit, offset)

	var response SpotifyPaginatedTracks
	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	return &response, nil
}

// Service interface implementation

// TopArtists retrieves the user's top artists as flat records.
func (s *SpotifyService) TopArtists(ctx context.Context, timeRange string, limit int) ([]models.Artist, error) {
	page, err := s.TopArtistsPage(ctx, timeRange, limit, 0)
	if err != nil {
		return nil, err
	}

	artists := make([]models.Artist, 0, len(page.Items))
	for _, sa := range page.Items {
		artists = append(artists, convertArtist(sa))
	}

	return artists, nil
}

// TopTracks retrieves the user's top tracks as flat records.
func (s *SpotifyService) TopTracks(ctx context.Context, timeRange string, limit int) ([]models.Track, error) {
	page, err := s.TopTracksPage(ctx, timeRange, limit, 0)
	if err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(page.Items))
	for _, st := range page.Items {
		tracks = append(tracks, convertTrack(st))
	}

	return tracks, nil
}

// ArtistTopTracks retrieves an artist's most popular tracks in a market.
func (s *SpotifyService) ArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	if artistID == "" {
		return nil, fmt.Errorf("%w: artist ID", shared.ErrMissingArgument)
	}
	if market == "" {
		market = "US"
	}

	endpoint := fmt.Sprintf("/artists/%s/top-tracks?market=%s", url.PathEscape(artistID), url.QueryEscape(market))

	var response struct {
		Tracks []SpotifyTrack `json:"tracks"`
	}

	if err := s.doRequest(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	tracks := make([]models.Track, 0, len(response.Tracks))
	for _, st := range response.Tracks {
		tracks = append(tracks, convertTrack(st))
	}

	return tracks, nil
}

func convertArtist(sa SpotifyArtist) models.Artist {
	return models.Artist{
		ID:         sa.ID,
		Name:       sa.Name,
		Genres:     sa.Genres,
		Popularity: sa.Popularity,
	}
}

func convertTrack(st SpotifyTrack) models.Track {
	names := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		names = append(names, a.Name)
	}

	return models.Track{
		ID:         st.ID,
		Name:       st.Name,
		Artists:    names,
		Album:      st.Album.Name,
		Popularity: st.Popularity,
		DurationMS: st.DurationMS,
	}
}

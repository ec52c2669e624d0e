// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/services"
	"golang.org/x/oauth2"
)

// MockService is a configurable test double for [services.Service].
//
// Unset function fields return empty results.
type MockService struct {
	AuthErr         error
	IsAuthenticated bool
	TopArtistsFn    func(ctx context.Context, timeRange string, limit int) ([]models.Artist, error)
	TopTracksFn     func(ctx context.Context, timeRange string, limit int) ([]models.Track, error)
	ArtistTracksFn  func(ctx context.Context, artistID, market string) ([]models.Track, error)
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.AuthErr
}

func (m *MockService) Authenticated() bool { return m.IsAuthenticated }

func (m *MockService) TopArtists(ctx context.Context, timeRange string, limit int) ([]models.Artist, error) {
	if m.TopArtistsFn != nil {
		return m.TopArtistsFn(ctx, timeRange, limit)
	}
	return []models.Artist{}, nil
}

func (m *MockService) TopTracks(ctx context.Context, timeRange string, limit int) ([]models.Track, error) {
	if m.TopTracksFn != nil {
		return m.TopTracksFn(ctx, timeRange, limit)
	}
	return []models.Track{}, nil
}

func (m *MockService) ArtistTopTracks(ctx context.Context, artistID, market string) ([]models.Track, error) {
	if m.ArtistTracksFn != nil {
		return m.ArtistTracksFn(ctx, artistID, market)
	}
	return []models.Track{}, nil
}

func (m *MockService) Name() string { return "mock" }

// MockOAuthService is a test double for [services.OAuthService].
type MockOAuthService struct {
	MockService
	Config    *oauth2.Config
	OAuthErr  error
	LastToken *oauth2.Token
}

func (m *MockOAuthService) GetAuthURL(state string) string {
	return m.Config.AuthCodeURL(state)
}

func (m *MockOAuthService) GetOAuthConfig() *oauth2.Config { return m.Config }

func (m *MockOAuthService) OAuthenticate(ctx context.Context, token *oauth2.Token) error {
	if m.OAuthErr != nil {
		return m.OAuthErr
	}
	m.LastToken = token
	m.IsAuthenticated = true
	return nil
}

// MockCommentator is a test double for [services.Commentator].
type MockCommentator struct {
	Text string
	Err  error

	// LastRequest records the most recent request for assertions.
	LastRequest services.CommentaryRequest
}

func (m *MockCommentator) Comment(ctx context.Context, req services.CommentaryRequest) (string, error) {
	m.LastRequest = req
	return m.Text, m.Err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

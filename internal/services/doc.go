// Package services defines the [Service] interface for listening-history
// providers and implements it for Spotify, plus the [Commentator] interface
// for AI text generation implemented with Gemini.
//
// # Service Interface
//
// The provider abstraction keeps handlers and CLI commands independent of the
// Spotify wire format; everything downstream works with models records.
//
// # Spotify Implementation
//
// [SpotifyService] uses OAuth2 (authorization code grant) for authentication.
//
// The [oauth2.Config.Client] HTTP client automatically refreshes expired
// tokens using the refresh token when one was granted.
//
// # Gemini Implementation
//
// [GeminiService] wraps google.golang.org/genai and turns the listener's top
// items into a single roast-or-toast prompt. The completion text is returned
// verbatim.
//
// # Error Handling
//
// Services use typed errors from the shared package:
//   - [shared.ErrNotAuthenticated] : Authenticate() not called
//   - [shared.ErrTokenExpired] : OAuth token expired, reauthorization needed
//   - [shared.ErrAPIRequest] : HTTP request failed (carries the status)
//   - [shared.ErrDecodeFailed] : malformed JSON in a response body
//
// # API Mappings
//
// Spotify responses are converted to flat records: [SpotifyArtist] →
// [models.Artist] (name, genres, popularity) and [SpotifyTrack] →
// [models.Track] with artist names flattened to strings.
package services

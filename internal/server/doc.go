// Package server provides HTTP routing, middleware, and OAuth handling for CLI and web interfaces.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally, so patterns
// may carry method prefixes and path wildcards.
//
// # OAuth Callback Handlers
//
// [OAuthHandler] implements the OAuth2 authorization code callback for the CLI flow.
// When the user runs the auth command, a temporary HTTP server starts on localhost,
// handles the callback, delivers the token over a channel, and shuts down.
// It only processes one callback to prevent replay attacks.
//
// [LoginHandler] serves the same flow for the long-running web server. It issues a
// fresh state token per login and consumes it on callback, so replayed callback
// URLs are rejected while the server keeps accepting new logins.
//
// # API Handlers
//
// [TasteHandler] proxies the authenticated user's top artists and tracks,
// filters artists by genre, joins both listings into a taste profile, and
// requests AI commentary. [PageHandler] renders the HTML landing page.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server

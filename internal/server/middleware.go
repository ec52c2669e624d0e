package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/spotcheck/internal/shared"
	"golang.org/x/time/rate"
)

// statusRecorder captures the response status code for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// RequestLogger returns [Middleware] that logs each request with a generated
// request ID, the method, path, response status, and duration.
func RequestLogger(logger *log.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := shared.GenerateID()

			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			w.Header().Set("X-Request-ID", requestID)

			next.ServeHTTP(recorder, r)

			logger.Info("request",
				"id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", recorder.status,
				"duration", time.Since(start),
			)
		})
	}
}

// RateLimit returns [Middleware] that rejects requests with 429 once the
// limiter's burst is exhausted.
//
// The limiter is shared across all requests, not per client. The service
// proxies a single user's Spotify data, so a global budget is enough to keep
// upstream calls inside Spotify's rate limits.
func RateLimit(limiter *rate.Limiter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/spotcheck/internal/server"
	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Serve runs the HTTP server proxying the user's listening data.
//
// Shuts down gracefully on SIGINT/SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadConfig(configPath)

	if host := cmd.String("host"); host != "" {
		config.Server.Host = host
	}
	if port := cmd.Int("port"); port > 0 {
		config.Server.Port = port
	}

	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, check credentials in %s", shared.ErrServiceUnavailable, configPath)
	}

	router := server.NewBasicRouter()
	router.Use(
		server.RequestLogger(r.logger),
		server.RateLimit(rate.NewLimiter(rate.Limit(10), 20)),
	)

	router.Handler(server.NewTasteHandler(r.spotify, r.engine, r.commentator, r.logger))
	router.Handler(server.NewPageHandler(r.spotify))

	if oauthSvc, ok := r.spotify.(services.OAuthService); ok {
		router.Handler(server.NewLoginHandler(oauthSvc, func(token *oauth2.Token) error {
			if err := config.Credentials.Spotify.Update(token); err != nil {
				return err
			}
			return shared.SaveConfig(configPath, config)
		}))
	}

	httpServer := &http.Server{
		Addr:         config.Server.Addr(),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Info("server listening", "addr", httpServer.Addr)
		r.writePlain("→ Serving on http://%s\n", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-signalCtx.Done():
	}

	r.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}

	return nil
}

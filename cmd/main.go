package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	ctx := context.Background()

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	var spotifyService services.Service
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			if token := config.Credentials.Spotify.Token(); token != nil {
				if err := svc.OAuthenticate(ctx, token); err != nil {
					logger.Warn("failed to restore saved token", "error", err)
				}
			}
			spotifyService = svc
		}
	}

	var commentator services.Commentator
	if config.Credentials.Gemini.APIKey != "" {
		if svc, err := services.NewGeminiService(ctx, config.Credentials.Gemini.APIKey, config.Credentials.Gemini.Model); err == nil {
			commentator = svc
		} else {
			logger.Warn("failed to create commentary service", "error", err)
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:      config,
		ConfigPath:  "config.toml",
		Spotify:     spotifyService,
		Commentator: commentator,
		Logger:      logger,
	})

	app := &cli.Command{
		Name:     "spotcheck",
		Usage:    "Inspect, proxy, and roast your Spotify listening history",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}

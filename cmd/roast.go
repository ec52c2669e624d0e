package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/spotcheck/internal/services"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/urfave/cli/v3"
)

// Roast fetches the user's taste profile and asks the commentary service for
// a verdict.
func (r *Runner) Roast(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'spotcheck auth' first", shared.ErrServiceUnavailable)
	}
	if r.commentator == nil {
		return fmt.Errorf("%w: commentary service not configured, set GEMINI_API_KEY or credentials.gemini.api_key", shared.ErrMissingCredentials)
	}

	timeRange := cmd.String("time-range")
	limit := cmd.Int("limit")
	roast := !cmd.Bool("toast")

	r.logger.Infof("building taste profile for %v", timeRange)

	profile, err := r.engine.BuildProfile(ctx, timeRange, limit)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if profile, err = r.engine.BuildProfile(ctx, timeRange, limit); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return err
		}
	}

	r.writePlain("→ Consulting the critic...\n")

	text, err := r.commentator.Comment(ctx, services.CommentaryRequest{
		Roast:   roast,
		Style:   cmd.String("style"),
		Artists: profile.Artists,
		Tracks:  profile.Tracks,
		Limit:   limit,
	})
	if err != nil {
		return fmt.Errorf("failed to generate commentary: %w", err)
	}

	if roast {
		r.writePlainHeader("The Roast")
	} else {
		r.writePlainHeader("The Toast")
	}

	return r.writePlain("%s\n", text)
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/spotcheck/internal/formatter"
	"github.com/desertthunder/spotcheck/internal/models"
	"github.com/desertthunder/spotcheck/internal/repositories"
	"github.com/desertthunder/spotcheck/internal/shared"
	"github.com/desertthunder/spotcheck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// openSnapshots opens the configured database with migrations applied and
// returns a snapshot repository. The caller must invoke the returned cleanup.
func (r *Runner) openSnapshots(config *shared.Config) (*repositories.SnapshotRepository, func(), error) {
	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewSnapshotRepository(db), func() { db.Close() }, nil
}

// fetchTopArtists fetches from Spotify (with reauthorization on expired
// tokens) or serves the latest saved snapshot when offline is set.
func (r *Runner) fetchTopArtists(ctx context.Context, cmd *cli.Command, config *shared.Config, timeRange string, limit int, offline bool) ([]models.Artist, error) {
	if offline {
		repo, closeDB, err := r.openSnapshots(config)
		if err != nil {
			return nil, err
		}
		defer closeDB()

		snap, err := repo.Latest(repositories.KindArtists, timeRange)
		if err != nil {
			return nil, fmt.Errorf("no offline data for %s: %w", timeRange, err)
		}

		r.logger.Info("serving snapshot", "id", snap.ID, "created_at", snap.CreatedAt)
		return snap.Artists()
	}

	if r.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized, run 'spotcheck auth' first", shared.ErrServiceUnavailable)
	}

	artists, err := r.spotify.TopArtists(ctx, timeRange, limit)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return nil, authErr
			}
			if artists, err = r.spotify.TopArtists(ctx, timeRange, limit); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return nil, err
		}
	}

	return artists, nil
}

// TopArtists lists the user's top artists, optionally filtered by genre.
func (r *Runner) TopArtists(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	timeRange := cmd.String("time-range")
	limit := cmd.Int("limit")
	genre := cmd.String("genre")

	r.logger.Infof("fetching top artists for %v", timeRange)

	artists, err := r.fetchTopArtists(ctx, cmd, config, timeRange, limit, cmd.Bool("offline"))
	if err != nil {
		return err
	}

	if cmd.Bool("save") && !cmd.Bool("offline") {
		if err := r.saveSnapshot(config, repositories.KindArtists, timeRange, artists, nil); err != nil {
			r.logger.Warn("failed to save snapshot", "error", err)
		}
	}

	if genre != "" {
		matched := tasks.FilterByGenre(artists, genre)
		if len(matched) == 0 {
			available := tasks.Genres(artists)
			return fmt.Errorf("%w: no top artists in genre %q, available: %s",
				shared.ErrGenreNotFound, tasks.NormalizeGenre(genre), strings.Join(available, ", "))
		}
		artists = matched
	}

	output, err := formatter.FormatArtists(artists, cmd.String("format"))
	if err != nil {
		return err
	}

	return r.writePlain("%s", output)
}

// TopTracks lists the user's top tracks.
func (r *Runner) TopTracks(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	timeRange := cmd.String("time-range")
	limit := cmd.Int("limit")

	r.logger.Infof("fetching top tracks for %v", timeRange)

	var tracks []models.Track
	var err error

	if cmd.Bool("offline") {
		repo, closeDB, openErr := r.openSnapshots(config)
		if openErr != nil {
			return openErr
		}
		defer closeDB()

		snap, snapErr := repo.Latest(repositories.KindTracks, timeRange)
		if snapErr != nil {
			return fmt.Errorf("no offline data for %s: %w", timeRange, snapErr)
		}
		if tracks, err = snap.Tracks(); err != nil {
			return err
		}
	} else {
		if r.spotify == nil {
			return fmt.Errorf("%w: Spotify service not initialized, run 'spotcheck auth' first", shared.ErrServiceUnavailable)
		}

		tracks, err = r.spotify.TopTracks(ctx, timeRange, limit)
		if err != nil {
			if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
				if authErr != nil {
					return authErr
				}
				if tracks, err = r.spotify.TopTracks(ctx, timeRange, limit); err != nil {
					return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
				}
			} else {
				return err
			}
		}

		if cmd.Bool("save") {
			if err := r.saveSnapshot(config, repositories.KindTracks, timeRange, nil, tracks); err != nil {
				r.logger.Warn("failed to save snapshot", "error", err)
			}
		}
	}

	output, err := formatter.FormatTracks(tracks, cmd.String("format"))
	if err != nil {
		return err
	}

	return r.writePlain("%s", output)
}

// ArtistTopTracks lists an artist's most popular tracks in a market.
func (r *Runner) ArtistTopTracks(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'spotcheck auth' first", shared.ErrServiceUnavailable)
	}

	artistID := cmd.String("id")
	market := cmd.String("market")

	r.logger.Infof("fetching top tracks for artist %v in %v", artistID, market)

	tracks, err := r.spotify.ArtistTopTracks(ctx, artistID, market)
	if err != nil {
		if reauthed, authErr := r.handleAuthError(ctx, err, cmd); reauthed {
			if authErr != nil {
				return authErr
			}
			if tracks, err = r.spotify.ArtistTopTracks(ctx, artistID, market); err != nil {
				return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
			}
		} else {
			return err
		}
	}

	output, err := formatter.FormatTracks(tracks, cmd.String("format"))
	if err != nil {
		return err
	}

	return r.writePlain("%s", output)
}

// TopGenres aggregates genre counts across the user's top artists.
func (r *Runner) TopGenres(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	timeRange := cmd.String("time-range")
	limit := cmd.Int("limit")

	artists, err := r.fetchTopArtists(ctx, cmd, config, timeRange, limit, cmd.Bool("offline"))
	if err != nil {
		return err
	}

	profile := models.TasteProfile{GenreCounts: tasks.CountGenres(artists)}

	if cmd.String("format") == formatter.FormatJSON {
		return r.writeJSON(profile.GenreCounts, true)
	}

	r.writePlainHeader(fmt.Sprintf("Genres across your top %d artists", len(artists)))
	return r.writePlain("%s", formatter.GenresToText(&profile))
}

// saveSnapshot persists a fetch to the snapshot store. Exactly one of
// artists or tracks must be non-nil.
func (r *Runner) saveSnapshot(config *shared.Config, kind, timeRange string, artists []models.Artist, tracks []models.Track) error {
	repo, closeDB, err := r.openSnapshots(config)
	if err != nil {
		return err
	}
	defer closeDB()

	var id string
	switch kind {
	case repositories.KindArtists:
		id, err = repo.SaveArtists(timeRange, artists)
	case repositories.KindTracks:
		id, err = repo.SaveTracks(timeRange, tracks)
	default:
		return fmt.Errorf("%w: unknown snapshot kind %q", shared.ErrInvalidArgument, kind)
	}
	if err != nil {
		return err
	}

	r.logger.Info("snapshot saved", "id", id, "kind", kind, "time_range", timeRange)
	return nil
}
